// Package sqlstore persists résumés in a SQL database.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resumematch/internal/database"
	"resumematch/internal/domain"
)

// TimeLayout is the format of the upload_date column.
const TimeLayout = "2006-01-02 15:04:05"

// Store implements domain.ResumeStore on top of the generated queries.
type Store struct {
	db *database.DB
	q  *database.Queries
}

// Open connects with the given driver and DSN.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := database.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, q: db.Queries()}, nil
}

// LoadAll returns every résumé in insertion order.
func (s *Store) LoadAll(ctx context.Context) ([]domain.StoredDocument, error) {
	rows, err := s.q.ListResumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	out := make([]domain.StoredDocument, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDocument(r))
	}
	return out, nil
}

// Get returns the résumé stored under name or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (domain.StoredDocument, error) {
	r, err := s.q.GetResumeByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoredDocument{}, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return domain.StoredDocument{}, fmt.Errorf("failed to get resume %s: %w", name, err)
	}
	return toDocument(r), nil
}

// Upsert inserts doc or replaces the row with the same name. Empty text is stored as NULL.
func (s *Store) Upsert(ctx context.Context, doc domain.Document, contentHash string, uploadedAt time.Time) error {
	err := s.q.UpsertResume(ctx, database.UpsertResumeParams{
		Name:        doc.Name,
		FilePath:    doc.SourcePath,
		Text:        sql.NullString{String: doc.Text, Valid: doc.Text != ""},
		ContentHash: contentHash,
		UploadDate:  uploadedAt.Format(TimeLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to save resume %s: %w", doc.Name, err)
	}
	return nil
}

// Delete removes the résumé stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	n, err := s.q.DeleteResumeByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to delete resume %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func toDocument(r database.Resume) domain.StoredDocument {
	uploadedAt, _ := time.ParseInLocation(TimeLayout, r.UploadDate.String, time.Local)
	return domain.StoredDocument{
		Document: domain.Document{
			Name:       r.Name,
			Text:       r.Text.String,
			SourcePath: r.FilePath.String,
		},
		ContentHash: r.ContentHash,
		UploadedAt:  uploadedAt,
	}
}
