package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"resumematch/internal/corpus"
	"resumematch/internal/domain"
	"resumematch/internal/extract"
	"resumematch/internal/files"
	"resumematch/internal/ranking"
)

// ErrNoFiles is returned when no path given to UploadPaths names a supported résumé.
var ErrNoFiles = errors.New("no supported resume files found (.pdf, .docx, .txt)")

// Options tunes a MatchService.
type Options struct {
	// Limit is the number of top matches returned; <= 0 means ranking.DefaultLimit.
	Limit               int
	SummaryMaxSentences int
}

// MatchService stores uploaded résumés and ranks them against job descriptions.
type MatchService struct {
	store               domain.ResumeStore
	files               domain.FileStore
	extractor           domain.Extractor
	ranker              domain.Ranker
	summarizer          domain.Summarizer
	notifier            domain.Notifier
	limit               int
	summaryMaxSentences int
	now                 func() time.Time
}

func NewMatchService(store domain.ResumeStore, fileStore domain.FileStore, extractor domain.Extractor, ranker domain.Ranker, summarizer domain.Summarizer, notifier domain.Notifier, opts Options) *MatchService {
	return &MatchService{
		store:               store,
		files:               fileStore,
		extractor:           extractor,
		ranker:              ranker,
		summarizer:          summarizer,
		notifier:            notifier,
		limit:               opts.Limit,
		summaryMaxSentences: opts.SummaryMaxSentences,
		now:                 time.Now,
	}
}

// UploadPaths reads the files matched by the given paths or glob patterns and uploads them.
func (s *MatchService) UploadPaths(ctx context.Context, paths []string) ([]domain.Document, error) {
	var uploads []domain.Upload
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !extract.Supported(m) {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, domain.Upload{Name: filepath.Base(m), Data: data})
		}
	}
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}
	return s.Upload(ctx, uploads)
}

// Upload saves each file, extracts its text and upserts it into the store.
// The returned documents are the supplied set for a subsequent Match.
func (s *MatchService) Upload(ctx context.Context, uploads []domain.Upload) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(uploads))
	for _, u := range uploads {
		doc, err := s.upload(ctx, u)
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *MatchService) upload(ctx context.Context, u domain.Upload) (domain.Document, error) {
	name := filepath.Base(u.Name)
	hash, err := files.ContentHash(u.Data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to hash %s: %w", name, err)
	}
	location, err := s.files.Put(ctx, name, u.Data)
	if err != nil {
		return domain.Document{}, err
	}

	var text string
	prev, err := s.store.Get(ctx, name)
	switch {
	case err == nil && prev.ContentHash == hash:
		text = prev.Text
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		log.Printf("lookup of %s failed, extracting again: %v", name, err)
		fallthrough
	default:
		text = s.extractText(name, u.Data)
	}

	doc := domain.Document{Name: name, Text: text, SourcePath: location}
	if err := s.store.Upsert(ctx, doc, hash, s.now()); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// extractText returns empty text when extraction fails; the résumé is still stored and ranked.
func (s *MatchService) extractText(name string, data []byte) string {
	text, err := s.extractor.Extract(name, data)
	if err != nil {
		log.Printf("text extraction failed for %s: %v", name, err)
		return ""
	}
	return text
}

// Match ranks every stored résumé, with supplied documents taking precedence
// over stored ones of the same name, against query. limit <= 0 uses the service default.
func (s *MatchService) Match(ctx context.Context, query string, supplied []domain.Document, limit int) (*domain.MatchResult, error) {
	stored, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	persisted := make([]domain.Document, len(stored))
	for i := range stored {
		persisted[i] = stored[i].Document
	}
	c := corpus.Merge(persisted, supplied)

	result := &domain.MatchResult{
		RequestID:  uuid.NewString(),
		Query:      query,
		CorpusSize: c.Len(),
		CreatedAt:  s.now(),
	}
	if limit <= 0 {
		limit = s.limit
	}
	top, scores := ranking.RankAndSelect(s.ranker, query, c, limit)
	for _, sd := range top {
		doc, _ := c.Get(sd.Name)
		result.Matches = append(result.Matches, domain.Match{ScoredDocument: sd, Summary: s.summarize(doc.Text)})
	}
	seen := make(map[string]struct{}, len(supplied))
	for _, d := range supplied {
		if _, ok := seen[d.Name]; ok {
			continue
		}
		seen[d.Name] = struct{}{}
		i := c.Index(d.Name)
		result.Supplied = append(result.Supplied, domain.ScoredDocument{Name: d.Name, Score: scores[i], SourcePath: d.SourcePath})
	}
	log.Printf("match %s: ranked %d resumes, %d matches", result.RequestID, result.CorpusSize, len(result.Matches))

	if err := s.notifier.Publish(ctx, result); err != nil {
		log.Printf("failed to publish match %s: %v", result.RequestID, err)
	}
	return result, nil
}

func (s *MatchService) summarize(text string) string {
	if s.summarizer == nil || text == "" {
		return ""
	}
	summary, err := s.summarizer.Summarize(text, s.summaryMaxSentences)
	if err != nil {
		return ""
	}
	return summary
}

// Download returns a stored résumé and its file bytes.
func (s *MatchService) Download(ctx context.Context, name string) (domain.Document, []byte, error) {
	doc, err := s.store.Get(ctx, name)
	if err != nil {
		return domain.Document{}, nil, err
	}
	data, err := s.files.Get(ctx, doc.SourcePath)
	if err != nil {
		return domain.Document{}, nil, err
	}
	return doc.Document, data, nil
}

// List returns every stored résumé.
func (s *MatchService) List(ctx context.Context) ([]domain.StoredDocument, error) {
	return s.store.LoadAll(ctx)
}

// Remove deletes a résumé and its file.
func (s *MatchService) Remove(ctx context.Context, name string) error {
	doc, err := s.store.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	if doc.SourcePath != "" {
		if err := s.files.Delete(ctx, doc.SourcePath); err != nil {
			log.Printf("failed to delete file %s: %v", doc.SourcePath, err)
		}
	}
	return nil
}

// Clean removes stored résumés whose file no longer exists and returns how many were removed.
func (s *MatchService) Clean(ctx context.Context) (int, error) {
	stored, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, doc := range stored {
		if doc.SourcePath != "" {
			ok, err := s.files.Exists(ctx, doc.SourcePath)
			if err != nil {
				log.Printf("cannot check %s, keeping it: %v", doc.SourcePath, err)
				continue
			}
			if ok {
				continue
			}
		}
		if err := s.store.Delete(ctx, doc.Name); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
