package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when no résumé exists under a name.
var ErrNotFound = errors.New("resume not found")

// Document is a single résumé known to the system.
// Text is empty when extraction failed; such documents are still ranked.
type Document struct {
	Name       string
	Text       string
	SourcePath string
}

// StoredDocument is a persisted résumé row.
type StoredDocument struct {
	Document
	ContentHash string
	UploadedAt  time.Time
}

// Upload is a file supplied by the user for the current request.
type Upload struct {
	Name string
	Data []byte
}

// ScoredDocument is a ranked résumé. Score is in [0,1].
type ScoredDocument struct {
	Name       string
	Score      float64
	SourcePath string
}

// Percent returns the score as a percentage for display.
func (s ScoredDocument) Percent() float64 { return s.Score * 100 }

// Match is a top-ranked résumé with a short summary of its text.
type Match struct {
	ScoredDocument
	Summary string
}

// MatchResult is the outcome of one ranking request.
type MatchResult struct {
	RequestID  string
	Query      string
	CorpusSize int
	Matches    []Match
	// Supplied holds the scores of the résumés uploaded with this request, in upload order.
	Supplied  []ScoredDocument
	CreatedAt time.Time
}

// Ranker scores documents against a query, one score per document in input order.
type Ranker interface {
	Rank(query string, documents []string) []float64
}

// Extractor turns raw file bytes into plain text.
type Extractor interface {
	Extract(name string, data []byte) (string, error)
}

// ResumeStore persists résumés keyed by name.
type ResumeStore interface {
	LoadAll(ctx context.Context) ([]StoredDocument, error)
	Get(ctx context.Context, name string) (StoredDocument, error)
	Upsert(ctx context.Context, doc Document, contentHash string, uploadedAt time.Time) error
	Delete(ctx context.Context, name string) error
}

// FileStore keeps the original résumé files. Locations are opaque to callers.
type FileStore interface {
	Put(ctx context.Context, name string, data []byte) (location string, err error)
	Get(ctx context.Context, location string) ([]byte, error)
	Exists(ctx context.Context, location string) (bool, error)
	Delete(ctx context.Context, location string) error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Notifier publishes match outcomes to interested parties.
type Notifier interface {
	Publish(ctx context.Context, result *MatchResult) error
	Close() error
}
