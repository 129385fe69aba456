// Package notify publishes match outcomes.
package notify

import (
	"context"
	"time"

	"resumematch/internal/domain"
)

// Event is the message body published for a completed match.
type Event struct {
	RequestID  string       `json:"request_id"`
	Status     string       `json:"status"`
	Query      string       `json:"query"`
	CorpusSize int          `json:"corpus_size"`
	Matches    []EventMatch `json:"matches"`
	Timestamp  time.Time    `json:"timestamp"`
}

// EventMatch is one ranked résumé inside an Event.
type EventMatch struct {
	Name    string  `json:"name"`
	Percent float64 `json:"score_percentage"`
	Path    string  `json:"path"`
}

// NewEvent converts a match result to its published form.
func NewEvent(result *domain.MatchResult) Event {
	matches := make([]EventMatch, len(result.Matches))
	for i, m := range result.Matches {
		matches[i] = EventMatch{Name: m.Name, Percent: m.Percent(), Path: m.SourcePath}
	}
	return Event{
		RequestID:  result.RequestID,
		Status:     "completed",
		Query:      result.Query,
		CorpusSize: result.CorpusSize,
		Matches:    matches,
		Timestamp:  result.CreatedAt,
	}
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, *domain.MatchResult) error { return nil }
func (Noop) Close() error { return nil }
