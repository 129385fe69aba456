package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"resumematch/internal/domain"
)

type fakePort struct {
	result  *domain.MatchResult
	err     error
	queries []string
	files   map[string][]byte
}

func (f *fakePort) Match(_ context.Context, query string, _ []domain.Document, _ int) (*domain.MatchResult, error) {
	f.queries = append(f.queries, query)
	return f.result, f.err
}

func (f *fakePort) Download(_ context.Context, name string) (domain.Document, []byte, error) {
	data, ok := f.files[name]
	if !ok {
		return domain.Document{}, nil, domain.ErrNotFound
	}
	return domain.Document{Name: name}, data, nil
}

func newTestModel(t *testing.T, port *fakePort) Model {
	t.Helper()
	m := New(port, nil, filepath.Join(t.TempDir(), "downloads"), 3)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_MatchBrowseAndSave(t *testing.T) {
	port := &fakePort{
		result: &domain.MatchResult{
			Query:      "go developer",
			CorpusSize: 5,
			Matches: []domain.Match{
				{ScoredDocument: domain.ScoredDocument{Name: "a.pdf", Score: 0.5, SourcePath: "/r/a.pdf"}, Summary: "Go developer."},
				{ScoredDocument: domain.ScoredDocument{Name: "b.txt", Score: 0.25}},
			},
		},
		files: map[string][]byte{"b.txt": []byte("resume b")},
	}
	m := newTestModel(t, port)
	m.input.SetValue("  go developer ")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(port.queries) != 1 || port.queries[0] != "go developer" {
		t.Fatalf("expected trimmed query, got %v", port.queries)
	}
	if !strings.Contains(m.renderSelected(), "a.pdf") || !strings.Contains(m.renderSelected(), "50.00% match") {
		t.Fatalf("unexpected render %q", m.renderSelected())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.cursor)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	data, err := os.ReadFile(filepath.Join(m.downloadDir, "b.txt"))
	if err != nil || string(data) != "resume b" {
		t.Fatalf("expected saved file, got %q %v (status %q)", data, err, m.status)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Fatalf("expected cursor to wrap to 0, got %d", m.cursor)
	}
}

func TestModel_MatchError(t *testing.T) {
	port := &fakePort{err: errors.New("db closed")}
	m := newTestModel(t, port)
	m.input.SetValue("anything")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.status, "db closed") || m.count() != 0 {
		t.Fatalf("unexpected state %q %d", m.status, m.count())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "Nothing to save." {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestHighlightTerms(t *testing.T) {
	if got := highlightTerms("Plain text.", ""); got != "Plain text." {
		t.Fatalf("expected text unchanged, got %q", got)
	}
	got := highlightTerms("Senior Go developer.", "go")
	if !strings.Contains(got, "Go") || !strings.Contains(got, "developer.") {
		t.Fatalf("unexpected highlight %q", got)
	}
}
