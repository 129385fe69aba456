package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"resumematch/internal/domain"
)

// MatchPort is the TUI-facing subset of the match service.
type MatchPort interface {
	Match(ctx context.Context, query string, supplied []domain.Document, limit int) (*domain.MatchResult, error)
	Download(ctx context.Context, name string) (domain.Document, []byte, error)
}

// Model is the Bubble Tea model for the interactive matcher.
type Model struct {
	service     MatchPort
	input       textinput.Model
	viewport    viewport.Model
	result      *domain.MatchResult
	supplied    []domain.Document
	downloadDir string
	limit       int
	status      string
	cursor      int
	ready       bool
}

// New creates a model. supplied documents take part in every match; saved
// résumés are written to downloadDir.
func New(service MatchPort, supplied []domain.Document, downloadDir string, limit int) Model {
	ti := textinput.New()
	ti.Prompt = "job> "
	ti.Placeholder = "Paste a job description and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		service:     service,
		input:       ti,
		viewport:    viewport.New(0, 0),
		supplied:    supplied,
		downloadDir: downloadDir,
		limit:       limit,
		status:      "Enter a job description. ↑/↓ browse, ctrl+s saves the selected résumé.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		vh := msg.Height - (2 + qh + 1)
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderSelected())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				m.runMatch(q)
				return m, nil
			}
		case "ctrl+s":
			m.saveSelected()
			return m, nil
		case "down":
			if n := m.count(); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.renderSelected())
				return m, nil
			}
		case "up":
			if n := m.count(); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderSelected())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) runMatch(query string) {
	res, err := m.service.Match(context.Background(), query, m.supplied, m.limit)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.result = nil
	} else {
		m.result = res
		m.cursor = 0
		switch {
		case res.CorpusSize == 0:
			m.status = "No resumes found. Add some with the add command first."
		default:
			m.status = fmt.Sprintf("Top %d of %d resumes", len(res.Matches), res.CorpusSize)
		}
	}
	m.viewport.SetContent(m.renderSelected())
}

func (m *Model) saveSelected() {
	if m.count() == 0 {
		m.status = "Nothing to save."
		return
	}
	name := m.result.Matches[m.cursor].Name
	_, data, err := m.service.Download(context.Background(), name)
	if err == nil {
		err = os.MkdirAll(m.downloadDir, 0o755)
	}
	dst := filepath.Join(m.downloadDir, filepath.Base(name))
	if err == nil {
		err = os.WriteFile(dst, data, 0o644)
	}
	if err != nil {
		m.status = fmt.Sprintf("Save %s failed: %v", name, err)
		return
	}
	m.status = "Saved " + dst
}

func (m Model) count() int {
	if m.result == nil {
		return 0
	}
	return len(m.result.Matches)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Resume Matcher")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderSelected() string {
	if m.count() == 0 {
		return "No matches yet."
	}
	sel := m.result.Matches[m.cursor]
	title := fmt.Sprintf("%d/%d  %s  (%.2f%% match)", m.cursor+1, len(m.result.Matches), sel.Name, sel.Percent())
	var b strings.Builder
	b.WriteString(title)
	if sel.SourcePath != "" {
		b.WriteString("\n" + pathStyle.Render(sel.SourcePath))
	}
	if sel.Summary != "" {
		b.WriteString("\n\n" + highlightTerms(sel.Summary, m.result.Query))
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unicodeWordRe  = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)
)

// highlightTerms emphasises words of text that also occur in query.
func highlightTerms(text, query string) string {
	terms := toTokenSet(query)
	if len(terms) == 0 {
		return text
	}
	return unicodeWordRe.ReplaceAllStringFunc(text, func(w string) string {
		if _, ok := terms[strings.ToLower(w)]; ok {
			return highlightStyle.Render(w)
		}
		return w
	})
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
