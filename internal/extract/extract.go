// Package extract pulls plain text out of uploaded résumé files.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrNoText      = errors.New("no text found")
)

var (
	xmlTagRe      = regexp.MustCompile(`<[^>]+>`)
	paragraphEnds = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
)

// Extractor extracts text based on the file extension.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor { return &Extractor{} }

// Supported reports whether name has an extension the extractor understands.
func Supported(name string) bool {
	switch mimeOf(name) {
	case mimePDF, mimeDOCX, mimeText:
		return true
	}
	return false
}

// Extract returns the trimmed text of the file. ErrNoText is returned when the
// file parsed but holds no text, for example a scanned PDF.
func (e *Extractor) Extract(name string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch m := mimeOf(name); m {
	case mimeText:
		text = string(data)
	case mimePDF:
		text, err = extractPDFText(data)
	case mimeDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(name))
	}
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNoText)
	}
	return text, nil
}

func mimeOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".txt", ".text", ".md":
		return mimeText
	}
	m, _, _ := mime.ParseMediaType(mime.TypeByExtension(ext))
	return m
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	pages := make([]string, 0, pdfReader.NumPage())
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEnds.ReplaceAllString(content, "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
