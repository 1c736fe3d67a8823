package document

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEmptyDocument       = errors.New("no text could be extracted")
	ErrUnreadableDocument  = errors.New("document could not be read")
)

const DefaultMaxSize = 10 * 1024 * 1024

// Extractor turns uploaded resumes into plain text.
type Extractor struct {
	maxSize int64
	types   map[string]struct{}
}

func NewExtractor(maxSize int64, supported []string) *Extractor {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if len(supported) == 0 {
		supported = []string{".pdf", ".docx", ".txt"}
	}
	types := make(map[string]struct{}, len(supported))
	for _, t := range supported {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		types[t] = struct{}{}
	}
	return &Extractor{maxSize: maxSize, types: types}
}

// Read buffers an upload body, failing once it grows past the size limit.
func (e *Extractor) Read(r io.Reader) ([]byte, error) {
	return readLimited(r, e.maxSize)
}

// FileType returns the lowercase extension of filename.
func FileType(filename string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}

// Check validates type and size before the body is read.
func (e *Extractor) Check(filename string, size int64) error {
	ext := FileType(filename)
	if _, ok := e.types[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
	if size > e.maxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, size, e.maxSize)
	}
	return nil
}

func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	if err := e.Check(filename, int64(len(data))); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch FileType(filename) {
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text file is not valid UTF-8", ErrUnreadableDocument)
		}
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, FileType(filename))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripDocumentXML(doc.Editable().GetContent()), nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

func stripDocumentXML(s string) string {
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")
	s = strings.ReplaceAll(s, "<w:br/>", "\n")
	s = xmlTagRe.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

var (
	spaceRunRe = regexp.MustCompile(`[ \t\f\v]+`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// normalizeWhitespace collapses horizontal runs but keeps line breaks, which
// the skill extractor uses as sentence boundaries.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// readLimited reads at most limit+1 bytes so oversize bodies are detected
// without buffering them whole.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, limit)
	}
	return b, nil
}
