package document

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	e := NewExtractor(0, nil)

	text, err := e.Extract("resume.TXT", []byte("  Senior engineer\r\n\r\n\r\n\r\nGo,   Docker\tand AWS  "))
	require.NoError(t, err)
	assert.Equal(t, "Senior engineer\n\nGo, Docker and AWS", text)
}

func TestExtract_Rejections(t *testing.T) {
	e := NewExtractor(16, []string{"pdf", ".txt"})

	cases := []struct {
		name     string
		filename string
		data     []byte
		want     error
	}{
		{name: "unsupported", filename: "resume.docx", data: []byte("x"), want: ErrUnsupportedFileType},
		{name: "no extension", filename: "resume", data: []byte("x"), want: ErrUnsupportedFileType},
		{name: "too large", filename: "resume.txt", data: bytes.Repeat([]byte("a"), 17), want: ErrFileTooLarge},
		{name: "empty", filename: "resume.txt", data: []byte("   \n "), want: ErrEmptyDocument},
		{name: "invalid utf8", filename: "resume.txt", data: []byte{0xff, 0xfe}, want: ErrUnreadableDocument},
		{name: "broken pdf", filename: "resume.pdf", data: []byte("not a pdf"), want: ErrUnreadableDocument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Extract(tc.filename, tc.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestExtract_BrokenDocx(t *testing.T) {
	e := NewExtractor(0, nil)
	_, err := e.Extract("cv.docx", []byte("PK not really a zip"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadableDocument))
}

func TestStripDocumentXML(t *testing.T) {
	in := `<w:body><w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go &amp; Python</w:t></w:r></w:p><w:p><w:r><w:t>AWS</w:t></w:r></w:p></w:body>`
	assert.Equal(t, "Skills:\tGo & Python\nAWS\n", stripDocumentXML(in))
}

func TestExtractor_ReadEnforcesMaxSize(t *testing.T) {
	e := NewExtractor(5, nil)

	b, err := e.Read(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = e.Read(strings.NewReader("hello!"))
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}
