package resume

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const MaxFileSize = 10 << 20

var ErrUnsupportedType = errors.New("only PDF, DOC and DOCX files are allowed")

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ContentType returns the MIME type for an accepted resume file name.
func ContentType(fileName string) (string, error) {
	ct, ok := contentTypes[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return "", ErrUnsupportedType
	}
	return ct, nil
}

// ExtractText pulls plain text out of a resume file, chosen by extension.
func ExtractText(fileName string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	case ".doc":
		return extractLegacyDocText(data), nil
	default:
		return "", ErrUnsupportedType
	}
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	return stripXMLTags(doc.Editable().GetContent()), nil
}

// stripXMLTags turns the document.xml body returned by docx into text, one
// paragraph per line.
func stripXMLTags(s string) string {
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extractLegacyDocText keeps printable runs from a binary Word 97 file. It is
// lossy but recovers enough body text for keyword matching.
func extractLegacyDocText(data []byte) string {
	var b strings.Builder
	var run strings.Builder
	flush := func() {
		if run.Len() >= 4 {
			b.WriteString(run.String())
			b.WriteString("\n")
		}
		run.Reset()
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r != utf8.RuneError && (unicode.IsPrint(r) || r == '\t') {
			run.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return b.String()
}
