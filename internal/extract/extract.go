// Package extract converts uploaded files into plain text for the
// generation pipeline. PDFs go through a text extractor; everything else is
// treated as UTF-8 text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Extraction errors
var (
	// ErrEmptyFile is returned when the upload contains no data
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrNoText is returned when extraction succeeds but yields no usable text
	ErrNoText = errors.New("no extractable text in file")

	// ErrUnsupportedEncoding is returned when a non-PDF upload is not valid UTF-8
	ErrUnsupportedEncoding = errors.New("file is not valid UTF-8 text")
)

// Text extracts plain text from an uploaded file. The file type is decided
// by extension: .pdf goes through the PDF extractor, anything else must be
// UTF-8 text and passes through trimmed.
func Text(fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return pdfText(data)
	}

	if !utf8.Valid(data) {
		return "", ErrUnsupportedEncoding
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
