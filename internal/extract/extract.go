package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"archive-backend/internal/ocr"
	"archive-backend/internal/shared/telemetry"
)

// Accepted document file types.
const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
	FileTypeWord  = "word"
)

// maxTextLen caps extracted text to bound storage size and pipeline cost.
const maxTextLen = 5000

// Adapter normalizes heterogeneous document payloads into plain text.
// Extraction never fails the caller: images degrade to empty text when
// OCR yields nothing, PDF/Word degrade to a deterministic placeholder.
type Adapter struct {
	OCR ocr.Recognizer
}

// Text extracts plain text from a base64-encoded payload, truncated to
// 5000 characters.
func (a *Adapter) Text(ctx context.Context, fileData, fileType, title string) string {
	raw, err := base64.StdEncoding.DecodeString(fileData)
	if err != nil {
		// Not base64; treat the payload as raw bytes.
		raw = []byte(fileData)
	}

	var text string
	switch fileType {
	case FileTypeImage:
		text = a.recognize(ctx, raw, title)
	case FileTypePDF:
		text = extractOrPlaceholder(extractPDF, raw, fileType, title)
	case FileTypeWord:
		text = extractOrPlaceholder(extractDOCX, raw, fileType, title)
	}
	text = truncate(text, maxTextLen)
	telemetry.Debug("extract.completed", map[string]any{
		"file_type": fileType,
		"chars":     len([]rune(text)),
	})
	return text
}

func (a *Adapter) recognize(ctx context.Context, image []byte, title string) string {
	if a.OCR == nil {
		return ""
	}
	text, err := a.OCR.Recognize(ctx, image)
	if err != nil {
		// OCR failure is swallowed; the document is stored without text.
		telemetry.Warn("extract.ocr_failed", map[string]any{"title": title, "error": err.Error()})
		return ""
	}
	return text
}

func extractOrPlaceholder(fn func([]byte) (string, error), raw []byte, fileType, title string) string {
	text, err := fn(raw)
	if err != nil || strings.TrimSpace(text) == "" {
		return placeholder(fileType, title)
	}
	return text
}

// placeholder is the deterministic fallback used when a PDF/Word payload
// yields no text.
func placeholder(fileType, title string) string {
	return fmt.Sprintf("وثيقة %s بعنوان: %s", fileType, title)
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
