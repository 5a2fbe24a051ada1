package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"unicode/utf8"
)

type fakeOCR struct {
	text string
	err  error
}

func (f fakeOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

func encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func TestTextImageUsesOCR(t *testing.T) {
	adapter := &Adapter{OCR: fakeOCR{text: "اسم المالك: أحمد"}}
	got := adapter.Text(context.Background(), encode([]byte("jpegbytes")), FileTypeImage, "سند")
	if got != "اسم المالك: أحمد" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextImageSwallowsOCRFailure(t *testing.T) {
	adapter := &Adapter{OCR: fakeOCR{err: errors.New("engine down")}}
	got := adapter.Text(context.Background(), encode([]byte("jpegbytes")), FileTypeImage, "سند")
	if got != "" {
		t.Fatalf("expected empty text on OCR failure, got %q", got)
	}
}

func TestTextImageWithoutRecognizer(t *testing.T) {
	adapter := &Adapter{}
	if got := adapter.Text(context.Background(), encode([]byte("x")), FileTypeImage, "سند"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestTextPDFInvalidFallsBackToPlaceholder(t *testing.T) {
	adapter := &Adapter{}
	got := adapter.Text(context.Background(), encode([]byte("not a pdf")), FileTypePDF, "عقد الأرض")
	want := "وثيقة pdf بعنوان: عقد الأرض"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextWordInvalidFallsBackToPlaceholder(t *testing.T) {
	adapter := &Adapter{}
	got := adapter.Text(context.Background(), encode([]byte("not a docx")), FileTypeWord, "Land Deed")
	want := "وثيقة word بعنوان: Land Deed"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextWordExtractsDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	const docXML = `<?xml version="1.0"?><w:document><w:body><w:p><w:r><w:t>عقد إيجار أرض زراعية</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(docXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	adapter := &Adapter{}
	got := adapter.Text(context.Background(), encode(buf.Bytes()), FileTypeWord, "عقد")
	if got != "عقد إيجار أرض زراعية" {
		t.Fatalf("unexpected docx text %q", got)
	}
}

func TestTextTruncatesToFiveThousandRunes(t *testing.T) {
	long := strings.Repeat("م", 6000)
	adapter := &Adapter{OCR: fakeOCR{text: long}}
	got := adapter.Text(context.Background(), encode([]byte("img")), FileTypeImage, "سند")
	if utf8.RuneCountInString(got) != 5000 {
		t.Fatalf("expected 5000 runes, got %d", utf8.RuneCountInString(got))
	}
}

func TestTextEmitsDebugLog(t *testing.T) {
	t.Setenv("LOG_DEBUG", "1")

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	adapter := &Adapter{OCR: fakeOCR{text: "اسم المالك: أحمد"}}
	adapter.Text(context.Background(), encode([]byte("jpegbytes")), FileTypeImage, "سند")

	if err := w.Close(); err != nil {
		t.Fatalf("close pipe: %v", err)
	}
	os.Stdout = orig
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read pipe: %v", err)
	}

	logged := string(out)
	if !strings.Contains(logged, "extract.completed") {
		t.Fatalf("expected extraction debug log, got %q", logged)
	}
	if !strings.Contains(logged, `"file_type":"image"`) {
		t.Fatalf("expected file type in debug log, got %q", logged)
	}
}

func TestTextUnknownTypeYieldsEmpty(t *testing.T) {
	adapter := &Adapter{OCR: fakeOCR{text: "ignored"}}
	if got := adapter.Text(context.Background(), encode([]byte("x")), "spreadsheet", "جدول"); got != "" {
		t.Fatalf("expected empty text for unknown type, got %q", got)
	}
}
