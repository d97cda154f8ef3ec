package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const sampleDocXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestTextFromBytesDocx(t *testing.T) {
	data := buildDocx(t, sampleDocXML)

	text, err := TextFromBytes(context.Background(), data,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	if err != nil {
		t.Fatalf("TextFromBytes error: %v", err)
	}
	if !strings.Contains(text, "First paragraph") || !strings.Contains(text, "Second paragraph") {
		t.Fatalf("extracted text = %q", text)
	}
}

func TestTextFromBytesZipReportedDocx(t *testing.T) {
	data := buildDocx(t, sampleDocXML)

	// Browsers often report .docx uploads as generic zip.
	text, err := TextFromBytes(context.Background(), data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("TextFromBytes error: %v", err)
	}
	if !strings.Contains(text, "First paragraph") {
		t.Fatalf("extracted text = %q", text)
	}
}

func TestTextFromBytesUnsupportedType(t *testing.T) {
	if _, err := TextFromBytes(context.Background(), []byte("hello"), "text/rtf", "resume.rtf"); err == nil {
		t.Fatalf("expected error for unsupported mime type")
	}
}

func TestTextFromBytesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TextFromBytes(ctx, nil, "application/pdf", "resume.pdf"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestStripDocxXMLParagraphBreaks(t *testing.T) {
	got := stripDocxXML(sampleDocXML)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected paragraph breaks, got %q", got)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	docx := buildDocx(t, sampleDocXML)
	cases := []struct {
		name     string
		mimeType string
		fileName string
		data     []byte
		want     string
	}{
		{"pdf passthrough", "application/pdf", "a.pdf", nil, "application/pdf"},
		{"charset stripped", "Application/PDF; charset=utf-8", "a.pdf", nil, "application/pdf"},
		{"zip with docx content", "application/zip", "whatever.bin", docx, mimeDOCX},
		{"zip with docx extension", "application/zip", "resume.docx", []byte("not a zip"), mimeDOCX},
		{"plain zip", "application/zip", "archive.zip", []byte("not a zip"), "application/zip"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeMimeType(tc.mimeType, tc.fileName, tc.data); got != tc.want {
				t.Fatalf("normalizeMimeType = %q, want %q", got, tc.want)
			}
		})
	}
}
