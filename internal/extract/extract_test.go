package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExtractPlainText(t *testing.T) {
	text, err := Extractor{}.Extract(context.Background(), []byte("John Doe, Engineer\nGo, Postgres\n"), "resume.txt")
	if err != nil {
		t.Fatalf("extract plain text: %v", err)
	}
	if text != "John Doe, Engineer\nGo, Postgres" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractDocx(t *testing.T) {
	docx := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := Extractor{}.Extract(context.Background(), docx, "resume.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(text, "John Doe") || !strings.Contains(text, "Engineer") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractPlainZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Extractor{}.Extract(context.Background(), buf.Bytes(), "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported format error for plain zip")
	}
	if !strings.Contains(err.Error(), "unsupported document format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractUnsupportedBinary(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	if _, err := (Extractor{}).Extract(context.Background(), payload, "image.png"); err == nil {
		t.Fatal("expected error for unsupported binary format")
	}
}

func TestExtractEmpty(t *testing.T) {
	if _, err := (Extractor{}).Extract(context.Background(), nil, "empty.txt"); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close docx zip: %v", err)
	}
	return buf.Bytes()
}
