package writer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/wudi/ridereport/builder"
	"github.com/wudi/ridereport/document"
)

func buildTwoPageDoc(t *testing.T) *document.Document {
	t.Helper()
	img := &document.Image{Width: 700, Height: 300, Data: []byte{0xFF, 0xD8, 0xFF, 0xD9}}
	b := builder.NewBuilder()
	b.SetInfo(&document.Info{Title: "Ride Report", Producer: "ridereport"})
	b.NewPage(595, 842).
		DrawText("Week 1", 275, 800, builder.TextOptions{FontSize: 12}).
		DrawImage(img, 50, 615, 220, 94, builder.ImageOptions{}).
		Finish().
		NewPage(595, 842).
		DrawText("Week 2", 275, 800, builder.TextOptions{FontSize: 12}).
		Finish()
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build doc: %v", err)
	}
	return doc
}

func TestWriteStructure(t *testing.T) {
	doc := buildTwoPageDoc(t)
	var buf bytes.Buffer
	if err := NewWriter().Write(context.Background(), doc, &buf, Config{Deterministic: true}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "%PDF-1.7\n") {
		t.Fatalf("missing header: %q", out[:16])
	}
	for _, want := range []string{
		"/Type /Catalog",
		"/Type /Pages /Count 2",
		"/BaseFont /Helvetica",
		"/Subtype /Image /Width 700 /Height 300",
		"/Filter /DCTDecode",
		"/Im1 ",
		"(Week 1) Tj",
		"(Week 2) Tj",
		"220 0 0 94 50 615 cm",
		"/Title (Ride Report)",
		"xref",
		"trailer",
		"startxref",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "%%EOF\n") {
		t.Fatalf("missing EOF marker")
	}
}

func TestWriteDeterministic(t *testing.T) {
	doc := buildTwoPageDoc(t)
	var a, b bytes.Buffer
	if err := NewWriter().Write(context.Background(), doc, &a, Config{Deterministic: true}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := NewWriter().Write(context.Background(), doc, &b, Config{Deterministic: true}); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("deterministic writes differ")
	}
}

func TestWriteEscapesText(t *testing.T) {
	b := builder.NewBuilder()
	b.NewPage(100, 100).
		DrawText("a(b)c\\d", 10, 10, builder.TextOptions{}).
		Finish()
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build doc: %v", err)
	}
	var buf bytes.Buffer
	if err := NewWriter().Write(context.Background(), doc, &buf, Config{Deterministic: true}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `(a\(b\)c\\d) Tj`) {
		t.Fatalf("string not escaped: %s", buf.String())
	}
}

func TestWriteRejectsEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter().Write(context.Background(), &document.Document{}, &buf, Config{}); err == nil {
		t.Fatal("expected error for empty document")
	}
}
