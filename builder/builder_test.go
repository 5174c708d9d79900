package builder

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/wudi/ridereport/document"
)

func TestBuilder_DrawTextPopulatesOps(t *testing.T) {
	b := NewBuilder()
	b.NewPage(595, 842).
		DrawText("Week 1", 275, 800, TextOptions{FontSize: 12}).
		Finish()
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build doc: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected one page, got %d", len(doc.Pages))
	}
	page := doc.Pages[0]
	if page.Index != 0 {
		t.Fatalf("unexpected page index: %d", page.Index)
	}
	ops := page.Contents
	expectOperators := []string{"BT", "Tf", "Tm", "Tj", "ET"}
	if len(ops) != len(expectOperators) {
		t.Fatalf("got %d operations, want %d", len(ops), len(expectOperators))
	}
	for i, op := range expectOperators {
		if ops[i].Operator != op {
			t.Fatalf("operation %d = %s, want %s", i, ops[i].Operator, op)
		}
	}
	if tf := ops[1].Operands; tf[0].(document.NameOperand).Value != "F1" || tf[1].(document.NumberOperand).Value != 12 {
		t.Fatalf("Tf operands wrong: %+v", tf)
	}
	if tm := ops[2].Operands; tm[4].(document.NumberOperand).Value != 275 || tm[5].(document.NumberOperand).Value != 800 {
		t.Fatalf("Tm coordinates not set: %+v", tm)
	}
	if tj := ops[3].Operands[0].(document.StringOperand); string(tj.Value) != "Week 1" {
		t.Fatalf("Tj text mismatch: %q", tj.Value)
	}
}

func TestBuilder_DrawImageRegistersXObject(t *testing.T) {
	img := &document.Image{Width: 700, Height: 300, Data: []byte{0xFF, 0xD8}}
	b := NewBuilder()
	b.NewPage(595, 842).
		DrawImage(img, 50, 615, 220, 94, ImageOptions{}).
		DrawImage(img, 350, 615, 220, 94, ImageOptions{}).
		Finish()
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build doc: %v", err)
	}
	page := doc.Pages[0]
	if len(page.XObjects) != 1 {
		t.Fatalf("same image drawn twice must share one XObject, got %d", len(page.XObjects))
	}
	if page.XObjects["Im1"] != img {
		t.Fatalf("XObject Im1 not registered")
	}
	// q cm Do Q, twice.
	if len(page.Contents) != 8 {
		t.Fatalf("got %d operations, want 8", len(page.Contents))
	}
	cm := page.Contents[1]
	if cm.Operator != "cm" || cm.Operands[0].(document.NumberOperand).Value != 220 {
		t.Fatalf("cm not scaled to display width: %+v", cm)
	}
	do := page.Contents[2]
	if do.Operator != "Do" || do.Operands[0].(document.NameOperand).Value != "Im1" {
		t.Fatalf("Do does not reference Im1: %+v", do)
	}
}

func TestBuilder_BuildRequiresPages(t *testing.T) {
	if _, err := NewBuilder().Build(); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestImageFromJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 700, 300)), nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	img, err := ImageFromJPEG(buf.Bytes())
	if err != nil {
		t.Fatalf("from jpeg: %v", err)
	}
	if img.Width != 700 || img.Height != 300 {
		t.Fatalf("dims %dx%d", img.Width, img.Height)
	}
	if !bytes.Equal(img.Data, buf.Bytes()) {
		t.Fatal("jpeg bytes must be embedded verbatim")
	}
}
