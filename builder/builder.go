// Package builder provides a fluent API for assembling the report PDF. It
// produces a document.Document; the writer package turns that into bytes.
package builder

import (
	"fmt"

	"github.com/wudi/ridereport/document"
)

// PDFBuilder provides a fluent API for PDF construction.
type PDFBuilder interface {
	NewPage(width, height float64) PageBuilder
	SetInfo(info *document.Info) PDFBuilder
	Build() (*document.Document, error)
}

// PageBuilder provides a fluent API for page construction.
type PageBuilder interface {
	DrawText(text string, x, y float64, opts TextOptions) PageBuilder
	DrawImage(img *document.Image, x, y, width, height float64, opts ImageOptions) PageBuilder
	Finish() PDFBuilder
}

// TextOptions configures text drawing. The zero FontSize falls back to 12.
type TextOptions struct {
	FontSize float64
	Color    Color
}

// ImageOptions configures image drawing.
type ImageOptions struct {
	Interpolate bool
}

// Color represents an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

type builderImpl struct {
	pages        []*document.Page
	info         *document.Info
	xobjectCount int
	xobjectNames map[*document.Image]string
}

type pageBuilderImpl struct {
	parent *builderImpl
	page   *document.Page
}

// NewBuilder constructs a PDFBuilder.
func NewBuilder() PDFBuilder { return &builderImpl{} }

func (b *builderImpl) NewPage(w, h float64) PageBuilder {
	p := &document.Page{MediaBox: document.Rectangle{URX: w, URY: h}}
	b.pages = append(b.pages, p)
	return &pageBuilderImpl{parent: b, page: p}
}

func (b *builderImpl) SetInfo(info *document.Info) PDFBuilder {
	b.info = info
	return b
}

func (b *builderImpl) Build() (*document.Document, error) {
	if len(b.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	for i, p := range b.pages {
		p.Index = i
	}
	return &document.Document{Pages: b.pages, Info: b.info}, nil
}

func (b *builderImpl) imageName(img *document.Image) string {
	if b.xobjectNames == nil {
		b.xobjectNames = make(map[*document.Image]string)
	}
	if name, ok := b.xobjectNames[img]; ok {
		return name
	}
	b.xobjectCount++
	name := fmt.Sprintf("Im%d", b.xobjectCount)
	b.xobjectNames[img] = name
	return name
}

func (p *pageBuilderImpl) DrawText(text string, x, y float64, opts TextOptions) PageBuilder {
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}
	ops := &p.page.Contents
	*ops = append(*ops, document.Operation{Operator: "BT"})
	*ops = append(*ops, document.Operation{
		Operator: "Tf",
		Operands: []document.Operand{document.NameOperand{Value: "F1"}, document.NumberOperand{Value: size}},
	})
	*ops = append(*ops, document.Operation{
		Operator: "Tm",
		Operands: []document.Operand{
			document.NumberOperand{Value: 1},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: 1},
			document.NumberOperand{Value: x},
			document.NumberOperand{Value: y},
		},
	})
	if !isZeroColor(opts.Color) {
		*ops = append(*ops, document.Operation{
			Operator: "rg",
			Operands: []document.Operand{
				document.NumberOperand{Value: opts.Color.R},
				document.NumberOperand{Value: opts.Color.G},
				document.NumberOperand{Value: opts.Color.B},
			},
		})
	}
	*ops = append(*ops, document.Operation{
		Operator: "Tj",
		Operands: []document.Operand{document.StringOperand{Value: []byte(text)}},
	})
	*ops = append(*ops, document.Operation{Operator: "ET"})
	return p
}

func (p *pageBuilderImpl) DrawImage(img *document.Image, x, y, width, height float64, opts ImageOptions) PageBuilder {
	if img == nil {
		return p
	}
	if p.page.XObjects == nil {
		p.page.XObjects = make(map[string]*document.Image)
	}
	name := p.parent.imageName(img)
	p.page.XObjects[name] = img

	w := width
	if w == 0 {
		w = float64(img.Width)
	}
	h := height
	if h == 0 {
		h = float64(img.Height)
	}

	ops := &p.page.Contents
	*ops = append(*ops, document.Operation{Operator: "q"})
	*ops = append(*ops, document.Operation{
		Operator: "cm",
		Operands: []document.Operand{
			document.NumberOperand{Value: w},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: 0},
			document.NumberOperand{Value: h},
			document.NumberOperand{Value: x},
			document.NumberOperand{Value: y},
		},
	})
	*ops = append(*ops, document.Operation{
		Operator: "Do",
		Operands: []document.Operand{document.NameOperand{Value: name}},
	})
	*ops = append(*ops, document.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) Finish() PDFBuilder { return p.parent }

func isZeroColor(c Color) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}
