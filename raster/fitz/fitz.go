// Package fitz implements raster.Rasterizer on top of MuPDF via go-fitz.
package fitz

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is used when the caller does not override the render resolution.
// Screenshot receipts need enough resolution for Tesseract to read the
// timestamp line reliably.
const DefaultDPI = 150

// Renderer rasterizes PDF pages with MuPDF.
type Renderer struct {
	dpi float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDPI overrides the render resolution.
func WithDPI(dpi float64) Option {
	return func(r *Renderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// NewRenderer constructs a MuPDF-backed rasterizer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string { return "mupdf" }

// Pages renders every page of the PDF at the configured DPI, in page order.
func (r *Renderer) Pages(ctx context.Context, pdfPath string) ([]image.Image, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", pdfPath, err)
	}
	defer doc.Close()

	pages := make([]image.Image, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
