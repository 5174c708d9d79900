// Package raster defines the contract for turning a PDF into page images.
// The fitz subpackage provides the MuPDF-backed implementation; tests use
// in-memory fakes.
package raster

import (
	"context"
	"image"
)

// Rasterizer renders every page of a PDF to a raster image, in page order.
type Rasterizer interface {
	Name() string
	Pages(ctx context.Context, pdfPath string) ([]image.Image, error)
}
