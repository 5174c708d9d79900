// Package layout turns week buckets into page descriptions: a heading and a
// two-column grid of dated thumbnail cells with deterministic positions. The
// descriptions are geometry only; drawing is the renderer's job.
package layout

import (
	"fmt"
	"math"

	"github.com/wudi/ridereport/timeline"
)

// Page geometry in PDF points, A4 portrait.
const (
	PageWidth  = 595
	PageHeight = 842

	// HeadingX and HeadingY fix the "Week N" heading near the top center.
	HeadingX = 275
	HeadingY = 800

	// Cells start at (CellX, CellTopY). Odd-indexed cells shift right by
	// ColumnStride; every completed pair advances the row down by RowStride.
	CellX        = 50
	CellTopY     = 780
	ColumnStride = 300
	RowStride    = 65

	// ImageDrop is the distance from a cell's date label down to its image.
	ImageDrop = 100

	// ThumbnailMax bounds the drawn size of each image; the normalized raster
	// is scaled to fit within a ThumbnailMax square, aspect preserved.
	ThumbnailMax = 220
)

// DateLabelFormat renders timestamps as e.g. "January 02, 2022".
const DateLabelFormat = "January 02, 2006"

// Cell places one dated thumbnail. X and Y are the label position; the image
// is drawn ImageDrop below at ImageWidth x ImageHeight.
type Cell struct {
	Label       string
	File        string
	X           float64
	Y           float64
	ImageWidth  float64
	ImageHeight float64
}

// Page describes one report page.
type Page struct {
	Heading string
	Cells   []Cell
}

// FitThumbnail scales w x h to fit within a max square without upscaling,
// preserving aspect ratio.
func FitThumbnail(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	scale := math.Min(float64(max)/float64(w), float64(max)/float64(h))
	fw := int(math.Round(float64(w) * scale))
	fh := int(math.Round(float64(h) * scale))
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

// Paginate emits one page per bucket, in bucket order, numbering headings from
// 1. Every image has already been normalized to imgW x imgH, so all cells
// share one display size.
func Paginate(buckets []timeline.Bucket, imgW, imgH int) []Page {
	dw, dh := FitThumbnail(imgW, imgH, ThumbnailMax)
	pages := make([]Page, 0, len(buckets))
	for i, bucket := range buckets {
		page := Page{Heading: fmt.Sprintf("Week %d", i+1)}
		for idx, entry := range bucket.Entries {
			x := float64(CellX)
			if idx%2 == 1 {
				x += ColumnStride
			}
			y := float64(CellTopY - RowStride*(idx/2))
			page.Cells = append(page.Cells, Cell{
				Label:       entry.Taken.Format(DateLabelFormat),
				File:        entry.File,
				X:           x,
				Y:           y,
				ImageWidth:  float64(dw),
				ImageHeight: float64(dh),
			})
		}
		pages = append(pages, page)
	}
	return pages
}
