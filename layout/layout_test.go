package layout

import (
	"testing"
	"time"

	"github.com/wudi/ridereport/timeline"
)

func TestFitThumbnail(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{700, 300, 220, 220, 94},
		{300, 700, 220, 94, 220},
		{100, 100, 220, 100, 100}, // never upscales
		{220, 220, 220, 220, 220},
	}
	for _, tc := range cases {
		gw, gh := FitThumbnail(tc.w, tc.h, tc.max)
		if gw != tc.wantW || gh != tc.wantH {
			t.Fatalf("FitThumbnail(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.w, tc.h, tc.max, gw, gh, tc.wantW, tc.wantH)
		}
	}
}

func TestPaginateGrid(t *testing.T) {
	base := time.Date(2022, time.May, 2, 10, 0, 0, 0, time.UTC)
	bucket := timeline.Bucket{Week: 1, Entries: []timeline.Entry{
		{File: "d1.jpg", Taken: base},
		{File: "d2.jpg", Taken: base.Add(24 * time.Hour)},
		{File: "d3.jpg", Taken: base.Add(48 * time.Hour)},
	}}
	pages := Paginate([]timeline.Bucket{bucket}, 700, 300)
	if len(pages) != 1 {
		t.Fatalf("expected one page, got %d", len(pages))
	}
	page := pages[0]
	if page.Heading != "Week 1" {
		t.Fatalf("heading = %q", page.Heading)
	}
	if len(page.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(page.Cells))
	}
	// Cell 0: left column, top row.
	if c := page.Cells[0]; c.X != CellX || c.Y != CellTopY {
		t.Fatalf("cell 0 at (%v, %v)", c.X, c.Y)
	}
	// Cell 1: right column, top row.
	if c := page.Cells[1]; c.X != CellX+ColumnStride || c.Y != CellTopY {
		t.Fatalf("cell 1 at (%v, %v)", c.X, c.Y)
	}
	// Cell 2: left column, one row step down.
	if c := page.Cells[2]; c.X != CellX || c.Y != CellTopY-RowStride {
		t.Fatalf("cell 2 at (%v, %v)", c.X, c.Y)
	}
	for i, c := range page.Cells {
		if c.ImageWidth != 220 || c.ImageHeight != 94 {
			t.Fatalf("cell %d display size (%v, %v)", i, c.ImageWidth, c.ImageHeight)
		}
	}
	if page.Cells[0].Label != "May 02, 2022" {
		t.Fatalf("label = %q", page.Cells[0].Label)
	}
}

func TestPaginateNumbersPagesNotWeeks(t *testing.T) {
	mk := func(day int) time.Time {
		return time.Date(2022, time.May, day, 12, 0, 0, 0, time.UTC)
	}
	buckets := []timeline.Bucket{
		{Week: 2, Entries: []timeline.Entry{{File: "a.jpg", Taken: mk(9)}}},
		{Week: 5, Entries: []timeline.Entry{{File: "b.jpg", Taken: mk(30)}}},
	}
	pages := Paginate(buckets, 700, 300)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	// Headings count pages from 1 regardless of the underlying week indices.
	if pages[0].Heading != "Week 1" || pages[1].Heading != "Week 2" {
		t.Fatalf("headings = %q, %q", pages[0].Heading, pages[1].Heading)
	}
}
