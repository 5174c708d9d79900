// Package ingest owns the transient working directory of intermediate receipt
// images and the crop/normalize step that turns a full page raster into the
// canonical report thumbnail.
package ingest

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	_ "image/png" // register decoder for working copies saved by other tools

	"golang.org/x/image/draw"

	"github.com/wudi/ridereport/receipt"
)

// Canonical size every cropped receipt is rescaled to before layout. Aspect
// ratio is not preserved; downstream layout assumes uniform thumbnails.
const (
	CanonicalWidth  = 700
	CanonicalHeight = 300
)

const jpegQuality = 90

// Dir is the working directory for one pipeline run. It is created at the
// start of a run and removed only after the run completes successfully;
// failures leave it in place for inspection.
type Dir struct {
	path string
}

// NewDir wraps a working directory path.
func NewDir(path string) Dir { return Dir{path: path} }

// Path returns the directory path.
func (d Dir) Path() string { return d.path }

// Ensure creates the directory if it does not exist.
func (d Dir) Ensure() error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("create working directory %s: %w", d.path, err)
	}
	return nil
}

// Remove deletes the directory and everything in it.
func (d Dir) Remove() error {
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("remove working directory %s: %w", d.path, err)
	}
	return nil
}

// PageFile names the working copy for the n-th PDF page (1-based).
func (d Dir) PageFile(n int) string {
	return fmt.Sprintf("trip_image_%d.jpg", n)
}

// SaveJPEG writes an image to the directory under name, replacing any
// existing file.
func (d Dir) SaveJPEG(name string, img image.Image) error {
	f, err := os.Create(filepath.Join(d.path, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

// LoadImage reads and decodes a working copy.
func (d Dir) LoadImage(name string) (image.Image, error) {
	f, err := os.Open(filepath.Join(d.path, name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// ReadFile returns the raw bytes of a working copy.
func (d Dir) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.path, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Crop extracts the full-width row window from img. The window is clamped to
// the image bounds first: the offset table driving it is empirically
// approximate, so out-of-range coordinates are not an error.
func Crop(img image.Image, win receipt.Window) image.Image {
	bounds := img.Bounds()
	top := bounds.Min.Y + win.Top
	bottom := bounds.Min.Y + win.Bottom
	if top < bounds.Min.Y {
		top = bounds.Min.Y
	}
	if top > bounds.Max.Y-1 {
		top = bounds.Max.Y - 1
	}
	if bottom > bounds.Max.Y {
		bottom = bounds.Max.Y
	}
	if bottom <= top {
		bottom = top + 1
	}
	rect := image.Rect(bounds.Min.X, top, bounds.Max.X, bottom)

	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}
	out := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(out, image.Point{}, img, rect, draw.Src, nil)
	return out
}

// Resize rescales src to w x h without preserving aspect ratio.
func Resize(src image.Image, w, h int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Normalize applies the crop window and rescales the result to the canonical
// thumbnail size.
func Normalize(img image.Image, win receipt.Window) image.Image {
	return Resize(Crop(img, win), CanonicalWidth, CanonicalHeight)
}
