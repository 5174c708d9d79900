package builder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	_ "image/png" // register decoder for non-JPEG sources

	"github.com/wudi/ridereport/document"
)

// ImageFromJPEG wraps already-encoded JPEG bytes as a document image, reading
// only the header for dimensions. The data is embedded verbatim as a
// DCTDecode stream.
func ImageFromJPEG(data []byte) (*document.Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read jpeg header: %w", err)
	}
	return &document.Image{Width: cfg.Width, Height: cfg.Height, Data: data}, nil
}

// ImageFromFile loads an image file as a document image. JPEG files are
// embedded as-is; other formats are decoded and re-encoded to JPEG.
func ImageFromFile(path string) (*document.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if img, err := ImageFromJPEG(data); err == nil {
		return img, nil
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(decoded)
}

// FromImage converts a decoded raster to a document image via JPEG encoding.
func FromImage(src image.Image) (*document.Image, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	bounds := src.Bounds()
	return &document.Image{Width: bounds.Dx(), Height: bounds.Dy(), Data: buf.Bytes()}, nil
}
