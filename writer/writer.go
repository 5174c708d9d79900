// Package writer serializes a document.Document to PDF bytes: catalog, page
// tree, a shared Helvetica font, per-page content streams, and DCTDecode
// image XObjects, followed by the xref table and trailer.
package writer

import (
	"context"
	"io"

	"github.com/wudi/ridereport/document"
)

// Config controls serialization behavior.
type Config struct {
	// Deterministic omits volatile entries (creation date) so identical
	// documents serialize to identical bytes.
	Deterministic bool
}

// Writer serializes documents.
type Writer interface {
	Write(ctx context.Context, doc *document.Document, w io.Writer, cfg Config) error
}

// NewWriter constructs a Writer.
func NewWriter() Writer { return &impl{} }
