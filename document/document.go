// Package document is the in-memory model of a report PDF: pages, their
// content operations, and the image XObjects they reference. The builder
// package populates it and the writer package serializes it.
package document

// Document is a complete report ready for serialization.
type Document struct {
	Pages []*Page
	Info  *Info
}

// Info carries the document information dictionary entries the report sets.
type Info struct {
	Title    string
	Producer string
}

// Rectangle is a PDF rectangle in default user space units.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Page holds one page's geometry, content stream operations, and image
// resources keyed by XObject name.
type Page struct {
	Index    int
	MediaBox Rectangle
	Contents []Operation
	XObjects map[string]*Image
}

// Image is a raster resource. Data is JPEG-encoded and is embedded verbatim
// as a DCTDecode stream.
type Image struct {
	Width  int
	Height int
	Data   []byte
}

// Operation is a single content stream operator with its operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a content stream operand value.
type Operand interface {
	isOperand()
}

// NumberOperand is a numeric operand.
type NumberOperand struct{ Value float64 }

// NameOperand is a name operand, serialized with a leading slash.
type NameOperand struct{ Value string }

// StringOperand is a literal string operand.
type StringOperand struct{ Value []byte }

func (NumberOperand) isOperand() {}
func (NameOperand) isOperand()   {}
func (StringOperand) isOperand() {}
