package pdfrenderer

import (
	"fmt"
	"image"
)

// Engine opens PDF documents held in memory for rasterization. All PDF
// parsing, font handling and color management happens inside the engine;
// callers only see decoded page images.
type Engine interface {
	// Open parses the given PDF bytes and returns a handle for rendering.
	// The returned Document must be closed by the caller.
	Open(pdf []byte) (Document, error)

	// Close cleans up any resources used by the engine
	Close() error
}

// Document is an open PDF ready for page rendering. Page indexes are
// 0-based. A Document is not safe for concurrent use.
type Document interface {
	// PageCount returns the number of pages in the document
	PageCount() int

	// RenderPage rasterizes one page at the given DPI
	RenderPage(pageIndex int, dpi int) (image.Image, error)

	// Close releases the underlying document handle
	Close() error
}

// Supported engine kinds for NewEngine.
const (
	EnginePDFium = "pdfium"
	EngineFitz   = "fitz"
)

// NewEngine creates a rasterization engine of the given kind. The empty
// string selects PDFium (pure Go, no CGo).
func NewEngine(kind string) (Engine, error) {
	switch kind {
	case EnginePDFium, "":
		return NewPDFiumEngine()
	case EngineFitz:
		return NewFitzEngine()
	default:
		return nil, fmt.Errorf("unknown rasterization engine %q", kind)
	}
}
