// Package pdfinfo inspects PDF documents without touching the
// rasterization engine. Useful for sizing work (page count, page
// dimensions) before committing to a render.
package pdfinfo

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageSize is one page's media box in PDF points (1/72 inch)
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Info summarizes a parsed document
type Info struct {
	PageCount int        `json:"pageCount"`
	Pages     []PageSize `json:"pages"`
}

// Probe parses the PDF structure and reports page count and per-page
// dimensions. Pages without their own MediaBox entry report a zero size.
func Probe(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF data")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	info := &Info{PageCount: reader.NumPage()}
	info.Pages = make([]PageSize, 0, info.PageCount)

	for pageNum := 1; pageNum <= info.PageCount; pageNum++ {
		page := reader.Page(pageNum)
		size := PageSize{}
		if !page.V.IsNull() {
			box := page.V.Key("MediaBox")
			if box.Len() == 4 {
				size.Width = box.Index(2).Float64() - box.Index(0).Float64()
				size.Height = box.Index(3).Float64() - box.Index(1).Float64()
			}
		}
		info.Pages = append(info.Pages, size)
	}

	return info, nil
}
