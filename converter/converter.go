// Package converter turns PDF documents into raster images, either one
// encoded image per page or a single vertically stacked composite. All
// rasterization is delegated to a pdfrenderer.Engine; this package only
// validates input, iterates pages, stitches and encodes.
package converter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/drummonds/goRaster/pdfrenderer"
)

// DefaultDPI is used when Settings.DPI is left zero
const DefaultDPI = 96

// Settings controls one conversion call. The zero Format is JPEG, so use
// DefaultSettings (or ParseFormat) rather than a bare literal unless you
// mean it.
type Settings struct {
	DPI    int            // rasterization resolution, must be positive
	Format imaging.Format // output image codec

	// MaxWidth, when positive, downscales wider results to this pixel
	// width, preserving aspect ratio. Applied per page in PageImages and
	// to the composite in SingleImage.
	MaxWidth int

	// Sharpen, when positive, applies a sharpening pass with the given
	// sigma after any resize
	Sharpen float64
}

// DefaultSettings returns 96 DPI PNG with no post-processing
func DefaultSettings() Settings {
	return Settings{DPI: DefaultDPI, Format: imaging.PNG}
}

// ParseFormat maps a format name or file extension ("png", ".jpg", ...)
// to an image codec
func ParseFormat(name string) (imaging.Format, error) {
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return format, fmt.Errorf("%w: unknown image format %q", ErrInvalidArgument, name)
	}
	return format, nil
}

func (s Settings) normalize() (Settings, error) {
	if s.DPI == 0 {
		s.DPI = DefaultDPI
	}
	if s.DPI < 0 {
		return s, fmt.Errorf("%w: DPI must be positive, got %d", ErrInvalidArgument, s.DPI)
	}
	return s, nil
}

// Converter drives a rasterization engine. It holds no per-call state,
// so one Converter can serve any number of sequential conversions.
type Converter struct {
	engine pdfrenderer.Engine
	logger *slog.Logger
}

// New creates a Converter on top of the given engine. A nil logger
// falls back to slog.Default.
func New(engine pdfrenderer.Engine, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{engine: engine, logger: logger}
}

// PageImages rasterizes every page of the document and returns one
// encoded image per page, in page order. An empty document yields an
// empty slice. A failure on any page aborts the whole call; results for
// earlier pages are discarded.
func (c *Converter) PageImages(input Input, settings Settings, mode OutputMode) ([]Output, error) {
	settings, err := settings.normalize()
	if err != nil {
		return nil, err
	}
	pdf, err := input.decode()
	if err != nil {
		return nil, err
	}

	doc, err := c.engine.Open(pdf)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	c.logger.Debug("Rasterizing document to page images", "pages", pageCount, "dpi", settings.DPI, "format", settings.Format.String())

	outputs := make([]Output, 0, pageCount)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		img, err := doc.RenderPage(pageNum, settings.DPI)
		if err != nil {
			return nil, fmt.Errorf("unable to render page %d: %w", pageNum+1, err)
		}
		encoded, err := encodeImage(img, settings)
		if err != nil {
			return nil, fmt.Errorf("unable to encode page %d: %w", pageNum+1, err)
		}
		out, err := newOutput(encoded, mode)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// SingleImage rasterizes every page and stacks them vertically into one
// encoded image. The canvas is as wide as the widest page and as tall as
// the sum of all page heights; each page is drawn top-left at its own
// vertical offset, so mixed-size documents stack without clipping.
func (c *Converter) SingleImage(input Input, settings Settings, mode OutputMode) (Output, error) {
	settings, err := settings.normalize()
	if err != nil {
		return Output{}, err
	}
	pdf, err := input.decode()
	if err != nil {
		return Output{}, err
	}

	doc, err := c.engine.Open(pdf)
	if err != nil {
		return Output{}, err
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	if pageCount == 0 {
		return Output{}, errors.New("no pages could be rendered from PDF")
	}
	c.logger.Debug("Rasterizing document to single image", "pages", pageCount, "dpi", settings.DPI, "format", settings.Format.String())

	pages := make([]image.Image, 0, pageCount)
	totalHeight := 0
	maxWidth := 0
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		img, err := doc.RenderPage(pageNum, settings.DPI)
		if err != nil {
			return Output{}, fmt.Errorf("unable to render page %d: %w", pageNum+1, err)
		}
		bounds := img.Bounds()
		totalHeight += bounds.Dy()
		if bounds.Dx() > maxWidth {
			maxWidth = bounds.Dx()
		}
		pages = append(pages, img)
	}

	combined := stackVertically(pages, maxWidth, totalHeight)

	encoded, err := encodeImage(combined, settings)
	if err != nil {
		return Output{}, fmt.Errorf("unable to encode combined image: %w", err)
	}
	return newOutput(encoded, mode)
}

// stackVertically blits each page onto one canvas at a running vertical
// offset, horizontal offset 0
func stackVertically(pages []image.Image, width, height int) image.Image {
	if len(pages) == 1 {
		return pages[0]
	}
	combined := image.NewRGBA(image.Rect(0, 0, width, height))
	currentY := 0
	for _, img := range pages {
		bounds := img.Bounds()
		target := image.Rect(0, currentY, bounds.Dx(), currentY+bounds.Dy())
		draw.Draw(combined, target, img, bounds.Min, draw.Src)
		currentY += bounds.Dy()
	}
	return combined
}

// encodeImage applies optional post-processing and encodes the image in
// the requested codec
func encodeImage(img image.Image, settings Settings) ([]byte, error) {
	if settings.MaxWidth > 0 && img.Bounds().Dx() > settings.MaxWidth {
		img = imaging.Resize(img, settings.MaxWidth, 0, imaging.Lanczos)
	}
	if settings.Sharpen > 0 {
		img = imaging.Sharpen(img, settings.Sharpen)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, settings.Format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFileBytes reads a whole file into memory. A missing file maps to
// ErrFileNotFound so callers can match it without touching the os
// package.
func ReadFileBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

// FormatExtension returns the conventional file extension for a codec,
// without the dot
func FormatExtension(format imaging.Format) string {
	return strings.ToLower(format.String())
}
