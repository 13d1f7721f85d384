// goraster converts a PDF into raster images from the command line,
// either one image per page or a single vertically stacked image.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/drummonds/goRaster/converter"
	"github.com/drummonds/goRaster/pdfrenderer"
)

func main() {
	inPath := flag.String("in", "", "path to the input PDF (required)")
	outDir := flag.String("out", ".", "directory for the output images")
	single := flag.Bool("single", false, "stack all pages into one image instead of one image per page")
	dpi := flag.Int("dpi", converter.DefaultDPI, "rasterization resolution")
	formatName := flag.String("format", "png", "output image format (png, jpeg, gif, tiff, bmp)")
	asBase64 := flag.Bool("base64", false, "write base64 text files instead of raw image files")
	maxWidth := flag.Int("max-width", 0, "downscale results wider than this many pixels (0 = off)")
	sharpen := flag.Float64("sharpen", 0, "sharpening sigma applied after any resize (0 = off)")
	engineKind := flag.String("engine", pdfrenderer.EnginePDFium, "rasterization engine (pdfium or fitz)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "goraster: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(logger, *inPath, *outDir, *single, *dpi, *formatName, *asBase64, *maxWidth, *sharpen, *engineKind); err != nil {
		logger.Error("Conversion failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, inPath, outDir string, single bool, dpi int, formatName string, asBase64 bool, maxWidth int, sharpen float64, engineKind string) error {
	pdfBytes, err := converter.ReadFileBytes(inPath)
	if err != nil {
		return err
	}

	format, err := converter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	engine, err := pdfrenderer.NewEngine(engineKind)
	if err != nil {
		return err
	}
	defer engine.Close()

	conv := converter.New(engine, logger)
	settings := converter.Settings{
		DPI:      dpi,
		Format:   format,
		MaxWidth: maxWidth,
		Sharpen:  sharpen,
	}
	mode := converter.OutputBytes
	if asBase64 {
		mode = converter.OutputBase64
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	stem := stripExtension(filepath.Base(inPath))
	ext := converter.FormatExtension(format)
	if asBase64 {
		ext += ".b64"
	}

	if single {
		output, err := conv.SingleImage(converter.BytesInput(pdfBytes), settings, mode)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, fmt.Sprintf("%s.%s", stem, ext))
		if err := writeOutput(outPath, output); err != nil {
			return err
		}
		logger.Info("Wrote combined image", "path", outPath)
		return nil
	}

	outputs, err := conv.PageImages(converter.BytesInput(pdfBytes), settings, mode)
	if err != nil {
		return err
	}
	for i, output := range outputs {
		outPath := filepath.Join(outDir, fmt.Sprintf("%s-page-%03d.%s", stem, i+1, ext))
		if err := writeOutput(outPath, output); err != nil {
			return err
		}
	}
	logger.Info("Wrote page images", "count", len(outputs), "dir", outDir)
	return nil
}

func writeOutput(path string, output converter.Output) error {
	data := output.Bytes
	if output.Mode == converter.OutputBase64 {
		data = []byte(output.Base64)
	}
	return os.WriteFile(path, data, 0644)
}

func stripExtension(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
