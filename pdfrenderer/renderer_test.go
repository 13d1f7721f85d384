package pdfrenderer

import (
	"os"
	"testing"
)

func TestNewEngineUnknownKind(t *testing.T) {
	_, err := NewEngine("postscript")
	if err == nil {
		t.Error("Expected error for unknown engine kind, got nil")
	}
}

func TestFitzEngineRendersTestDocument(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping real-engine rendering test in short mode")
	}

	pdfBytes, err := os.ReadFile("../testdata/three-pages.pdf")
	if err != nil {
		t.Fatalf("Failed to read test PDF: %v", err)
	}

	engine, err := NewFitzEngine()
	if err != nil {
		t.Fatalf("Failed to create Fitz engine: %v", err)
	}
	defer engine.Close()

	doc, err := engine.Open(pdfBytes)
	if err != nil {
		t.Fatalf("Failed to open test PDF: %v", err)
	}
	defer doc.Close()

	if got := doc.PageCount(); got != 3 {
		t.Fatalf("Expected 3 pages, got %d", got)
	}

	img, err := doc.RenderPage(0, 96)
	if err != nil {
		t.Fatalf("Failed to render first page: %v", err)
	}
	if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		t.Errorf("Rendered page has empty bounds: %v", img.Bounds())
	}
}

func TestFitzEngineRejectsGarbage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping real-engine rendering test in short mode")
	}

	engine, err := NewFitzEngine()
	if err != nil {
		t.Fatalf("Failed to create Fitz engine: %v", err)
	}
	defer engine.Close()

	if _, err := engine.Open([]byte("this is not a pdf")); err == nil {
		t.Error("Expected error opening garbage bytes, got nil")
	}
}
