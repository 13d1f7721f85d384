// Package server exposes the conversion pipeline over HTTP. Requests
// carry the PDF as a multipart "pdf" file or as base64 text in a JSON
// body; responses carry base64-encoded images.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/drummonds/goRaster/config"
	"github.com/drummonds/goRaster/converter"
	"github.com/drummonds/goRaster/pdfinfo"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// ServerHandler will inject the variables needed into routes
type ServerHandler struct {
	Echo         *echo.Echo
	ServerConfig config.ServerConfig
	Converter    *converter.Converter
}

type convertRequest struct {
	PDF string `json:"pdf"` // base64-encoded PDF
}

type pagesResponse struct {
	RequestID string   `json:"requestID"`
	Pages     []string `json:"pages"`
	Error     string   `json:"error,omitempty"`
}

type singleResponse struct {
	RequestID string `json:"requestID"`
	Image     string `json:"image"` // base64 encoded image
	Error     string `json:"error,omitempty"`
}

type infoResponse struct {
	RequestID string        `json:"requestID"`
	Info      *pdfinfo.Info `json:"info,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// RegisterRoutes wires all API routes onto the echo instance
func (serverHandler *ServerHandler) RegisterRoutes() {
	serverHandler.Echo.GET("/health", serverHandler.Health)
	serverHandler.Echo.POST("/api/convert/pages", serverHandler.ConvertPages)
	serverHandler.Echo.POST("/api/convert/single", serverHandler.ConvertSingle)
	serverHandler.Echo.POST("/api/info", serverHandler.DocumentInfo)
}

// Health reports service liveness
func (serverHandler *ServerHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// ConvertPages converts an uploaded PDF into one base64 image per page
func (serverHandler *ServerHandler) ConvertPages(c echo.Context) error {
	requestID := ulid.Make().String()
	c.Response().Header().Set("X-Request-ID", requestID)

	input, err := serverHandler.readPDFInput(c)
	if err != nil {
		Logger.Warn("Rejecting convert/pages request", "requestID", requestID, "error", err)
		return c.JSON(http.StatusBadRequest, pagesResponse{RequestID: requestID, Error: err.Error()})
	}

	settings, err := serverHandler.readSettings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, pagesResponse{RequestID: requestID, Error: err.Error()})
	}

	Logger.Info("Converting PDF to page images", "requestID", requestID, "dpi", settings.DPI)
	outputs, err := serverHandler.Converter.PageImages(input, settings, converter.OutputBase64)
	if err != nil {
		Logger.Error("Page conversion failed", "requestID", requestID, "error", err)
		return c.JSON(statusForError(err), pagesResponse{RequestID: requestID, Error: err.Error()})
	}

	pages := make([]string, 0, len(outputs))
	for _, out := range outputs {
		pages = append(pages, out.Base64)
	}
	return c.JSON(http.StatusOK, pagesResponse{RequestID: requestID, Pages: pages})
}

// ConvertSingle converts an uploaded PDF into one vertically stacked
// base64 image
func (serverHandler *ServerHandler) ConvertSingle(c echo.Context) error {
	requestID := ulid.Make().String()
	c.Response().Header().Set("X-Request-ID", requestID)

	input, err := serverHandler.readPDFInput(c)
	if err != nil {
		Logger.Warn("Rejecting convert/single request", "requestID", requestID, "error", err)
		return c.JSON(http.StatusBadRequest, singleResponse{RequestID: requestID, Error: err.Error()})
	}

	settings, err := serverHandler.readSettings(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, singleResponse{RequestID: requestID, Error: err.Error()})
	}

	Logger.Info("Converting PDF to single image", "requestID", requestID, "dpi", settings.DPI)
	output, err := serverHandler.Converter.SingleImage(input, settings, converter.OutputBase64)
	if err != nil {
		Logger.Error("Single-image conversion failed", "requestID", requestID, "error", err)
		return c.JSON(statusForError(err), singleResponse{RequestID: requestID, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, singleResponse{RequestID: requestID, Image: output.Base64})
}

// DocumentInfo probes an uploaded PDF for page count and dimensions
// without rasterizing it
func (serverHandler *ServerHandler) DocumentInfo(c echo.Context) error {
	requestID := ulid.Make().String()
	c.Response().Header().Set("X-Request-ID", requestID)

	input, err := serverHandler.readPDFInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, infoResponse{RequestID: requestID, Error: err.Error()})
	}
	data, err := input.Raw()
	if err != nil {
		return c.JSON(http.StatusBadRequest, infoResponse{RequestID: requestID, Error: err.Error()})
	}

	info, err := pdfinfo.Probe(data)
	if err != nil {
		Logger.Warn("PDF probe failed", "requestID", requestID, "error", err)
		return c.JSON(http.StatusUnprocessableEntity, infoResponse{RequestID: requestID, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, infoResponse{RequestID: requestID, Info: info})
}

// readPDFInput extracts the PDF from either a multipart "pdf" file field
// or a JSON body with a base64 "pdf" value
func (serverHandler *ServerHandler) readPDFInput(c echo.Context) (converter.Input, error) {
	fileHeader, err := c.FormFile("pdf")
	if err == nil {
		maxBytes := int64(serverHandler.ServerConfig.MaxUploadMB) << 20
		if maxBytes > 0 && fileHeader.Size > maxBytes {
			return converter.Input{}, errors.New("uploaded PDF exceeds the size limit")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return converter.Input{}, err
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return converter.Input{}, err
		}
		if len(data) == 0 {
			return converter.Input{}, errors.New("uploaded PDF is empty")
		}
		return converter.BytesInput(data), nil
	}

	var request convertRequest
	if err := c.Bind(&request); err != nil || request.PDF == "" {
		return converter.Input{}, errors.New("no PDF provided: upload a multipart \"pdf\" file or post JSON with a base64 \"pdf\" field")
	}
	return converter.Base64Input(request.PDF), nil
}

// readSettings builds conversion settings from query parameters, falling
// back to the configured defaults
func (serverHandler *ServerHandler) readSettings(c echo.Context) (converter.Settings, error) {
	settings := converter.DefaultSettings()
	settings.DPI = serverHandler.ServerConfig.DefaultDPI

	formatName := serverHandler.ServerConfig.DefaultFormat
	if queryFormat := c.QueryParam("format"); queryFormat != "" {
		formatName = queryFormat
	}
	if formatName != "" {
		format, err := converter.ParseFormat(formatName)
		if err != nil {
			return settings, err
		}
		settings.Format = format
	}

	if queryDPI := c.QueryParam("dpi"); queryDPI != "" {
		dpi, err := strconv.Atoi(queryDPI)
		if err != nil {
			return settings, errors.New("dpi must be an integer")
		}
		settings.DPI = dpi
	}

	if queryWidth := c.QueryParam("maxWidth"); queryWidth != "" {
		width, err := strconv.Atoi(queryWidth)
		if err != nil {
			return settings, errors.New("maxWidth must be an integer")
		}
		settings.MaxWidth = width
	}

	return settings, nil
}

// statusForError maps the converter's error kinds to HTTP status codes.
// Anything outside the taxonomy came from the rasterization engine and
// means the document itself could not be processed.
func statusForError(err error) int {
	switch {
	case errors.Is(err, converter.ErrInvalidArgument),
		errors.Is(err, converter.ErrUnsupportedInputType),
		errors.Is(err, converter.ErrUnsupportedOutputType):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
