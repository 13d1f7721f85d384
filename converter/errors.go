package converter

import "errors"

// Conversion error kinds. Engine failures are not wrapped in any of these;
// they surface as whatever the rasterization engine returned, with page
// context added.
var (
	// ErrInvalidArgument covers nil/empty input and malformed base64 text
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedInputType is returned for an Input that was not built
	// with BytesInput or Base64Input
	ErrUnsupportedInputType = errors.New("unsupported input type")

	// ErrUnsupportedOutputType is returned for an OutputMode outside
	// OutputBytes and OutputBase64
	ErrUnsupportedOutputType = errors.New("unsupported output type")

	// ErrFileNotFound is returned by ReadFileBytes for a missing path
	ErrFileNotFound = errors.New("file not found")
)
