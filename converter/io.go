package converter

import (
	"encoding/base64"
	"fmt"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputBytes
	inputBase64
)

// Input carries a PDF either as raw bytes or as base64 text. Build one
// with BytesInput or Base64Input; the zero value is rejected.
type Input struct {
	kind inputKind
	raw  []byte
	text string
}

// BytesInput wraps raw PDF bytes
func BytesInput(pdf []byte) Input {
	return Input{kind: inputBytes, raw: pdf}
}

// Base64Input wraps a base64-encoded PDF
func Base64Input(pdf string) Input {
	return Input{kind: inputBase64, text: pdf}
}

// decode applies the shared input rule: raw bytes pass through, base64
// text is decoded, anything else is unsupported.
func (in Input) decode() ([]byte, error) {
	switch in.kind {
	case inputBytes:
		if len(in.raw) == 0 {
			return nil, fmt.Errorf("%w: PDF input is nil or empty", ErrInvalidArgument)
		}
		return in.raw, nil
	case inputBase64:
		if in.text == "" {
			return nil, fmt.Errorf("%w: PDF input is nil or empty", ErrInvalidArgument)
		}
		raw, err := base64.StdEncoding.DecodeString(in.text)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed base64 input: %v", ErrInvalidArgument, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: input must be raw bytes or base64 text", ErrUnsupportedInputType)
	}
}

// Raw resolves the input to raw PDF bytes using the shared decode rule
func (in Input) Raw() ([]byte, error) {
	return in.decode()
}

// OutputMode selects the representation of encoded images
type OutputMode int

const (
	// OutputBytes returns raw encoded image bytes
	OutputBytes OutputMode = iota
	// OutputBase64 returns the encoded image as base64 text
	OutputBase64
)

// Output is one encoded image in the representation the caller asked
// for. Mode tells which of the two fields is set.
type Output struct {
	Mode   OutputMode
	Bytes  []byte
	Base64 string
}

func newOutput(encoded []byte, mode OutputMode) (Output, error) {
	switch mode {
	case OutputBytes:
		return Output{Mode: OutputBytes, Bytes: encoded}, nil
	case OutputBase64:
		return Output{Mode: OutputBase64, Base64: base64.StdEncoding.EncodeToString(encoded)}, nil
	default:
		return Output{}, fmt.Errorf("%w: output mode %d", ErrUnsupportedOutputType, mode)
	}
}
