package models

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBatch           = errors.New("no images provided")
	ErrInvalidPreset        = errors.New("invalid dpi preset")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrTooManyFiles         = errors.New("too many files")
	ErrFileTooLarge         = errors.New("file size exceeds maximum allowed")
)

// DecodeError reports an upload whose bytes are not a decodable image.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %q: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RangeError reports a DPI value outside the accepted bounds.
type RangeError struct {
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("dpi %d out of range [%d, %d]", e.Value, e.Min, e.Max)
}
