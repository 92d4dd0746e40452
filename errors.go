package gridscan

import "errors"

var (
	// ErrNotFound is returned when a barcode is not found in the image.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when a barcode's checksum does not match.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a barcode cannot be decoded due to format issues.
	ErrFormat = errors.New("format error")

	// ErrInvalidArgument is returned when a caller violates a public contract:
	// bad coordinates, a zero or negative dimension, empty input. It should
	// never surface from a valid image, only from programmer error.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported is returned when an operation is requested on a
	// LuminanceSource that does not support it (rotate or crop).
	ErrUnsupported = errors.New("unsupported operation")

	// ErrWriter is returned when a barcode cannot be encoded.
	ErrWriter = errors.New("writer error")
)
