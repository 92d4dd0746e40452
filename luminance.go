package gridscan

import "github.com/avniish/gridscan/bitutil"

// LuminanceSource provides access to greyscale luminance values for an image.
// It is an immutable, read-only view; implementations never mutate and the
// decoder never writes through it.
type LuminanceSource interface {
	// Row returns a row of luminance data. If row is non-nil and large enough,
	// it should be reused.
	Row(y int, row []byte) []byte

	// Matrix returns the entire luminance matrix.
	Matrix() []byte

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int

	// SupportsRotate reports whether RotateCounterClockwise can succeed.
	SupportsRotate() bool

	// SupportsCrop reports whether Crop can succeed.
	SupportsCrop() bool

	// RotateCounterClockwise returns a new source rotated 90 degrees
	// counterclockwise, for retrying a scan on a vertically-oriented
	// barcode. Returns ErrUnsupported when SupportsRotate is false.
	RotateCounterClockwise() (LuminanceSource, error)

	// Crop returns a new source restricted to the rectangle at (x, y) with
	// the given width and height. Returns ErrUnsupported when SupportsCrop
	// is false, ErrInvalidArgument when the rectangle is outside the
	// source's bounds.
	Crop(x, y, width, height int) (LuminanceSource, error)
}

// Binarizer converts luminance data to 1-bit black/white data.
type Binarizer interface {
	// BlackRow returns a row of black/white values.
	BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error)

	// BlackMatrix returns the 2D matrix of black/white values.
	BlackMatrix() (*bitutil.BitMatrix, error)

	// LuminanceSource returns the underlying LuminanceSource.
	LuminanceSource() LuminanceSource

	// CreateBinarizer builds a new Binarizer of the same kind wrapping a
	// different LuminanceSource, used after rotating or cropping the source.
	CreateBinarizer(source LuminanceSource) Binarizer

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}
