package datamatrix

import (
	"fmt"

	gridscan "github.com/avniish/gridscan"
	"github.com/avniish/gridscan/bitutil"
	"github.com/avniish/gridscan/datamatrix/encoder"
)

const defaultDataMatrixQuietZone = 2

// Writer synthesizes Data Matrix module matrices. It exists only to build
// deterministic fixtures for this package's own tests; it is never
// registered with the public reader dispatch.
type Writer struct{}

// NewWriter creates a new Data Matrix Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Encode encodes contents into a Data Matrix ECC-200 symbol, scaled up and
// padded with a quiet zone to at least width x height modules.
func (w *Writer) Encode(contents string, format gridscan.Format, width, height int, opts *gridscan.EncodeOptions) (*bitutil.BitMatrix, error) {
	if contents == "" {
		return nil, fmt.Errorf("found empty contents: %w", gridscan.ErrInvalidArgument)
	}
	if format != gridscan.FormatDataMatrix {
		return nil, fmt.Errorf("can only encode DATA_MATRIX, but got %s: %w", format, gridscan.ErrInvalidArgument)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("requested dimensions are too small: %dx%d: %w", width, height, gridscan.ErrInvalidArgument)
	}

	shape := encoder.ShapeHintForceNone
	quietZone := defaultDataMatrixQuietZone
	if opts != nil && opts.Margin != nil {
		quietZone = *opts.Margin
	}

	symbol, err := encoder.EncodeWithShape(contents, shape)
	if err != nil {
		return nil, err
	}
	return renderDataMatrix(symbol, width, height, quietZone), nil
}

// renderDataMatrix scales a raw symbol matrix up to fill the requested
// output dimensions (a whole-number multiple per module) and surrounds it
// with a quiet zone, the same scale-then-pad recipe the QR and 1D writers
// use (see qrcode/encoder.RenderResult, oned/onedwriter.go).
func renderDataMatrix(symbol *bitutil.BitMatrix, width, height, quietZone int) *bitutil.BitMatrix {
	inputWidth := symbol.Width()
	inputHeight := symbol.Height()
	fullWidth := inputWidth + 2*quietZone
	fullHeight := inputHeight + 2*quietZone

	if width < fullWidth {
		width = fullWidth
	}
	if height < fullHeight {
		height = fullHeight
	}

	multiple := width / fullWidth
	if h := height / fullHeight; h < multiple {
		multiple = h
	}
	if multiple < 1 {
		multiple = 1
	}

	leftPadding := (width - (inputWidth * multiple)) / 2
	topPadding := (height - (inputHeight * multiple)) / 2

	output := bitutil.NewBitMatrixWithSize(width, height)
	for y := 0; y < inputHeight; y++ {
		outputY := topPadding + y*multiple
		for x := 0; x < inputWidth; x++ {
			if symbol.Get(x, y) {
				outputX := leftPadding + x*multiple
				output.SetRegion(outputX, outputY, multiple, multiple)
			}
		}
	}
	return output
}
