// Package detector implements PDF417 barcode detection in binary images.
package detector

import (
	gridscan "github.com/avniish/gridscan"
	"github.com/avniish/gridscan/bitutil"
)

// PDF417DetectorResult encapsulates the results of detecting one or more
// PDF417 barcodes in an image.
type PDF417DetectorResult struct {
	Bits     *bitutil.BitMatrix
	Points   [][]*gridscan.ResultPoint
	Rotation int
}
