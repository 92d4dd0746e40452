// Package qrcode provides multi-QR code detection and structured append support.
package qrcode

import (
	"fmt"
	"sort"

	gridscan "github.com/avniish/gridscan"
	"github.com/avniish/gridscan/qrcode/decoder"
	"github.com/avniish/gridscan/qrcode/detector"
)

// QRCodeMultiReader can detect and decode multiple QR codes in an image,
// and also combines structured append results.
type QRCodeMultiReader struct {
	dec *decoder.Decoder
}

// NewQRCodeMultiReader creates a new QRCodeMultiReader.
func NewQRCodeMultiReader() *QRCodeMultiReader {
	return &QRCodeMultiReader{dec: decoder.NewDecoder()}
}

// DecodeMultiple detects and decodes all QR codes in the image.
func (r *QRCodeMultiReader) DecodeMultiple(image *gridscan.BinaryBitmap, opts *gridscan.DecodeOptions) ([]*gridscan.Result, error) {
	if opts == nil {
		opts = &gridscan.DecodeOptions{}
	}

	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	detectorResults, err := detector.DetectMulti(matrix, opts.TryHarder)
	if err != nil {
		return nil, err
	}

	var results []*gridscan.Result
	for _, detResult := range detectorResults {
		dr, err := r.dec.Decode(detResult.Bits, opts.CharacterSet)
		if err != nil {
			continue
		}

		points := make([]gridscan.ResultPoint, len(detResult.Points))
		for i, p := range detResult.Points {
			points[i] = gridscan.ResultPoint{X: p.X, Y: p.Y}
		}

		result := gridscan.NewResult(dr.Text, dr.RawBytes, points, gridscan.FormatQRCode)
		if dr.ByteSegments != nil {
			result.PutMetadata(gridscan.MetadataByteSegments, dr.ByteSegments)
		}
		if dr.ECLevel != "" {
			result.PutMetadata(gridscan.MetadataErrorCorrectionLevel, dr.ECLevel)
		}
		if dr.HasStructuredAppend() {
			result.PutMetadata(gridscan.MetadataStructuredAppendSequence, dr.StructuredAppendSequenceNumber)
			result.PutMetadata(gridscan.MetadataStructuredAppendParity, dr.StructuredAppendParity)
		}
		result.PutMetadata(gridscan.MetadataErrorsCorrected, dr.ErrorsCorrected)
		result.PutMetadata(gridscan.MetadataSymbologyIdentifier, fmt.Sprintf("]Q%d", dr.SymbologyModifier))

		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, gridscan.ErrNotFound
	}

	results = processStructuredAppend(results)
	return results, nil
}

// Decode decodes a single QR code (delegate to standard reader behavior).
func (r *QRCodeMultiReader) Decode(image *gridscan.BinaryBitmap, opts *gridscan.DecodeOptions) (*gridscan.Result, error) {
	results, err := r.DecodeMultiple(image, opts)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Reset is a no-op.
func (r *QRCodeMultiReader) Reset() {}

func processStructuredAppend(results []*gridscan.Result) []*gridscan.Result {
	var newResults []*gridscan.Result
	var saResults []*gridscan.Result

	for _, result := range results {
		if _, ok := result.Metadata[gridscan.MetadataStructuredAppendSequence]; ok {
			saResults = append(saResults, result)
		} else {
			newResults = append(newResults, result)
		}
	}

	if len(saResults) == 0 {
		return results
	}

	// Sort by sequence number
	sort.Slice(saResults, func(i, j int) bool {
		seqI, _ := saResults[i].Metadata[gridscan.MetadataStructuredAppendSequence].(int)
		seqJ, _ := saResults[j].Metadata[gridscan.MetadataStructuredAppendSequence].(int)
		return seqI < seqJ
	})

	// Concatenate text and raw bytes
	var combinedText string
	var combinedRawBytes []byte
	var combinedByteSegment []byte
	for _, sa := range saResults {
		combinedText += sa.Text
		if sa.RawBytes != nil {
			combinedRawBytes = append(combinedRawBytes, sa.RawBytes...)
		}
		if segs, ok := sa.Metadata[gridscan.MetadataByteSegments].([][]byte); ok {
			for _, seg := range segs {
				combinedByteSegment = append(combinedByteSegment, seg...)
			}
		}
	}

	combined := gridscan.NewResult(combinedText, combinedRawBytes, nil, gridscan.FormatQRCode)
	if len(combinedByteSegment) > 0 {
		combined.PutMetadata(gridscan.MetadataByteSegments, [][]byte{combinedByteSegment})
	}
	newResults = append(newResults, combined)
	return newResults
}

// DecodeMultipleFromResults is a convenience for combining results that may
// have been decoded separately but share structured append metadata.
func DecodeMultipleFromResults(results []*gridscan.Result) []*gridscan.Result {
	return processStructuredAppend(results)
}

// ensure interface compliance
var _ gridscan.MultipleBarcodeReader = (*QRCodeMultiReader)(nil)
var _ gridscan.Reader = (*QRCodeMultiReader)(nil)
