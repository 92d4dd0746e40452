package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	gridscan "github.com/avniish/gridscan"
	"github.com/avniish/gridscan/binarizer"

	// Register all format readers.
	_ "github.com/avniish/gridscan/aztec"
	_ "github.com/avniish/gridscan/datamatrix"
	_ "github.com/avniish/gridscan/maxicode"
	_ "github.com/avniish/gridscan/oned"
	_ "github.com/avniish/gridscan/pdf417"
	_ "github.com/avniish/gridscan/qrcode"
)

// allFormats lists every format the scan command attempts, one at a time,
// on each bitmap.
var allFormats = []gridscan.Format{
	gridscan.FormatQRCode,
	gridscan.FormatDataMatrix,
	gridscan.FormatAztec,
	gridscan.FormatPDF417,
	gridscan.FormatCode128,
	gridscan.FormatCode39,
	gridscan.FormatEAN13,
	gridscan.FormatEAN8,
	gridscan.FormatUPCA,
	gridscan.FormatUPCE,
	gridscan.FormatMaxiCode,
}

func newScanCmd() *cobra.Command {
	var tryHarder, pure bool

	cmd := &cobra.Command{
		Use:   "scan <image-file> [image-file...]",
		Short: "Scan one or more image files for barcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode := 0
			for _, path := range args {
				scanID := uuid.NewString()
				log := slog.With("scan_id", scanID, "path", path)

				results, err := scanFile(path, tryHarder, pure)
				if err != nil {
					log.Error("scan failed", "error", err)
					exitCode = 1
					continue
				}
				if len(results) == 0 {
					log.Warn("no barcodes found")
					exitCode = 1
					continue
				}
				for _, r := range results {
					log.Info("barcode decoded", "format", r.Format.String(), "text", r.Text)
					if len(args) > 1 {
						fmt.Printf("%s: ", path)
					}
					fmt.Printf("[%s] %s\n", r.Format, r.Text)
				}
			}
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tryHarder, "try-harder", false, "spend more time looking for barcodes")
	cmd.Flags().BoolVar(&pure, "pure", false, "hint that the image is a clean barcode render with minimal border")
	return cmd
}

// scanFile reads an image from disk and runs every enabled format against
// both the histogram and hybrid binarizers, returning the deduplicated set
// of results found. This is the one place a real file is turned into the
// read-only luminance source the core decoders expect.
func scanFile(path string, tryHarder, pure bool) ([]*gridscan.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	source := gridscan.NewImageLuminanceSource(img)
	opts := &gridscan.DecodeOptions{
		TryHarder:   tryHarder,
		PureBarcode: pure,
	}

	// Try GlobalHistogram binarizer first (fast, works well for clean
	// renders), then fall back to Hybrid binarizer (local adaptive
	// thresholding, better for photographs with uneven lighting).
	bitmaps := []*gridscan.BinaryBitmap{
		gridscan.NewBinaryBitmap(binarizer.NewGlobalHistogram(source)),
		gridscan.NewBinaryBitmap(binarizer.NewHybrid(source)),
	}

	var results []*gridscan.Result
	seen := map[string]bool{}

	for _, bitmap := range bitmaps {
		for _, format := range allFormats {
			formatOpts := *opts
			formatOpts.PossibleFormats = []gridscan.Format{format}

			result, err := tryDecode(bitmap, &formatOpts)
			if err != nil {
				continue
			}
			key := fmt.Sprintf("%s:%s", result.Format, result.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, result)
		}
	}

	return results, nil
}

// tryDecode calls gridscan.Decode but recovers from panics that decoders
// may raise on malformed input, converting them to errors: an edge tool
// feeding it arbitrary files from the wild needs that belt-and-suspenders.
func tryDecode(bitmap *gridscan.BinaryBitmap, opts *gridscan.DecodeOptions) (result *gridscan.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return gridscan.Decode(bitmap, opts)
}
