package gridscan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	gridscan "github.com/avniish/gridscan"
	"github.com/avniish/gridscan/binarizer"
	"github.com/avniish/gridscan/bitutil"
	"github.com/avniish/gridscan/oned"
	"github.com/avniish/gridscan/qrcode"

	// Import format packages to trigger init() registration.
	_ "github.com/avniish/gridscan/pdf417"
)

func decodeViaFullPipeline(t *testing.T, matrix *bitutil.BitMatrix, format gridscan.Format) string {
	t.Helper()
	img := gridscan.BitMatrixToImage(matrix)
	source := gridscan.NewGrayImageLuminanceSource(img)
	bin := binarizer.NewGlobalHistogram(source)
	bitmap := gridscan.NewBinaryBitmap(bin)

	opts := &gridscan.DecodeOptions{
		PossibleFormats: []gridscan.Format{format},
		PureBarcode:     true,
	}
	result, err := gridscan.Decode(bitmap, opts)
	if err != nil {
		t.Fatalf("Decode(%s) failed: %v", format, err)
	}
	return result.Text
}

func TestRoundTripQRCodeFullPipeline(t *testing.T) {
	content := "Hello, World!"
	matrix, err := qrcode.NewWriter().Encode(content, gridscan.FormatQRCode, 400, 400, nil)
	if err != nil {
		t.Fatalf("qr encode: %v", err)
	}
	got := decodeViaFullPipeline(t, matrix, gridscan.FormatQRCode)
	if got != content {
		t.Errorf("QR round-trip: got %q, want %q", got, content)
	}
}

func TestRoundTripQRCodeNumericFullPipeline(t *testing.T) {
	content := "1234567890"
	matrix, err := qrcode.NewWriter().Encode(content, gridscan.FormatQRCode, 200, 200, nil)
	if err != nil {
		t.Fatalf("qr encode: %v", err)
	}
	got := decodeViaFullPipeline(t, matrix, gridscan.FormatQRCode)
	if got != content {
		t.Errorf("QR numeric round-trip: got %q, want %q", got, content)
	}
}

func TestRoundTripEAN13FullPipeline(t *testing.T) {
	content := "5901234123457"
	matrix, err := oned.NewEAN13Writer().Encode(content, gridscan.FormatEAN13, 500, 100, nil)
	if err != nil {
		t.Fatalf("ean13 encode: %v", err)
	}
	got := decodeViaFullPipeline(t, matrix, gridscan.FormatEAN13)
	if got != content {
		t.Errorf("EAN-13 round-trip: got %q, want %q", got, content)
	}
}

func TestRoundTripUPCAFullPipeline(t *testing.T) {
	content := "012345678905"
	matrix, err := oned.NewUPCAWriter().Encode(content, gridscan.FormatUPCA, 500, 100, nil)
	if err != nil {
		t.Fatalf("upca encode: %v", err)
	}
	// UPC-A is carried over the wire as an EAN-13 payload with a leading 0;
	// the UPC-A reader strips that 0 and reports the 12-digit string.
	got := decodeViaFullPipeline(t, matrix, gridscan.FormatUPCA)
	want := content
	if got != want {
		t.Errorf("UPC-A round-trip: got %q, want %q", got, want)
	}
}

// TestRoundTripQRCodeRotatedFullPipeline checks that the QR detector is
// orientation-invariant: rotating the rendered module matrix by 90/180/270
// degrees before detection must still recover the original text, because
// finder-pattern ordering (not absolute orientation) determines
// top-left/top-right/bottom-left.
func TestRoundTripQRCodeRotatedFullPipeline(t *testing.T) {
	content := "ROTATED"
	for _, degrees := range []int{0, 90, 180, 270} {
		matrix, err := qrcode.NewWriter().Encode(content, gridscan.FormatQRCode, 300, 300, nil)
		require.NoError(t, err)
		matrix.Rotate(degrees)

		got := decodeViaFullPipeline(t, matrix, gridscan.FormatQRCode)
		require.Equal(t, content, got, "rotation %d degrees", degrees)
	}
}

func TestImageLuminanceSource(t *testing.T) {
	matrix, err := qrcode.NewWriter().Encode("test", gridscan.FormatQRCode, 100, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := gridscan.BitMatrixToImage(matrix)
	source := gridscan.NewGrayImageLuminanceSource(img)

	if source.Width() != img.Bounds().Dx() {
		t.Errorf("width: got %d, want %d", source.Width(), img.Bounds().Dx())
	}
	if source.Height() != img.Bounds().Dy() {
		t.Errorf("height: got %d, want %d", source.Height(), img.Bounds().Dy())
	}

	lum := source.Matrix()
	if len(lum) != source.Width()*source.Height() {
		t.Errorf("matrix length: got %d, want %d", len(lum), source.Width()*source.Height())
	}

	row := source.Row(0, nil)
	if len(row) != source.Width() {
		t.Errorf("row length: got %d, want %d", len(row), source.Width())
	}
}
