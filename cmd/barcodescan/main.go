// Command barcodescan decodes barcodes from image files on disk. It owns
// image-file decoding, which the core library does not do; color->luminance
// conversion uses the core's ImageLuminanceSource.
package main

import (
	"log/slog"
	"os"

	"github.com/avniish/gridscan/cmd/barcodescan/cmd"
)

func main() {
	if err := cmd.NewRoot().Execute(); err != nil {
		slog.Error("barcodescan failed", "error", err)
		os.Exit(1)
	}
}
