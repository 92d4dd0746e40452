// Package cmd wires the barcodescan command tree together.
package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewRoot builds the root barcodescan command.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "barcodescan [flags] <image-file> [image-file...]",
		Short: "Detect and decode barcodes in image files",
		Long: "barcodescan locates and decodes QR, Data Matrix, Aztec, PDF417, " +
			"MaxiCode, and common 1D symbols in PNG/JPEG/GIF images.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile, _ := cmd.Flags().GetString("log-file")
			logLevel, _ := cmd.Flags().GetString("log-level")
			slog.SetDefault(newLogger(logFile, logLevel))
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-file", "", "write structured logs to this file (rotated via lumberjack); default: stderr")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newScanCmd())
	return root
}

// newLogger builds the slog logger used for the whole command tree. When
// logFile is empty, logs go to stderr; otherwise they are written through a
// lumberjack.Logger that rotates at 10MB, keeping 3 backups.
func newLogger(logFile, logLevel string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
