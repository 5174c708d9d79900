// Command ridereport converts a PDF of shuffled ride-receipt screenshots into
// a chronologically sorted report PDF, one week per page. An optional argument
// names a YAML config file; without it the built-in paths are used.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/wudi/ridereport/observability"
	"github.com/wudi/ridereport/ocr/tesseract"
	"github.com/wudi/ridereport/report"
)

func main() {
	cfg := report.DefaultConfig()
	if len(os.Args) > 1 {
		loaded, err := report.LoadConfig(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	g := report.NewGenerator(cfg,
		report.WithEngine(tesseract.NewTesseractEngine()),
		report.WithLogger(observability.NewSlogLogger(logger)))
	if err := g.Run(context.Background()); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
