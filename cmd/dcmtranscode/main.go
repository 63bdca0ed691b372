// Command dcmtranscode rewrites every DICOM file in a directory into the
// native Explicit VR Little Endian transfer syntax, so the series can be
// loaded without compressed-pixel support.
//
// Sources in an encapsulated transfer syntax (JPEG, JPEG-LS, JPEG 2000,
// RLE) need the matching codec in the global registry; codec packs register
// themselves when blank-imported here.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cocosip/go-dicom-volume/reporting"
	"github.com/cocosip/go-dicom-volume/transcode"
)

func main() {
	configPath := flag.String("config", "dcmtranscode.yaml", "Optional YAML configuration file")
	inputDir := flag.String("input", "", "Directory containing the slice files to normalize")
	outputDir := flag.String("out", "", "Directory receiving the normalized copies")
	verbose := flag.Bool("v", false, "Debug logging, including per-file progress")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcmtranscode: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Dir = *inputDir
		case "out":
			cfg.Output.Dir = *outputDir
		case "v":
			cfg.Logging.Verbose = *verbose
		}
	})

	level := slog.LevelInfo
	if cfg.Logging.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.Input.Dir == "" || cfg.Output.Dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	done, err := transcode.NormalizeDir(cfg.Input.Dir, cfg.Output.Dir, reporting.NewLog(logger))
	if err != nil {
		logger.Error("normalizing directory failed", "dir", cfg.Input.Dir, "err", err)
		os.Exit(1)
	}
	logger.Info("normalization finished", "written", done, "out", cfg.Output.Dir)
}
