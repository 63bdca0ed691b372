// Command dcmvolume assembles a directory of 2D DICOM slices into a 3D
// volume and prints its geometry. With -out it also writes the raw voxel
// buffer plus a YAML sidecar describing shape, datatype and geometry.
//
// Configuration comes from defaults, then an optional YAML file (-config),
// then flags, each layer overriding the previous one.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cocosip/go-dicom-volume/loader"
	"github.com/cocosip/go-dicom-volume/reporting"
	"github.com/cocosip/go-dicom-volume/series"
)

func main() {
	configPath := flag.String("config", "dcmvolume.yaml", "Optional YAML configuration file")
	inputDir := flag.String("input", "", "Directory containing the 2D slice files")
	outPath := flag.String("out", "", "Write the raw voxel buffer to this path")
	noSidecar := flag.Bool("no-sidecar", false, "Do not write the YAML geometry sidecar next to -out")
	verbose := flag.Bool("v", false, "Debug logging, including per-slice progress")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcmvolume: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Dir = *inputDir
		case "out":
			cfg.Output.Volume = *outPath
		case "no-sidecar":
			cfg.Output.Sidecar = !*noSidecar
		case "v":
			cfg.Logging.Verbose = *verbose
		}
	})

	level := slog.LevelInfo
	if cfg.Logging.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.Input.Dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	res, err := loader.LoadDirectory(cfg.Input.Dir, nil, reporting.NewLog(logger))
	if err != nil {
		logger.Error("loading series failed", "dir", cfg.Input.Dir, "err", err)
		os.Exit(1)
	}
	if res.Volume.Empty() {
		logger.Error("no pixel data could be decoded", "dir", cfg.Input.Dir)
		os.Exit(1)
	}

	fmt.Printf("series:    %s (%s)\n", res.Meta.SeriesUID, res.Meta.Modality)
	fmt.Printf("shape:     %v\n", res.Volume.Shape())
	fmt.Printf("datatype:  %s\n", res.Volume.Type)
	if res.SliceThickness == series.ThicknessUnknown {
		fmt.Printf("thickness: unknown\n")
	} else {
		fmt.Printf("thickness: %g mm\n", res.SliceThickness)
	}
	fmt.Printf("origin:    %v mm\n", res.Origin)

	if cfg.Output.Volume == "" {
		return
	}
	if err := writeVolume(cfg, res); err != nil {
		logger.Error("writing volume failed", "path", cfg.Output.Volume, "err", err)
		os.Exit(1)
	}
	logger.Info("volume written", "path", cfg.Output.Volume, "bytes", len(res.Volume.Data))
}

// sidecar is the YAML geometry description written next to the voxel buffer
type sidecar struct {
	Shape          []int      `yaml:"shape"`
	Datatype       string     `yaml:"datatype"`
	LittleEndian   bool       `yaml:"littleEndian"`
	SliceThickness float64    `yaml:"sliceThicknessMM"`
	Origin         [3]float64 `yaml:"globalOriginMM"`
	Positions      []float64  `yaml:"sortedPositionsMM"`
	SeriesUID      string     `yaml:"seriesUID"`
	Modality       string     `yaml:"modality"`
}

// writeVolume writes the raw voxel buffer and, unless disabled, the YAML
// geometry sidecar at the same path with ".yaml" appended.
func writeVolume(cfg *Config, res *loader.Result) error {
	if err := os.WriteFile(cfg.Output.Volume, res.Volume.Data, 0o644); err != nil {
		return fmt.Errorf("writing voxel buffer: %w", err)
	}
	if !cfg.Output.Sidecar {
		return nil
	}

	sc := sidecar{
		Shape:          res.Volume.Shape(),
		Datatype:       res.Volume.Type.String(),
		LittleEndian:   true,
		SliceThickness: res.SliceThickness,
		Origin:         res.Origin,
		Positions:      res.SortedPositions,
		SeriesUID:      res.Meta.SeriesUID,
		Modality:       res.Meta.Modality,
	}
	data, err := yaml.Marshal(&sc)
	if err != nil {
		return fmt.Errorf("marshaling geometry sidecar: %w", err)
	}
	if err := os.WriteFile(cfg.Output.Volume+".yaml", data, 0o644); err != nil {
		return fmt.Errorf("writing geometry sidecar: %w", err)
	}
	return nil
}
