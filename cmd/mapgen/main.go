// Mapgen - writes terrain previews to disk without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/export"
	"github.com/Faultbox/midgard-terrain/internal/game/mapgen"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

var (
	flagOut    = flag.String("out", "", "Output directory (default: editor.export_dir)")
	flagMode   = flag.String("mode", "all", "Draw mode: noise, color, mesh, falloff or all")
	flagFormat = flag.String("format", "png", "Image format: png or bmp")
	flagName   = flag.String("name", "chunk", "Base name of the written files")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.Named("mapgen")

	modes, err := parseModes(*flagMode)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(*flagFormat)
	if err != nil {
		return err
	}
	dir := *flagOut
	if dir == "" {
		dir = cfg.Editor.ExportDir
	}

	for _, note := range cfg.Sanitize() {
		log.Warn("config adjusted", zap.String("note", note))
	}
	settings, notes := mapgen.SettingsFromConfig(cfg)
	for _, note := range notes {
		log.Warn("terrain settings adjusted", zap.String("note", note))
	}
	gen := mapgen.NewGenerator(settings, log)

	var errs error
	for _, mode := range modes {
		name := *flagName
		if len(modes) > 1 {
			name = fmt.Sprintf("%s_%s", *flagName, mode)
		}

		start := time.Now()
		d := export.NewFileDisplay(dir, name, format, log)
		gen.DrawMapInEditor(d, mode)
		if err := d.Err(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", mode, err))
			continue
		}
		for _, path := range d.Written() {
			fmt.Println(path)
		}
		log.Info("preview written",
			zap.Stringer("mode", mode),
			zap.Strings("files", d.Written()),
			zap.Duration("took", time.Since(start)))
	}
	return errs
}

func parseModes(s string) ([]mapgen.DrawMode, error) {
	if s == "all" {
		return mapgen.DrawModes(), nil
	}
	mode, err := mapgen.ParseDrawMode(s)
	if err != nil {
		return nil, err
	}
	return []mapgen.DrawMode{mode}, nil
}
