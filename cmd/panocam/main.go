// Command panocam places panoramic camera rings inside the rooms of a scene
// and writes the accepted cameras.
//
// Usage:
//
//	panocam [flags] <scene.json> <cameras.txt>
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"panocam/internal/camera"
	"panocam/internal/config"
	"panocam/internal/debugimg"
	"panocam/internal/grid"
	"panocam/internal/logging"
	"panocam/internal/output"
	"panocam/internal/placement"
	"panocam/internal/render"
	"panocam/internal/scene"
	"panocam/internal/score"
)

var errUsage = errors.New("usage: panocam [flags] <scene.json> <cameras.txt>")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := pflag.NewFlagSet("panocam", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	configFile, _ := fs.GetString("config")
	cfg, err := config.Load(configFile, fs)
	if err != nil {
		return err
	}
	if fs.NArg() > 0 {
		cfg.Scene = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		cfg.Cameras = fs.Arg(1)
	}
	if cfg.Scene == "" || cfg.Cameras == "" {
		fs.PrintDefaults()
		return errUsage
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(stderr, cfg.LogLevel, cfg.Verbose)
	start := time.Now()

	s, err := scene.Load(cfg.Scene)
	if err != nil {
		return err
	}
	log.Info().
		Str("scene", cfg.Scene).
		Int("nodes", s.NNodes()).
		Int("triangles", s.NTriangles()).
		Msg("scene loaded")

	if cfg.Categories != "" {
		n, err := scene.LoadCategories(s, cfg.Categories)
		if err != nil {
			return err
		}
		log.Info().Str("categories", cfg.Categories).Int("nodes", n).Msg("categories applied")
	}

	r, err := render.New(cfg.Renderer, s)
	if err != nil {
		return err
	}
	oracle := &score.Oracle{
		Scene:              s,
		Renderer:           r,
		Width:              cfg.Width,
		Height:             cfg.Height,
		MinVisibleObjects:  cfg.MinVisibleObjects,
		MinVisibleFraction: cfg.MinVisibleFraction,
	}
	placer := &placement.Placer{
		Scene:  s,
		Oracle: oracle,
		Config: cfg,
		Log:    log,
	}
	if cfg.DebugDir != "" {
		placer.OnField = func(room *scene.Node, field *grid.Grid) {
			path := filepath.Join(cfg.DebugDir, debugimg.FileName(room.Name(), "field", cfg.DebugFormat))
			if err := debugimg.Save(path, debugimg.Field(field), cfg.DebugFormat, cfg.DebugScale); err != nil {
				log.Warn().Err(err).Str("room", room.Name()).Msg("field dump failed")
			}
		}
	}

	results, cams := placer.PlaceScene()

	if err := writeOutputs(cfg, results, cams); err != nil {
		return err
	}
	if cfg.DebugDir != "" {
		dumpViews(log, r, cfg, cams)
	}

	log.Info().
		Int("cameras", len(cams)).
		Str("output", cfg.Cameras).
		Dur("elapsed", time.Since(start)).
		Msg("done")
	return nil
}

func writeOutputs(cfg config.Config, results []placement.RoomResult, cams []camera.Camera) error {
	if err := output.WriteCamerasFile(cfg.Cameras, cams); err != nil {
		return err
	}
	if cfg.Extrinsics != "" {
		if err := output.WriteExtrinsicsFile(cfg.Extrinsics, cams); err != nil {
			return err
		}
	}
	if cfg.Intrinsics != "" {
		if err := output.WriteIntrinsicsFile(cfg.Intrinsics, cams, cfg.Width, cfg.Height); err != nil {
			return err
		}
	}
	if cfg.Names != "" {
		if err := output.WriteNamesFile(cfg.Names, cams); err != nil {
			return err
		}
	}
	if cfg.Manifest != "" {
		if err := output.WriteManifest(cfg.Manifest, results); err != nil {
			return err
		}
	}
	return nil
}

// dumpViews writes the node-index image seen by every accepted camera.
func dumpViews(log zerolog.Logger, r render.Renderer, cfg config.Config, cams []camera.Camera) {
	for _, c := range cams {
		img := debugimg.Index(r.Render(c, cfg.Width, cfg.Height))
		path := filepath.Join(cfg.DebugDir, debugimg.FileName(c.Name, "view", cfg.DebugFormat))
		if err := debugimg.Save(path, img, cfg.DebugFormat, 1); err != nil {
			log.Warn().Err(err).Str("camera", c.Name).Msg("view dump failed")
			return
		}
	}
}
