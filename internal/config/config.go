package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"panocam/internal/debugimg"
	"panocam/internal/render"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all paths and placement settings for one run.
type Config struct {
	// Paths
	Scene      string `mapstructure:"scene"`
	Categories string `mapstructure:"categories"`
	Cameras    string `mapstructure:"cameras"`
	Extrinsics string `mapstructure:"extrinsics"`
	Intrinsics string `mapstructure:"intrinsics"`
	Names      string `mapstructure:"names"`
	Manifest   string `mapstructure:"manifest"`
	DebugDir   string `mapstructure:"debug_dir"`

	DebugFormat string `mapstructure:"debug_format"`
	DebugScale  int    `mapstructure:"debug_scale"`

	// Image
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	FocalLength float64 `mapstructure:"focal_length"`

	// Placement
	EyeHeight             float64 `mapstructure:"eye_height"`
	DownwardTilt          float64 `mapstructure:"downward_tilt"`
	MinPanoramaSpacing    float64 `mapstructure:"min_panorama_spacing"`
	MinObstacleDistance   float64 `mapstructure:"min_obstacle_distance"`
	DirectionsPerPanorama int     `mapstructure:"directions"`
	MinVisibleObjects     int     `mapstructure:"min_visible_objects"`
	MinVisibleFraction    float64 `mapstructure:"min_visible_fraction"`

	Renderer string `mapstructure:"renderer"`
	Seed     int64  `mapstructure:"seed"`

	LogLevel string `mapstructure:"log_level"`
	Verbose  bool   `mapstructure:"verbose"`
}

// Default returns the settings used when neither a config file nor a flag
// provides a value.
func Default() Config {
	return Config{
		DebugFormat:           debugimg.FormatWebP,
		DebugScale:            4,
		Width:                 160,
		Height:                256,
		FocalLength:           80,
		EyeHeight:             1.5,
		DownwardTilt:          0,
		MinPanoramaSpacing:    1.5,
		MinObstacleDistance:   0.5,
		DirectionsPerPanorama: 4,
		MinVisibleObjects:     2,
		MinVisibleFraction:    0.01,
		Renderer:              render.BackendRaster,
		LogLevel:              "info",
	}
}

func defaults(c Config) map[string]any {
	return map[string]any{
		"scene":                 c.Scene,
		"categories":            c.Categories,
		"cameras":               c.Cameras,
		"extrinsics":            c.Extrinsics,
		"intrinsics":            c.Intrinsics,
		"names":                 c.Names,
		"manifest":              c.Manifest,
		"debug_dir":             c.DebugDir,
		"debug_format":          c.DebugFormat,
		"debug_scale":           c.DebugScale,
		"width":                 c.Width,
		"height":                c.Height,
		"focal_length":          c.FocalLength,
		"eye_height":            c.EyeHeight,
		"downward_tilt":         c.DownwardTilt,
		"min_panorama_spacing":  c.MinPanoramaSpacing,
		"min_obstacle_distance": c.MinObstacleDistance,
		"directions":            c.DirectionsPerPanorama,
		"min_visible_objects":   c.MinVisibleObjects,
		"min_visible_fraction":  c.MinVisibleFraction,
		"renderer":              c.Renderer,
		"seed":                  c.Seed,
		"log_level":             c.LogLevel,
		"verbose":               c.Verbose,
	}
}

// FlagName maps a config key to its command-line flag.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// RegisterFlags adds one flag per config key to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.String("config", "", "Path to a JSON, YAML or TOML config file")

	fs.String(FlagName("categories"), d.Categories, "SUNCG-style category CSV keyed by model_id")
	fs.String(FlagName("extrinsics"), d.Extrinsics, "Write 3x4 extrinsic matrices to this file")
	fs.String(FlagName("intrinsics"), d.Intrinsics, "Write 3x3 intrinsic matrices to this file")
	fs.String(FlagName("names"), d.Names, "Write one camera name per line to this file")
	fs.String(FlagName("manifest"), d.Manifest, "Write a JSON per-room summary to this file")
	fs.String(FlagName("debug_dir"), d.DebugDir, "Dump desirability fields into this directory")
	fs.String(FlagName("debug_format"), d.DebugFormat, "Debug image format: webp or tga")
	fs.Int(FlagName("debug_scale"), d.DebugScale, "Upscale factor for debug images")

	fs.Int(FlagName("width"), d.Width, "Image width in pixels")
	fs.Int(FlagName("height"), d.Height, "Image height in pixels")
	fs.Float64(FlagName("focal_length"), d.FocalLength, "Focal length in pixels")

	fs.Float64(FlagName("eye_height"), d.EyeHeight, "Camera height above the room floor")
	fs.Float64(FlagName("downward_tilt"), d.DownwardTilt, "Downward component of each view direction")
	fs.Float64(FlagName("min_panorama_spacing"), d.MinPanoramaSpacing, "Minimum distance between panoramas")
	fs.Float64(FlagName("min_obstacle_distance"), d.MinObstacleDistance, "Minimum distance from obstacles and walls")
	fs.Int(FlagName("directions"), d.DirectionsPerPanorama, "Camera directions per panorama")
	fs.Int(FlagName("min_visible_objects"), d.MinVisibleObjects, "Views must show more objects than this to score")
	fs.Float64(FlagName("min_visible_fraction"), d.MinVisibleFraction, "Image fraction an object must exceed to count")

	fs.String(FlagName("renderer"), d.Renderer, "Rendering backend: raster or raycast")
	fs.Int64(FlagName("seed"), d.Seed, "Random seed for viewpoint jitter")
	fs.String(FlagName("log_level"), d.LogLevel, "Log level: trace, debug, info, warn, error")
	fs.BoolP(FlagName("verbose"), "v", d.Verbose, "Debug logging")
}

// Load merges defaults, the optional config file at path, PANOCAM_*
// environment variables and any flags set in flags, in increasing order of
// priority. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for key, val := range defaults(Default()) {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix("PANOCAM")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if flags != nil {
		for key := range defaults(Config{}) {
			f := flags.Lookup(FlagName(key))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("config: bind flag %s: %w", f.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Validate reports every setting that would make placement meaningless.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Width <= 0 || c.Height <= 0 {
		bad("image size %dx%d", c.Width, c.Height)
	}
	if c.FocalLength <= 0 {
		bad("focal length %g", c.FocalLength)
	}
	if c.EyeHeight < 0 {
		bad("eye height %g", c.EyeHeight)
	}
	if c.MinPanoramaSpacing < 0 {
		bad("panorama spacing %g", c.MinPanoramaSpacing)
	}
	if c.MinObstacleDistance < 0 {
		bad("obstacle distance %g", c.MinObstacleDistance)
	}
	if c.DirectionsPerPanorama < 1 {
		bad("directions per panorama %d", c.DirectionsPerPanorama)
	}
	if c.MinVisibleFraction < 0 || c.MinVisibleFraction > 1 {
		bad("visible fraction %g", c.MinVisibleFraction)
	}
	switch c.Renderer {
	case render.BackendRaster, render.BackendRaycast:
	default:
		bad("renderer %q", c.Renderer)
	}
	if c.DebugDir != "" {
		switch c.DebugFormat {
		case debugimg.FormatWebP, debugimg.FormatTGA:
		default:
			bad("debug format %q", c.DebugFormat)
		}
		if c.DebugScale < 1 {
			bad("debug scale %d", c.DebugScale)
		}
	}
	return errors.Join(errs...)
}
