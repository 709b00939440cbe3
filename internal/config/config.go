package config

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"

	"skin-scanner/internal/background"
	"skin-scanner/internal/pipeline"
	"skin-scanner/internal/segment"
	"skin-scanner/internal/texture"
)

// AutoBackground asks for the backdrop to be estimated from the image border.
const AutoBackground = "auto"

// Config holds every setting of a scan, as read from file and environment.
type Config struct {
	Background BackgroundConfig `mapstructure:"background"`
	Mask       MaskConfig       `mapstructure:"mask"`
	Texture    TextureConfig    `mapstructure:"texture"`
	Height     HeightConfig     `mapstructure:"height"`
	Output     OutputConfig     `mapstructure:"output"`

	// Workers sizes the process-wide per-stage pool (parallel.SetWorkers);
	// 0 means GOMAXPROCS.
	Workers int    `mapstructure:"workers"`
	LogMode string `mapstructure:"log_mode"`
}

type BackgroundConfig struct {
	// Color is "#rrggbb", "r,g,b" or "auto".
	Color     string `mapstructure:"color"`
	Threshold uint32 `mapstructure:"threshold"`
	Channels  string `mapstructure:"channels"`
	Estimator string `mapstructure:"estimator"`
}

type MaskConfig struct {
	Blur       float64 `mapstructure:"blur"`
	Confidence uint16  `mapstructure:"confidence"`
	SpeckRatio float64 `mapstructure:"speck_ratio"`
}

type TextureConfig struct {
	Resolution int     `mapstructure:"resolution"`
	Margin     int     `mapstructure:"margin"`
	Relief     float64 `mapstructure:"relief"`
}

type HeightConfig struct {
	DomeSize      int     `mapstructure:"dome_size"`
	DomeBorder    int     `mapstructure:"dome_border"`
	DomeBlur      float64 `mapstructure:"dome_blur"`
	SurfaceBlur   float64 `mapstructure:"surface_blur"`
	DomeWeight    uint32  `mapstructure:"dome_weight"`
	SurfaceWeight uint32  `mapstructure:"surface_weight"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	// Dir replaces the input's directory when set.
	Dir string `mapstructure:"dir"`
	// Report is an optional CSV path written by batch runs.
	Report string `mapstructure:"report"`
}

// Load reads a YAML or JSON config file. An empty path yields the defaults.
// SCANNER_* environment variables override both, e.g. SCANNER_TEXTURE_RESOLUTION.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SCANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in settings without consulting the environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := pipeline.DefaultOptions()
	bg := d.Background.Color

	v.SetDefault("background.color", fmt.Sprintf("%d,%d,%d", bg.R, bg.G, bg.B))
	v.SetDefault("background.threshold", d.Background.Threshold)
	v.SetDefault("background.channels", d.Background.Channels.String())
	v.SetDefault("background.estimator", string(background.MethodDominant))

	v.SetDefault("mask.blur", d.MaskBlur)
	v.SetDefault("mask.confidence", d.Confidence)
	v.SetDefault("mask.speck_ratio", d.SpeckRatio)

	v.SetDefault("texture.resolution", d.Resolution)
	v.SetDefault("texture.margin", d.Margin)
	v.SetDefault("texture.relief", d.Relief)

	v.SetDefault("height.dome_size", d.Height.DomeSize)
	v.SetDefault("height.dome_border", d.Height.DomeBorder)
	v.SetDefault("height.dome_blur", d.Height.DomeRadius)
	v.SetDefault("height.surface_blur", d.Height.SurfaceRadius)
	v.SetDefault("height.dome_weight", d.Height.DomeWeight)
	v.SetDefault("height.surface_weight", d.Height.SurfaceWeight)

	v.SetDefault("output.format", string(texture.FormatPNG))
	v.SetDefault("output.dir", "")
	v.SetDefault("output.report", "")

	v.SetDefault("workers", 0)
	v.SetDefault("log_mode", "debug")
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Background     string
	AutoBackground bool
	Format         string
	OutputDir      string
	Report         string
	Workers        int
	LogMode        string
}

// Resolve applies CLI flags. Flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Background != "" {
		c.Background.Color = flags.Background
	}
	if flags.AutoBackground {
		c.Background.Color = AutoBackground
	}
	if flags.Format != "" {
		c.Output.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.Output.Dir = flags.OutputDir
	}
	if flags.Report != "" {
		c.Output.Report = flags.Report
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogMode != "" {
		c.LogMode = flags.LogMode
	}
}

// Format returns the parsed output format.
func (c Config) Format() (texture.Format, error) {
	f, err := texture.ParseFormat(c.Output.Format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", pipeline.ErrInvalidConfiguration, err)
	}
	return f, nil
}

// Options converts the settings for one source image. src is only read when
// the background is "auto".
func (c Config) Options(src *image.RGBA) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	channels, err := segment.ParseChannels(c.Background.Channels)
	if err != nil {
		return opts, fmt.Errorf("%w: %w", pipeline.ErrInvalidConfiguration, err)
	}
	bg, auto, err := ParseBackground(c.Background.Color)
	if err != nil {
		return opts, err
	}
	if auto {
		method, err := background.ParseMethod(c.Background.Estimator)
		if err != nil {
			return opts, fmt.Errorf("%w: %w", pipeline.ErrInvalidConfiguration, err)
		}
		if bg, err = background.Estimate(src, method); err != nil {
			return opts, err
		}
	}

	opts.Background = segment.Background{Color: bg, Threshold: c.Background.Threshold, Channels: channels}
	opts.MaskBlur = c.Mask.Blur
	opts.Confidence = c.Mask.Confidence
	opts.SpeckRatio = c.Mask.SpeckRatio
	opts.Resolution = c.Texture.Resolution
	opts.Margin = c.Texture.Margin
	opts.Relief = c.Texture.Relief
	opts.Height.DomeSize = c.Height.DomeSize
	opts.Height.DomeBorder = c.Height.DomeBorder
	opts.Height.DomeRadius = c.Height.DomeBlur
	opts.Height.SurfaceRadius = c.Height.SurfaceBlur
	opts.Height.DomeWeight = c.Height.DomeWeight
	opts.Height.SurfaceWeight = c.Height.SurfaceWeight
	return opts, opts.Validate()
}

// ParseBackground reads "#rrggbb", "r,g,b" or "auto".
func ParseBackground(s string) (c color.RGBA, auto bool, err error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, AutoBackground):
		return color.RGBA{}, true, nil
	case strings.HasPrefix(s, "#"):
		hex, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, false, fmt.Errorf("%w: background %q: %w", pipeline.ErrInvalidConfiguration, s, err)
		}
		r, g, b := hex.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, false, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, false, fmt.Errorf("%w: background %q: want #rrggbb, r,g,b or auto", pipeline.ErrInvalidConfiguration, s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, false, fmt.Errorf("%w: background %q: %w", pipeline.ErrInvalidConfiguration, s, err)
		}
		rgb[i] = uint8(n)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, false, nil
}
