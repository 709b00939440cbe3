package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"skin-scanner/internal/background"
	"skin-scanner/internal/config"
	"skin-scanner/internal/logging"
	"skin-scanner/internal/parallel"
	"skin-scanner/internal/pipeline"
	"skin-scanner/internal/preview"
	"skin-scanner/internal/texture"
)

var (
	rootCmd = &cobra.Command{
		Use:           "inspect <image_path>",
		Short:         "Print what the scanner sees in a photograph",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	flags       config.Flags
	configFile  string
	previewPath string
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "YAML or JSON config file")
	f.StringVar(&flags.Background, "background", "", `backdrop color: "#rrggbb", "r,g,b" or "auto"`)
	f.BoolVar(&flags.AutoBackground, "auto-background", false, "estimate the backdrop color from the image border")
	f.StringVar(&flags.LogMode, "log-mode", "", "debug or release")
	f.StringVar(&previewPath, "preview", "", "write the color texture lit by its normal map to this PNG")
}

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg.Resolve(flags)
	parallel.SetWorkers(cfg.Workers)
	if err := logging.Init(cfg.LogMode); err != nil {
		return err
	}

	src, decoder, err := texture.Load(path)
	if err != nil {
		return err
	}
	b := src.Bounds()
	fmt.Printf("Image: %s (%s, %dx%d)\n", path, decoder, b.Dx(), b.Dy())

	ring := background.RingWidth(b.Dx(), b.Dy())
	if c, err := background.Estimate(src, background.MethodDominant); err == nil {
		fmt.Printf("Border (%dpx) dominant: %d,%d,%d\n", ring, c.R, c.G, c.B)
	}
	if c, err := background.Estimate(src, background.MethodKMeans); err == nil {
		fmt.Printf("Border (%dpx) kmeans:   %d,%d,%d\n", ring, c.R, c.G, c.B)
	}

	opts, err := cfg.Options(src)
	if err != nil {
		return err
	}
	opts.Logger = logging.L()
	bg := opts.Background
	fmt.Printf("Background: %d,%d,%d threshold=%d channels=%s\n", bg.Color.R, bg.Color.G, bg.Color.B, bg.Threshold, bg.Channels)

	res, err := pipeline.Run(src, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Box: %s (%dx%d)\n", res.Box, res.Box.Width(), res.Box.Height())
	fmt.Printf("Square: %s\n", res.Square)

	covered := 0
	for i := 3; i < len(res.Color.Pix); i += 4 {
		if res.Color.Pix[i] > 0 {
			covered++
		}
	}
	fmt.Printf("Coverage: %.1f%% of %dx%d\n", 100*float64(covered)/float64(len(res.Color.Pix)/4), opts.Resolution, opts.Resolution)

	heights := make([]float64, 0, len(res.Height.Pix)/2)
	for i := 0; i+1 < len(res.Height.Pix); i += 2 {
		heights = append(heights, float64(uint16(res.Height.Pix[i])<<8|uint16(res.Height.Pix[i+1]))/0xffff)
	}
	mean, std := stat.MeanStdDev(heights, nil)
	fmt.Println("    --- Height field ---")
	fmt.Printf("    min=%.4f max=%.4f mean=%.4f stddev=%.4f\n", floats.Min(heights), floats.Max(heights), mean, std)

	if previewPath != "" {
		lit := preview.Render(res.Color, res.Normal, preview.DefaultLight())
		if err := texture.WriteAll(texture.FormatPNG, texture.Output{Path: previewPath, Image: lit}); err != nil {
			return err
		}
		fmt.Printf("Preview: %s\n", previewPath)
	}
	return nil
}
