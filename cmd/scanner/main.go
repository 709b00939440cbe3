package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skin-scanner/internal/config"
	"skin-scanner/internal/logging"
	"skin-scanner/internal/parallel"
	"skin-scanner/internal/pipeline"
	"skin-scanner/internal/texture"
)

var (
	rootCmd = &cobra.Command{
		Use:   "scanner <image_path> [<r> <g> <b>]",
		Short: "Turn a photograph of a flat specimen into a color texture and a normal map",
		Long: `Segments the specimen from its backdrop, crops it to a square and writes
<image_path>_colors.png (RGBA, background transparent) and
<image_path>_normals.png (tangent-space normal map).
The optional r g b arguments give the backdrop color; the default is 18 18 18.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	flags      config.Flags
	configFile string
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "YAML or JSON config file")
	f.StringVar(&flags.Format, "format", "", "output format: png or webp (default png)")
	f.StringVarP(&flags.OutputDir, "output", "o", "", "output directory (default: alongside the input)")
	f.IntVar(&flags.Workers, "workers", 0, "worker goroutines per stage (default: GOMAXPROCS)")
	f.StringVar(&flags.LogMode, "log-mode", "", "debug or release")
	f.BoolVar(&flags.AutoBackground, "auto-background", false, "estimate the backdrop color from the image border")
}

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) != 1 && len(args) != 4 {
		return cmd.Usage()
	}
	if len(args) == 4 {
		flags.Background = strings.Join(args[1:], ",")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return err
	}
	cfg.Resolve(flags)
	parallel.SetWorkers(cfg.Workers)
	if err := logging.Init(cfg.LogMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error initialising logger: %v\n", err)
		return err
	}
	log := logging.L()

	if err := scan(cfg, args[0], log); err != nil {
		log.Error("scan failed", zap.String("input", args[0]), zap.Error(err))
		return err
	}
	return nil
}

func scan(cfg config.Config, input string, log *zap.Logger) error {
	format, err := cfg.Format()
	if err != nil {
		return err
	}

	src, decoder, err := texture.Load(input)
	if err != nil {
		return err
	}
	log.Debug("loaded", zap.String("input", input), zap.String("decoder", decoder))

	opts, err := cfg.Options(src)
	if err != nil {
		return err
	}
	opts.Logger = log

	res, err := pipeline.Run(src, opts)
	if err != nil {
		return err
	}

	colors, normals := texture.OutputPaths(input, cfg.Output.Dir, format)
	if err := texture.WriteAll(format,
		texture.Output{Path: colors, Image: res.Color},
		texture.Output{Path: normals, Image: res.Normal},
	); err != nil {
		return err
	}
	log.Info("textures written",
		zap.String("colors", colors),
		zap.String("normals", normals),
		zap.Stringer("box", res.Box),
		zap.Int("side", res.Square.Side))
	return nil
}
