package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"skin-scanner/internal/batch"
	"skin-scanner/internal/config"
	"skin-scanner/internal/logging"
	"skin-scanner/internal/parallel"
	"skin-scanner/internal/texture"
)

var (
	rootCmd = &cobra.Command{
		Use:           "scanbatch <dir>",
		Short:         "Scan every photograph under a directory",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	flags      config.Flags
	configFile string
	testN      int
	jobs       int
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "YAML or JSON config file")
	f.StringVar(&flags.Format, "format", "", "output format: png or webp (default png)")
	f.StringVarP(&flags.OutputDir, "output", "o", "", "output directory (default: alongside each input)")
	f.IntVarP(&jobs, "jobs", "j", 0, "images processed at once (default: NumCPU)")
	f.IntVar(&flags.Workers, "workers", 0, "worker goroutines per stage (default: cores split between jobs)")
	f.StringVar(&flags.LogMode, "log-mode", "", "debug or release")
	f.StringVar(&flags.Background, "background", "", `backdrop color: "#rrggbb", "r,g,b" or "auto"`)
	f.BoolVar(&flags.AutoBackground, "auto-background", false, "estimate each backdrop from the image border")
	f.StringVar(&flags.Report, "report", "", "write a CSV report of every input to this path")
	f.IntVar(&testN, "test", 0, "scan only the first N inputs")
}

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg.Resolve(flags)
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if cfg.Workers > 0 {
		parallel.SetWorkers(cfg.Workers)
	} else {
		parallel.SetWorkers(max(1, runtime.GOMAXPROCS(0)/jobs))
	}
	if err := logging.Init(cfg.LogMode); err != nil {
		return err
	}
	format, err := cfg.Format()
	if err != nil {
		return err
	}

	inputs, err := texture.FindInputs(dir)
	if err != nil {
		return err
	}
	if testN > 0 && testN < len(inputs) {
		inputs = inputs[:testN]
	}
	if len(inputs) == 0 {
		fmt.Println("No images to scan.")
		return nil
	}

	outDir := cfg.Output.Dir
	if outDir == "" {
		outDir = dir
	}
	fmt.Printf("Images: %d, Jobs: %d, Workers per stage: %d\n", len(inputs), jobs, parallel.Workers())
	fmt.Printf("Output: %s (%s)\n", outDir, format)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{
		Settings:  cfg,
		Format:    format,
		OutputDir: cfg.Output.Dir,
		Workers:   jobs,
		Logger:    logging.L(),
	}, inputs)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	success, failed := batch.Summary(results)
	fmt.Printf("Scanned: %d/%d\n", success, len(inputs))
	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			fmt.Printf("  %s: %s\n", r.Input, r.Error)
			if shown++; shown == 20 {
				break
			}
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}
	if cfg.Output.Report != "" {
		if err := batch.WriteReport(cfg.Output.Report, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: report write failed: %v\n", err)
		} else {
			fmt.Printf("Report: %s\n", cfg.Output.Report)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(inputs))
	}
	return nil
}
