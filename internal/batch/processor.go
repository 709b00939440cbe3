package batch

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"skin-scanner/internal/config"
	"skin-scanner/internal/pipeline"
	"skin-scanner/internal/texture"
)

// Config holds all shared settings for a batch run.
type Config struct {
	Settings config.Config
	Format   texture.Format
	// OutputDir replaces each input's directory when set.
	OutputDir string
	// Workers is how many images are converted at once. Per-stage
	// parallelism is left to the process-wide parallel setting.
	Workers int
	Logger    *zap.Logger
}

// Result holds the outcome of processing one photograph.
type Result struct {
	Input   string `json:"input" csv:"input"`
	Decoder string `json:"decoder,omitempty" csv:"decoder"`
	Width   int    `json:"width,omitempty" csv:"width"`
	Height  int    `json:"height,omitempty" csv:"height"`
	Box     string `json:"box,omitempty" csv:"box"`
	Side    int    `json:"side,omitempty" csv:"side"`
	Colors  string `json:"colors,omitempty" csv:"colors"`
	Normals string `json:"normals,omitempty" csv:"normals"`
	Millis  int64  `json:"millis" csv:"millis"`
	Success bool   `json:"success" csv:"success"`
	Error   string `json:"error,omitempty" csv:"error"`
}

// Run converts every input using a worker pool. A failing input is recorded
// in its Result and does not stop the others. Results keep input order.
func Run(cfg Config, inputs []string) []Result {
	total := len(inputs)
	results := make([]Result, total)
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("images_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	itemChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				results[idx] = processItem(cfg, log, inputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range inputs {
		itemChan <- i
	}
	close(itemChan)

	wg.Wait()
	close(done)

	return results
}

func processItem(cfg Config, log *zap.Logger, input string) Result {
	started := time.Now()
	res := Result{Input: input}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Millis = time.Since(started).Milliseconds()
		log.Warn("scan failed", zap.String("input", input), zap.Error(err))
		return res
	}

	src, decoder, err := texture.Load(input)
	res.Decoder = decoder
	if err != nil {
		return fail(err)
	}
	res.Width, res.Height = src.Bounds().Dx(), src.Bounds().Dy()

	opts, err := cfg.Settings.Options(src)
	if err != nil {
		return fail(err)
	}
	opts.Logger = log.With(zap.String("input", input))

	out, err := pipeline.Run(src, opts)
	if err != nil {
		return fail(err)
	}
	res.Box = out.Box.String()
	res.Side = out.Square.Side

	colors, normals := texture.OutputPaths(input, cfg.OutputDir, cfg.Format)
	if err := texture.WriteAll(cfg.Format,
		texture.Output{Path: colors, Image: out.Color},
		texture.Output{Path: normals, Image: out.Normal},
	); err != nil {
		return fail(err)
	}

	res.Colors, res.Normals = colors, normals
	res.Success = true
	res.Millis = time.Since(started).Milliseconds()
	return res
}

// Summary counts successes and failures.
func Summary(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
