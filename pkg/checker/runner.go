package checker

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/Sumatoshi-tech/escheck/pkg/parser"
	"github.com/Sumatoshi-tech/escheck/pkg/suppress"
)

// FileResult is the per-file outcome of a run: either a failing parse (Err
// set) or the reported feature lists after suppression.
type FileResult struct {
	File        string
	Found       []string
	Unsupported []string
	Err         error
}

// Failed reports whether this file failed the check, either by failing to
// parse or by using features unsupported at the target edition.
func (r FileResult) Failed() bool {
	return r.Err != nil || len(r.Unsupported) > 0
}

// RunnerConfig configures a multi-file check run. Ignore and allow sets and
// the polyfill flag feed the suppression pipeline unchanged for every file.
type RunnerConfig struct {
	Target            int
	CheckFeatures     bool
	CheckForPolyfills bool
	Workers           int
	Ignore            suppress.Set
	Allow             suppress.Set
	ParserOptions     parser.Options
}

// Runner checks many files against one resolved target edition. Files are
// independent: the catalog and matchers are read-only and all per-file state
// is call-scoped, so files fan out across workers with no coordination.
type Runner struct {
	cfg    RunnerConfig
	parser *parser.Parser
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger falls back to slog's default.
func NewRunner(cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		cfg:    cfg,
		parser: parser.NewParser(cfg.ParserOptions),
		logger: logger,
	}
}

// Run checks every file and returns per-file results ordered by file name.
// Per-file failures are accumulated, never fatal: a file that fails to parse
// is reported as a failing result and checking of other files continues.
func (r *Runner) Run(ctx context.Context, files []string) []FileResult {
	if len(files) == 0 {
		return nil
	}

	jobs := make(chan string)
	results := make([]FileResult, 0, len(files))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	workers := min(r.cfg.Workers, len(files))

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for file := range jobs {
				result := r.checkOne(ctx, file)

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, file := range files {
		jobs <- file
	}

	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	return results
}

// checkOne reads, parses, checks, and suppresses a single file.
func (r *Runner) checkOne(ctx context.Context, file string) FileResult {
	source, err := os.ReadFile(file)
	if err != nil {
		return FileResult{File: file, Err: err}
	}

	tree, err := r.parser.Parse(ctx, file, source)
	if err != nil {
		r.logger.DebugContext(ctx, "parse failed", "file", file, "error", err)

		return FileResult{File: file, Err: err}
	}

	checked := CheckFile(tree, r.cfg.Target, r.cfg.CheckFeatures)

	reported := suppress.Apply(checked.Unsupported, r.cfg.Ignore, r.cfg.Allow, suppress.Options{
		CheckForPolyfills: r.cfg.CheckForPolyfills,
		Source:            source,
	})

	r.logger.DebugContext(ctx, "checked file",
		"file", file,
		"found", len(checked.Found),
		"unsupported", len(reported),
	)

	return FileResult{File: file, Found: checked.Found, Unsupported: reported}
}

// Summarize counts failing files in a result set.
func Summarize(results []FileResult) (failures int) {
	for _, result := range results {
		if result.Failed() {
			failures++
		}
	}

	return failures
}
