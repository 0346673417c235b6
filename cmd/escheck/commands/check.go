// Package commands implements CLI command handlers for escheck.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/escheck/internal/config"
	"github.com/Sumatoshi-tech/escheck/internal/discover"
	"github.com/Sumatoshi-tech/escheck/pkg/checker"
	"github.com/Sumatoshi-tech/escheck/pkg/esversion"
	"github.com/Sumatoshi-tech/escheck/pkg/parser"
	"github.com/Sumatoshi-tech/escheck/pkg/suppress"
)

// Output format identifiers.
const (
	formatText = "text"
	formatJSON = "json"
)

// Sentinel errors for the check command.
var (
	// ErrNoTarget is returned when neither a version token nor a browser
	// query selects the run's edition.
	ErrNoTarget = errors.New("no target: pass a version token (e.g. es11) or --browsers")

	// ErrNoFiles is returned when no JavaScript files are found to check.
	ErrNoFiles = errors.New("no JavaScript files found to check")

	// ErrCheckFailed is returned when at least one file fails the check.
	ErrCheckFailed = errors.New("check failed")

	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")
)

// CheckCommand holds configuration and dependencies for the check command.
type CheckCommand struct {
	configPath string
	browsers   string
	sourceType string
	format     string
	ignore     string
	ignoreFile string
	allowList  string

	allowHashBang     bool
	checkFeatures     bool
	checkForPolyfills bool
	verbose           bool
	quiet             bool
	noColor           bool
	workers           int
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	check := &CheckCommand{}

	cmd := &cobra.Command{
		Use:   "check [version] [files...]",
		Short: "Check JavaScript files against a target ECMAScript edition",
		Long: `Check parses the given JavaScript files and reports every feature whose
minimum ECMAScript edition exceeds the target. The target is either an
explicit version token (es3, es5, es6/es2015 .. es14/es2023) or a browser
query via --browsers, resolved to the least edition all browsers support.

Examples:
  escheck check es11 dist/
  escheck check es5 bundle.js --check-for-polyfills
  escheck check --browsers "chrome 90, firefox 88" dist/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return check.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&check.configPath, "config", "", "explicit config file path")
	flags.StringVar(&check.browsers, "browsers", "", "browser query, e.g. \"chrome 90, firefox 88\"")
	flags.StringVar(&check.sourceType, "source-type", "", "script or module parsing mode")
	flags.StringVarP(&check.format, "format", "f", "", "output format: text or json")
	flags.StringVar(&check.ignore, "ignore", "", "comma-separated feature names to ignore")
	flags.StringVar(&check.ignoreFile, "ignore-file", "", "JSON file with feature names to ignore")
	flags.StringVar(&check.allowList, "allow-list", "", "comma-separated feature names to always allow")
	flags.BoolVar(&check.allowHashBang, "allow-hash-bang", false, "permit a leading #! line")
	flags.BoolVar(&check.checkFeatures, "check-features", true, "detect features (false checks parse only)")
	flags.BoolVar(&check.checkForPolyfills, "check-for-polyfills", false, "suppress features covered by detected polyfills")
	flags.BoolVarP(&check.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&check.quiet, "quiet", "q", false, "suppress non-error output")
	flags.BoolVar(&check.noColor, "no-color", false, "disable colored output")
	flags.IntVar(&check.workers, "workers", 0, "concurrent file checks (0 = one per CPU)")

	return cmd
}

// run executes the check: resolve target, discover files, check, report.
func (c *CheckCommand) run(cmd *cobra.Command, args []string) error {
	start := time.Now()

	if c.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	logger := c.buildLogger(cmd.ErrOrStderr())

	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	token, paths := c.mergeArgs(cfg, args)

	query := c.browsersQuery(cfg)
	if token == "" && query == "" {
		return ErrNoTarget
	}

	target, err := esversion.ResolveTarget(cmd.Context(), token, query, esversion.ListResolver{})
	if err != nil {
		return err
	}

	files, err := discover.Files(paths)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return ErrNoFiles
	}

	runnerCfg, err := c.buildRunnerConfig(cfg, target, cmd.Flags().Changed("check-features"), logger)
	if err != nil {
		return err
	}

	results := checker.NewRunner(runnerCfg, logger).Run(cmd.Context(), files)
	failures := checker.Summarize(results)

	err = c.render(cmd.OutOrStdout(), cfg, token, target, results, failures, time.Since(start))
	if err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, failures, len(results))
	}

	return nil
}

// buildLogger creates a slog logger gated by the verbose/quiet flags.
func (c *CheckCommand) buildLogger(errWriter io.Writer) *slog.Logger {
	level := slog.LevelWarn

	switch {
	case c.quiet:
		level = slog.LevelError
	case c.verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(errWriter, &slog.HandlerOptions{Level: level}))
}

// mergeArgs splits positional arguments into a version token and file paths,
// falling back to config values for both.
func (c *CheckCommand) mergeArgs(cfg *config.Config, args []string) (token string, paths []string) {
	token = cfg.Target
	paths = cfg.Files

	if c.browsers == "" && len(args) > 0 && looksLikeVersionToken(args[0]) {
		token = args[0]
		args = args[1:]
	}

	if c.browsers != "" {
		token = ""
	}

	if len(args) > 0 {
		paths = args
	}

	return token, paths
}

func (c *CheckCommand) browsersQuery(cfg *config.Config) string {
	if c.browsers != "" {
		return c.browsers
	}

	return cfg.Browsers
}

// looksLikeVersionToken distinguishes a version token argument from a path.
func looksLikeVersionToken(arg string) bool {
	if _, err := esversion.Resolve(arg); err == nil {
		return true
	}

	// Unknown es-prefixed tokens still parse as tokens so the resolver can
	// reject them with a precise error instead of a stat failure.
	return len(arg) > 2 && arg[:2] == "es" && !fileExists(arg)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// buildRunnerConfig merges flags over config values and assembles the
// ignore/allow sets. An unusable ignore file degrades to the inline list with
// a warning, never a failed run. checkFeaturesSet reports whether the
// check-features flag was given explicitly; only then does it override the
// config value, since the flag's default is indistinguishable from unset.
func (c *CheckCommand) buildRunnerConfig(
	cfg *config.Config,
	target int,
	checkFeaturesSet bool,
	logger *slog.Logger,
) (checker.RunnerConfig, error) {
	ignoreFile := c.ignoreFile
	if ignoreFile == "" {
		ignoreFile = cfg.IgnoreFile
	}

	ignoreInline := c.ignore
	if ignoreInline == "" {
		ignoreInline = cfg.Ignore
	}

	ignore, err := suppress.BuildSet(ignoreInline, ignoreFile)
	if err != nil {
		if !errors.Is(err, suppress.ErrConfigRead) {
			return checker.RunnerConfig{}, err
		}

		logger.Warn("ignore file unusable, proceeding with inline list only", "error", err)
	}

	allowInline := c.allowList
	if allowInline == "" {
		allowInline = cfg.AllowList
	}

	sourceType := c.sourceType
	if sourceType == "" {
		sourceType = cfg.SourceType
	}

	workers := c.workers
	if workers == 0 {
		workers = cfg.Workers
	}

	checkFeatures := cfg.CheckFeatures
	if checkFeaturesSet {
		checkFeatures = c.checkFeatures
	}

	return checker.RunnerConfig{
		Target:            target,
		CheckFeatures:     checkFeatures,
		CheckForPolyfills: c.checkForPolyfills || cfg.CheckForPolyfills,
		Workers:           workers,
		Ignore:            ignore,
		Allow:             suppress.FromList(allowInline),
		ParserOptions: parser.Options{
			SourceType:    sourceType,
			AllowHashBang: c.allowHashBang || cfg.AllowHashBang,
		},
	}, nil
}

// render writes the run report in the selected format.
func (c *CheckCommand) render(
	writer io.Writer,
	cfg *config.Config,
	token string,
	target int,
	results []checker.FileResult,
	failures int,
	elapsed time.Duration,
) error {
	format := c.format
	if format == "" {
		format = cfg.Format
	}

	switch format {
	case formatJSON:
		return renderJSON(writer, target, results, failures)
	case formatText, "":
		renderText(writer, c.quiet, token, target, results, failures, elapsed)

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// jsonReport is the machine-readable run report.
type jsonReport struct {
	Target   int              `json:"target"`
	Failures int              `json:"failures"`
	Files    []jsonFileReport `json:"files"`
}

type jsonFileReport struct {
	File        string   `json:"file"`
	Found       []string `json:"foundFeatures,omitempty"`
	Unsupported []string `json:"unsupportedFeatures,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func renderJSON(writer io.Writer, target int, results []checker.FileResult, failures int) error {
	report := jsonReport{
		Target:   target,
		Failures: failures,
		Files:    make([]jsonFileReport, 0, len(results)),
	}

	for _, result := range results {
		fileReport := jsonFileReport{
			File:        result.File,
			Found:       result.Found,
			Unsupported: result.Unsupported,
		}

		if result.Err != nil {
			fileReport.Error = result.Err.Error()
		}

		report.Files = append(report.Files, fileReport)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(report)
}

func renderText(
	writer io.Writer,
	quiet bool,
	token string,
	target int,
	results []checker.FileResult,
	failures int,
	elapsed time.Duration,
) {
	fail := color.New(color.FgRed)
	pass := color.New(color.FgGreen)

	for _, result := range results {
		switch {
		case result.Err != nil:
			fail.Fprintf(writer, "  ✗ %s: %v\n", result.File, result.Err)
		case len(result.Unsupported) > 0:
			fail.Fprintf(writer, "  ✗ %s uses: %s\n", result.File, strings.Join(result.Unsupported, ", "))
		case !quiet:
			pass.Fprintf(writer, "  ✓ %s\n", result.File)
		}
	}

	label := token
	if label == "" {
		label = fmt.Sprintf("es%d", target)
	}

	if failures > 0 {
		fail.Fprintf(writer, "%s of %s files failed the %s check (%s)\n",
			humanize.Comma(int64(failures)), humanize.Comma(int64(len(results))), label, elapsed.Round(time.Millisecond))

		return
	}

	if !quiet {
		pass.Fprintf(writer, "%s files passed the %s check (%s)\n",
			humanize.Comma(int64(len(results))), label, elapsed.Round(time.Millisecond))
	}
}
