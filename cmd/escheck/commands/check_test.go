package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/escheck/internal/config"
)

// execCheck runs the check command with the given arguments plus an explicit
// empty config file, so a developer's real config never leaks into tests.
func execCheck(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	return execCheckConfig(t, "", args...)
}

// execCheckConfig runs the check command against an explicit config file with
// the given content.
func execCheckConfig(t *testing.T, cfgContent string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), ".escheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o600))

	cmd := NewCheckCommand()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--config", cfgPath, "--no-color"))

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeJS(t *testing.T, dir, name, source string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

	return path
}

func TestCheckPassingFile(t *testing.T) {
	file := writeJS(t, t.TempDir(), "ok.js", "var x = 1;\n")

	stdout, _, err := execCheck(t, "es5", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+file)
	assert.Contains(t, stdout, "passed the es5 check")
}

func TestCheckFailingFile(t *testing.T) {
	file := writeJS(t, t.TempDir(), "modern.js", "const x = a ?? b;\n")

	stdout, _, err := execCheck(t, "es5", file)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, stdout, "✗ "+file)
	assert.Contains(t, stdout, "NullishCoalescing")
	assert.Contains(t, stdout, "failed the es5 check")
}

func TestCheckBrowserQuery(t *testing.T) {
	file := writeJS(t, t.TempDir(), "modern.js", "const x = a ?? b;\n")

	// chrome 80 resolves to es11, which supports nullish coalescing.
	_, _, err := execCheck(t, "--browsers", "chrome 80", file)
	require.NoError(t, err)
}

func TestCheckNoTarget(t *testing.T) {
	file := writeJS(t, t.TempDir(), "ok.js", "var x = 1;\n")

	_, _, err := execCheck(t, file)
	require.ErrorIs(t, err, ErrNoTarget)
}

func TestCheckNoFiles(t *testing.T) {
	dir := t.TempDir()
	writeJS(t, dir, "readme.md", "# nothing to check\n")

	_, _, err := execCheck(t, "es5", dir)
	require.ErrorIs(t, err, ErrNoFiles)
}

func TestCheckInvalidVersionToken(t *testing.T) {
	file := writeJS(t, t.TempDir(), "ok.js", "var x = 1;\n")

	_, _, err := execCheck(t, "es4", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "es4")
}

func TestCheckIgnoreFlag(t *testing.T) {
	file := writeJS(t, t.TempDir(), "modern.js", "var x = a ?? b;\n")

	_, _, err := execCheck(t, "es5", file, "--ignore", "NullishCoalescing")
	require.NoError(t, err)
}

func TestCheckUnusableIgnoreFileDegrades(t *testing.T) {
	dir := t.TempDir()
	file := writeJS(t, dir, "modern.js", "var x = a ?? b;\n")
	badList := writeJS(t, dir, "list.json", `not json`)

	// The run proceeds with the inline list; the nullish use still fails.
	_, stderr, err := execCheck(t, "es5", file, "--ignore-file", badList)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, stderr, "ignore file unusable")
}

func TestCheckJSONFormat(t *testing.T) {
	file := writeJS(t, t.TempDir(), "modern.js", "const x = a ?? b;\n")

	stdout, _, err := execCheck(t, "es5", file, "--format", "json")
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, stdout, `"target": 5`)
	assert.Contains(t, stdout, `"failures": 1`)
	assert.Contains(t, stdout, `"unsupportedFeatures"`)
	assert.Contains(t, stdout, "NullishCoalescing")
}

func TestCheckUnknownFormat(t *testing.T) {
	file := writeJS(t, t.TempDir(), "ok.js", "var x = 1;\n")

	_, _, err := execCheck(t, "es5", file, "--format", "xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCheckQuietSuppressesPassingLines(t *testing.T) {
	file := writeJS(t, t.TempDir(), "ok.js", "var x = 1;\n")

	stdout, _, err := execCheck(t, "es5", file, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestLooksLikeVersionToken(t *testing.T) {
	t.Parallel()

	assert.True(t, looksLikeVersionToken("es5"))
	assert.True(t, looksLikeVersionToken("es2020"))
	assert.True(t, looksLikeVersionToken("es99"))
	assert.False(t, looksLikeVersionToken("es"))
	assert.False(t, looksLikeVersionToken("dist"))
	assert.False(t, looksLikeVersionToken("bundle.js"))
}

func TestLooksLikeVersionTokenPrefersExistingPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "esbuild-out"), 0o750))
	t.Chdir(dir)

	assert.False(t, looksLikeVersionToken("esbuild-out"))
}

func TestMergeArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cmd       CheckCommand
		cfg       config.Config
		args      []string
		wantToken string
		wantPaths []string
	}{
		{
			name:      "token and paths from args",
			args:      []string{"es11", "dist/"},
			wantToken: "es11",
			wantPaths: []string{"dist/"},
		},
		{
			name:      "paths only fall back to config target",
			cfg:       config.Config{Target: "es6"},
			args:      []string{"dist/"},
			wantToken: "es6",
			wantPaths: []string{"dist/"},
		},
		{
			name:      "config supplies everything",
			cfg:       config.Config{Target: "es6", Files: []string{"src/"}},
			wantToken: "es6",
			wantPaths: []string{"src/"},
		},
		{
			name:      "browsers flag clears the token",
			cmd:       CheckCommand{browsers: "chrome 90"},
			cfg:       config.Config{Target: "es6"},
			args:      []string{"dist/"},
			wantToken: "",
			wantPaths: []string{"dist/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, paths := tt.cmd.mergeArgs(&tt.cfg, tt.args)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}

func TestBuildRunnerConfigMergesFlagsOverConfig(t *testing.T) {
	t.Parallel()

	check := CheckCommand{checkFeatures: true, ignore: "A", workers: 8}
	cfg := config.Config{
		CheckFeatures:     true,
		CheckForPolyfills: true,
		Ignore:            "B",
		AllowList:         "C",
		SourceType:        "module",
		Workers:           2,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	runnerCfg, err := check.buildRunnerConfig(&cfg, 11, false, logger)
	require.NoError(t, err)

	assert.Equal(t, 11, runnerCfg.Target)
	assert.True(t, runnerCfg.CheckFeatures)
	assert.True(t, runnerCfg.CheckForPolyfills)
	assert.Equal(t, 8, runnerCfg.Workers)
	assert.Equal(t, "module", runnerCfg.ParserOptions.SourceType)

	// The inline flag replaces the config's inline list rather than merging.
	assert.True(t, runnerCfg.Ignore.Has("A"))
	assert.False(t, runnerCfg.Ignore.Has("B"))
	assert.True(t, runnerCfg.Allow.Has("C"))
}

func TestBuildRunnerConfigCheckFeaturesExplicitFlagWins(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Config{CheckFeatures: false}
	check := CheckCommand{checkFeatures: true}

	// An explicitly passed flag overrides the config value in either
	// direction; an unset flag leaves the config value in force.
	runnerCfg, err := check.buildRunnerConfig(&cfg, 5, true, logger)
	require.NoError(t, err)
	assert.True(t, runnerCfg.CheckFeatures)

	runnerCfg, err = check.buildRunnerConfig(&cfg, 5, false, logger)
	require.NoError(t, err)
	assert.False(t, runnerCfg.CheckFeatures)

	cfg.CheckFeatures = true
	check.checkFeatures = false

	runnerCfg, err = check.buildRunnerConfig(&cfg, 5, true, logger)
	require.NoError(t, err)
	assert.False(t, runnerCfg.CheckFeatures)
}

func TestCheckFeaturesFlagOverridesConfig(t *testing.T) {
	file := writeJS(t, t.TempDir(), "modern.js", "const x = a ?? b;\n")

	// The config disables feature checking; without the flag the file passes
	// on parse success alone.
	_, _, err := execCheckConfig(t, "check_features: false\n", "es5", file)
	require.NoError(t, err)

	_, _, err = execCheckConfig(t, "check_features: false\n", "es5", file, "--check-features=true")
	require.ErrorIs(t, err, ErrCheckFailed)
}

func TestFeaturesCommandListsCatalog(t *testing.T) {
	t.Parallel()

	cmd := NewFeaturesCommand()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "NullishCoalescing")
	assert.Contains(t, out.String(), "ArrowFunction")
	assert.Contains(t, out.String(), "es11")
}

func TestFeaturesCommandMinEditionFilter(t *testing.T) {
	t.Parallel()

	cmd := NewFeaturesCommand()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--min-edition", "13"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "StaticBlock")
	assert.NotContains(t, out.String(), "ArrowFunction")
}
