// Package config loads escheck configuration from file, environment, and
// defaults. Field tags use mapstructure for viper unmarshalling.
package config

// Config is the top-level configuration struct for escheck.
type Config struct {
	// Target is an explicit version token (es6, es2020, ...). Mutually
	// exclusive with Browsers: exactly one selects the run's edition.
	Target string `mapstructure:"target"`

	// Browsers is a browser-compatibility query ("chrome 90, firefox 88").
	Browsers string `mapstructure:"browsers"`

	// Files lists files or directories to check.
	Files []string `mapstructure:"files"`

	// SourceType selects script or module parsing mode.
	SourceType string `mapstructure:"source_type"`

	// AllowHashBang permits a leading #! line in checked files.
	AllowHashBang bool `mapstructure:"allow_hash_bang"`

	// CheckFeatures enables feature detection; when false only parse
	// success is checked.
	CheckFeatures bool `mapstructure:"check_features"`

	// CheckForPolyfills enables textual polyfill suppression.
	CheckForPolyfills bool `mapstructure:"check_for_polyfills"`

	// Ignore is an inline comma-separated feature-name list to ignore.
	Ignore string `mapstructure:"ignore"`

	// IgnoreFile is an external JSON list file unioned into the ignore set.
	IgnoreFile string `mapstructure:"ignore_file"`

	// AllowList is an inline comma-separated feature-name allow list.
	AllowList string `mapstructure:"allow_list"`

	// Workers bounds the number of files checked concurrently. Zero means
	// one worker per CPU.
	Workers int `mapstructure:"workers"`

	// Format selects text or json output.
	Format string `mapstructure:"format"`
}
