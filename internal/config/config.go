// Package config binds viper settings to typed options.
package config

import "github.com/spf13/viper"

// Config holds every tunable the CLI reads from flags, environment or the
// radtools.yaml config file.
type Config struct {
	LogLevel  string
	LogFormat string

	Anonymize AnonymizeConfig
}

// AnonymizeConfig configures directory batch anonymization.
type AnonymizeConfig struct {
	// OnError is "continue" (collect failures, keep going) or "abort"
	// (stop at the first failure).
	OnError string

	// OutputName is the subdirectory created for anonymized output.
	OutputName string

	Recursive bool
	Retry     bool
}

// SetDefaults registers default values on v. Directory batches default to
// continue-with-collected-errors; single-file operations are always
// fail-fast and take no policy.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("anonymize.on_error", "continue")
	v.SetDefault("anonymize.output_name", "anonymized")
	v.SetDefault("anonymize.recursive", true)
	v.SetDefault("anonymize.retry", false)
}

// FromViper reads the effective configuration out of v.
func FromViper(v *viper.Viper) Config {
	return Config{
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		Anonymize: AnonymizeConfig{
			OnError:    v.GetString("anonymize.on_error"),
			OutputName: v.GetString("anonymize.output_name"),
			Recursive:  v.GetBool("anonymize.recursive"),
			Retry:      v.GetBool("anonymize.retry"),
		},
	}
}
