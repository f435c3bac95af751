// Package cmd implements the liquid2jinja subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// StagesIdentifier is the kong variable identifier containing the
	// comma-separated stage names of the default pipeline.
	StagesIdentifier = "stages"
)
