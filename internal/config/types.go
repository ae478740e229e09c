// Package config loads the configuration for HomeDNS's supplemental admin
// HTTP surface using Viper. The DNS engine itself takes no flags and no
// environment variables: its four listeners, its store path, and its
// upstream endpoint are fixed constants defined alongside their respective
// packages, not config fields. This package only governs the admin surface
// (internal/api).
//
// Environment variables use the HOMEDNS_ prefix and underscore-separated
// keys, e.g. HOMEDNS_ADMIN_PORT -> admin.port.
package config

// AdminConfig controls the operator-facing HTTP surface (health/stats,
// Swagger UI, static landing page). Disabled and loopback-bound by default.
type AdminConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host"    mapstructure:"host"`
	Port    int    `yaml:"port"    mapstructure:"port"`
}

// LoggingConfig controls the slog handler built by internal/logging.
type LoggingConfig struct {
	Level            string            `yaml:"level"             mapstructure:"level"`
	Structured       bool              `yaml:"structured"        mapstructure:"structured"`
	StructuredFormat string            `yaml:"structured_format" mapstructure:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"       mapstructure:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields"      mapstructure:"extra_fields"`
}

// Config is the root configuration structure for the admin surface.
type Config struct {
	Admin   AdminConfig   `yaml:"admin"   mapstructure:"admin"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}
