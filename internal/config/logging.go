package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level,omitempty"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format,omitempty"` // json, console
	File   string `yaml:"file" json:"file,omitempty"`     // empty = stderr

	// Rotation, only used when File is set.
	MaxSizeMB  int `yaml:"max_size_mb" json:"max_size_mb,omitempty"`
	MaxBackups int `yaml:"max_backups" json:"max_backups,omitempty"`
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days,omitempty"`
}

// DefaultLoggingConfig logs warnings and above to stderr.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      "warn",
		Format:     "console",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}
