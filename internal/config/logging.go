package config

import "strings"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level,omitempty"`   // debug, info, warn, error
	Format     string `yaml:"format" json:"format,omitempty"` // json, console, text; empty = json
	File       string `yaml:"file" json:"file,omitempty"`     // empty = no file output
	Console    bool   `yaml:"console" json:"console,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days,omitempty"`
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

func validLevel(level string) bool {
	for _, l := range ValidLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

// ValidFormats lists the accepted logging formats; text is an alias for console.
var ValidFormats = []string{"json", "console", "text"}

func validFormat(format string) bool {
	if format == "" {
		return true
	}
	for _, f := range ValidFormats {
		if strings.EqualFold(format, f) {
			return true
		}
	}
	return false
}
