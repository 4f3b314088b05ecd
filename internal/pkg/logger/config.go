package logger

import "errors"

// Config defines the logger configuration
type Config struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is the log output format: json or console
	Format string `mapstructure:"format"`

	// Output is the log destination: console, file or both
	Output string `mapstructure:"output"`

	// File holds the rotating file settings (used when Output is file or both)
	File FileConfig `mapstructure:"file"`

	// EnableCaller adds the caller file:line to each entry
	EnableCaller bool `mapstructure:"enablecaller"`

	// EnableStacktrace records stack traces for error-level entries
	EnableStacktrace bool `mapstructure:"enablestacktrace"`
}

// FileConfig defines log file rotation settings
type FileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"` // megabytes
	MaxAge     int    `mapstructure:"maxage"`  // days
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration suitable for local development
func DefaultConfig() *Config {
	return &Config{
		Level:        "info",
		Format:       "console",
		Output:       "console",
		EnableCaller: true,
		File: FileConfig{
			Filename:   "logs/app.log",
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 10,
			Compress:   true,
		},
	}
}

// Validate validates the logger configuration
func (c *Config) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logger: level must be one of: debug, info, warn, error")
	}

	switch c.Format {
	case "json", "console":
	default:
		return errors.New("logger: format must be json or console")
	}

	switch c.Output {
	case "console", "file", "both":
	default:
		return errors.New("logger: output must be one of: console, file, both")
	}

	if c.Output != "console" && c.File.Filename == "" {
		return errors.New("logger: file.filename is required for file output")
	}

	return nil
}
