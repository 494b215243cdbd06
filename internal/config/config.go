package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/Ning0612/drawfolders/internal/convention"
	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/logger"
)

// DefaultTimeout bounds every directory listing against a share
const DefaultTimeout = 10 * time.Second

// Config represents the complete configuration for drawfolders
type Config struct {
	// Roots are the shares (or local folders) holding client folders
	Roots []domain.Root `mapstructure:"roots"`

	// Timeout bounds each filesystem call
	Timeout time.Duration `mapstructure:"timeout"`

	// Log configures logging
	Log LogConfig `mapstructure:"log"`
}

// LogConfig is the on-disk form of logger.Config
type LogConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   LogFileConfig `mapstructure:"file"`
	// Sanitize adds masking patterns for log lines, e.g. client tax ids
	Sanitize []SanitizeRule `mapstructure:"sanitize"`
}

// SanitizeRule masks every match of Pattern with Replacement
type SanitizeRule struct {
	Pattern     string `mapstructure:"pattern"`
	Replacement string `mapstructure:"replacement"`
}

// LogFileConfig configures the rotating log file
type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks if the configuration is complete and consistent
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return fmt.Errorf("%w: no roots configured", domain.ErrConfigInvalid)
	}

	names := make(map[string]bool)
	for _, r := range c.Roots {
		if r.Name == "" {
			return fmt.Errorf("%w: root name cannot be empty", domain.ErrConfigInvalid)
		}
		if names[r.Name] {
			return fmt.Errorf("%w: duplicate root name: %s", domain.ErrConfigInvalid, r.Name)
		}
		if r.Path == "" {
			return fmt.Errorf("%w: root %s has no path", domain.ErrConfigInvalid, r.Name)
		}
		if !r.Mode.IsValid() {
			return fmt.Errorf("%w: root %s has invalid mode: %s", domain.ErrConfigInvalid, r.Name, r.Mode)
		}
		if r.DefaultCode != "" && !convention.IsClientCode(r.DefaultCode) {
			return fmt.Errorf("%w: root %s default_code must be 3 digits: %q",
				domain.ErrConfigInvalid, r.Name, r.DefaultCode)
		}
		names[r.Name] = true
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrConfigInvalid)
	}

	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return fmt.Errorf("%w: log file enabled without a path", domain.ErrConfigInvalid)
	}

	for _, rule := range c.Log.Sanitize {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("%w: log sanitize pattern %q: %v", domain.ErrConfigInvalid, rule.Pattern, err)
		}
	}

	return nil
}

// GetRoot returns a root by name; an empty name selects the first root
func (c *Config) GetRoot(name string) (*domain.Root, error) {
	if name == "" && len(c.Roots) > 0 {
		return &c.Roots[0], nil
	}
	for i := range c.Roots {
		if c.Roots[i].Name == name {
			return &c.Roots[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrRootNotFound, name)
}

// RootNames returns the configured root names in order
func (c *Config) RootNames() []string {
	names := make([]string, 0, len(c.Roots))
	for _, r := range c.Roots {
		names = append(names, r.Name)
	}
	return names
}

// LoggerConfig converts the log section into a logger.Config.
// Console output goes to stderr so command output on stdout stays clean.
func (c *Config) LoggerConfig() logger.Config {
	cfg := logger.Config{
		Level:   logger.ParseLevel(c.Log.Level),
		Format:  logger.ParseFormat(c.Log.Format),
		Outputs: []logger.OutputConfig{{Type: logger.OutputStderr}},
	}
	for _, rule := range c.Log.Sanitize {
		cfg.Redact = append(cfg.Redact, logger.RedactRule{Pattern: rule.Pattern, Replacement: rule.Replacement})
	}
	if c.Log.File.Enabled {
		cfg.Outputs = append(cfg.Outputs, logger.OutputConfig{Type: logger.OutputFile})
		cfg.File = logger.FileConfig{
			Enabled:    true,
			Path:       ExpandPath(c.Log.File.Path),
			MaxSizeMB:  c.Log.File.MaxSizeMB,
			MaxAgeDays: c.Log.File.MaxAgeDays,
			MaxBackups: c.Log.File.MaxBackups,
			Compress:   c.Log.File.Compress,
		}
	}
	return cfg
}

// ExpandPath expands ~ and environment variables in a path.
// UNC paths (\\host\share) are returned unchanged apart from expansion.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	path = os.ExpandEnv(path)
	if isUNC(path) {
		return path
	}
	return filepath.Clean(path)
}

// isUNC reports whether path looks like \\host\share
func isUNC(path string) bool {
	return len(path) > 2 && path[0] == '\\' && path[1] == '\\'
}
