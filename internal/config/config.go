package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Scan settings
	ScanPath string `mapstructure:"scan_path"` // default directory to scan

	// File access settings
	RootDir string `mapstructure:"root_dir"` // root for retrieve/remove, paths may not escape it

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // json, yaml, txt, md; empty prints to console
	OutputFile   string `mapstructure:"output_file"`   // output file path

	// Server settings
	Server ServerConfig `mapstructure:"server"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Listen          string   `mapstructure:"listen"`           // listen address
	CORSOrigins     []string `mapstructure:"cors_origins"`     // allowed CORS origins
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // seconds to drain on shutdown
	ReadTimeout     int      `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // seconds, scans of large trees need headroom
}

var reportFormats = []string{"", "json", "yaml", "yml", "txt", "text", "md", "markdown"}

// LoadConfig loads configuration from an optional config file, environment
// variables and defaults
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("scan_path", ".")
	v.SetDefault("root_dir", ".")
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")

	// Server defaults
	v.SetDefault("server.listen", "127.0.0.1:5000")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 600)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	// Read environment variables, DDAS_SERVER_LISTEN for server.listen
	v.SetEnvPrefix("DDAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option values that would only fail later at use
func (c *Config) Validate() error {
	if !IsReportFormat(c.ReportFormat) {
		return fmt.Errorf("unknown report format: %s", c.ReportFormat)
	}
	if c.RootDir == "" {
		return fmt.Errorf("root_dir must not be empty")
	}
	return nil
}

// IsReportFormat reports whether format names a supported report format
func IsReportFormat(format string) bool {
	for _, f := range reportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Seconds converts a seconds option into a duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
