package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Delimiter     string   `mapstructure:"delimiter" yaml:"delimiter"`
	MissingTokens []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`
	OutputDir     string   `mapstructure:"output_dir" yaml:"output_dir"`
	ReportName    string   `mapstructure:"report_name" yaml:"report_name"`
	MaxRows       int      `mapstructure:"max_rows" yaml:"max_rows"`
	TopK          int      `mapstructure:"top_k" yaml:"top_k"`
	HistogramBins int      `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	PlotSizeIn    float64  `mapstructure:"plot_size_in" yaml:"plot_size_in"`

	// Optional AI narrative
	AIAPIKey  string `mapstructure:"ai_api_key" yaml:"ai_api_key"`
	AIModel   string `mapstructure:"ai_model" yaml:"ai_model"`
	AIBaseURL string `mapstructure:"ai_base_url" yaml:"ai_base_url"`

	// HTTP/Retry configuration for the AI client
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

// Defaults returns the built-in configuration. Load seeds viper from it, so
// every key here is resolvable from the environment as CSVSCOPE_<KEY>.
func Defaults() *Global {
	return &Global{
		MissingTokens:    []string{"", "NA", "NaN", "null"},
		ReportName:       "README.md",
		TopK:             8,
		HistogramBins:    16,
		PlotSizeIn:       5.0,
		AIModel:          "gpt-4o-mini",
		HTTPTimeoutSec:   60,
		RetryMaxAttempts: 3,
		RetryBaseDelayMs: 500,
		RetryMaxDelayMs:  4000,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.csvscope/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvscope")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVSCOPE")
	v.AutomaticEnv()

	// Defaults. Every key must be seeded here, even the zero-valued ones,
	// or AutomaticEnv cannot resolve its CSVSCOPE_* variable.
	d := Defaults()
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("missing_tokens", d.MissingTokens)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("report_name", d.ReportName)
	v.SetDefault("max_rows", d.MaxRows)
	v.SetDefault("top_k", d.TopK)
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("plot_size_in", d.PlotSizeIn)
	v.SetDefault("ai_api_key", d.AIAPIKey)
	v.SetDefault("ai_model", d.AIModel)
	v.SetDefault("ai_base_url", d.AIBaseURL)
	v.SetDefault("http_timeout_sec", d.HTTPTimeoutSec)
	v.SetDefault("retry_max_attempts", d.RetryMaxAttempts)
	v.SetDefault("retry_base_delay_ms", d.RetryBaseDelayMs)
	v.SetDefault("retry_max_delay_ms", d.RetryMaxDelayMs)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvscope")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
