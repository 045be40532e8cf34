package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/csvscope/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set csvscope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		if c.Delimiter != "" {
			fmt.Printf("delimiter: %s\n", c.Delimiter)
		}
		fmt.Printf("missing_tokens: %s\n", strings.Join(c.MissingTokens, ","))
		if c.OutputDir != "" {
			fmt.Printf("output_dir: %s\n", c.OutputDir)
		}
		fmt.Printf("report_name: %s\n", c.ReportName)
		fmt.Printf("max_rows: %d\n", c.MaxRows)
		fmt.Printf("top_k: %d\n", c.TopK)
		fmt.Printf("histogram_bins: %d\n", c.HistogramBins)
		fmt.Printf("plot_size_in: %.1f\n", c.PlotSizeIn)
		fmt.Printf("ai_api_key: %s\n", mask(c.AIAPIKey))
		fmt.Printf("ai_model: %s\n", c.AIModel)
		if c.AIBaseURL != "" {
			fmt.Printf("ai_base_url: %s\n", c.AIBaseURL)
		}
		fmt.Printf("http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Printf("retry_max_attempts: %d\n", c.RetryMaxAttempts)
		fmt.Printf("retry_base_delay_ms: %d\n", c.RetryBaseDelayMs)
		fmt.Printf("retry_max_delay_ms: %d\n", c.RetryMaxDelayMs)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "missing_tokens":
			cfg.MissingTokens = strings.Split(val, ",")
		case "output_dir":
			cfg.OutputDir = val
		case "report_name":
			cfg.ReportName = val
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "top_k":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for top_k: %v", val)
			}
			cfg.TopK = i
		case "histogram_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for histogram_bins: %v", val)
			}
			cfg.HistogramBins = i
		case "plot_size_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for plot_size_in: %v", val)
			}
			cfg.PlotSizeIn = f
		case "ai_api_key":
			cfg.AIAPIKey = val
		case "ai_model":
			cfg.AIModel = val
		case "ai_base_url":
			cfg.AIBaseURL = val
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for http_timeout_sec: %w", err)
			}
			cfg.HTTPTimeoutSec = i
		case "retry_max_attempts":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for retry_max_attempts: %w", err)
			}
			cfg.RetryMaxAttempts = i
		case "retry_base_delay_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for retry_base_delay_ms: %v", val)
			}
			cfg.RetryBaseDelayMs = i
		case "retry_max_delay_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for retry_max_delay_ms: %v", val)
			}
			cfg.RetryMaxDelayMs = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "..." + s[len(s)-3:]
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
