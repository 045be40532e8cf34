package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/csvscope/internal/ai"
	"github.com/KaramelBytes/csvscope/internal/analysis"
	cfgpkg "github.com/KaramelBytes/csvscope/internal/config"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/pipeline"
	"github.com/KaramelBytes/csvscope/internal/render"
)

var (
	anaOutDir     string
	anaReportName string
	anaDelimiter  string
	anaMissing    []string
	anaMaxRows    int
	anaTopK       int
	anaBins       int
	anaPlotSize   float64
	anaSheetName  string
	anaSheetIndex int
	anaAI         bool
	anaModel      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full pipeline: statistics, images, and a markdown report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		opt, err := buildOptions(cmd, args[0], c)
		if err != nil {
			return err
		}

		if anaAI {
			model := anaModel
			if model == "" {
				model = c.AIModel
			}
			client := ai.NewClientWithBaseURL(
				c.AIAPIKey,
				time.Duration(c.HTTPTimeoutSec)*time.Second,
				c.RetryMaxAttempts,
				time.Duration(c.RetryBaseDelayMs)*time.Millisecond,
				time.Duration(c.RetryMaxDelayMs)*time.Millisecond,
				c.AIBaseURL,
			)
			opt.Narrative = func(ctx context.Context, ds *dataset.Dataset, _ []analysis.ColumnProfile, _ *analysis.CorrMatrix, summary string) (string, error) {
				return ai.Narrative(ctx, client, model, ds.Name, summary)
			}
		}

		if debug {
			fmt.Fprintf(os.Stderr, "analyzing %s into %s (report %s)\n", opt.Input, opt.OutDir, opt.ReportName)
		}
		res, err := pipeline.Run(cmd.Context(), opt)
		if err != nil {
			return err
		}
		if res.Dataset.RaggedRows > 0 {
			fmt.Printf("⚠ %d ragged rows were padded or truncated to header width\n", res.Dataset.RaggedRows)
		}
		for _, a := range res.Artifacts {
			fmt.Printf("✓ Wrote %s\n", a.Path)
		}
		fmt.Printf("✓ Wrote report to %s\n", res.ReportPath)
		return nil
	},
}

// buildOptions maps CLI flags over config defaults into pipeline options.
func buildOptions(cmd *cobra.Command, input string, c *cfgpkg.Global) (pipeline.Options, error) {
	loader := dataset.DefaultOptions()
	if len(c.MissingTokens) > 0 {
		loader.MissingTokens = c.MissingTokens
	}
	if cmd.Flags().Changed("missing") {
		loader.MissingTokens = anaMissing
	}
	delim := anaDelimiter
	if delim == "" {
		delim = c.Delimiter
	}
	if delim != "" {
		d, err := parseDelimiter(delim)
		if err != nil {
			return pipeline.Options{}, err
		}
		loader.Delimiter = d
	}
	loader.MaxRows = c.MaxRows
	if anaMaxRows > 0 {
		loader.MaxRows = anaMaxRows
	}
	loader.SheetName = anaSheetName
	loader.SheetIndex = anaSheetIndex

	topK := c.TopK
	if anaTopK > 0 {
		topK = anaTopK
	}
	bins := c.HistogramBins
	if anaBins > 0 {
		bins = anaBins
	}
	size := c.PlotSizeIn
	if anaPlotSize > 0 {
		size = anaPlotSize
	}

	outDir := anaOutDir
	if outDir == "" {
		outDir = c.OutputDir
	}
	if outDir == "" {
		outDir = "."
	}
	reportName := anaReportName
	if reportName == "" {
		reportName = c.ReportName
	}

	return pipeline.Options{
		Input:      input,
		OutDir:     outDir,
		ReportName: reportName,
		Loader:     loader,
		Profile:    analysis.ProfileOptions{TopK: topK},
		Render:     render.Options{Bins: bins, Size: vg.Length(size) * vg.Inch},
	}, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'tab'|'|')", s)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutDir, "out-dir", "o", "", "directory for images and the report (default current directory)")
	analyzeCmd.Flags().StringVar(&anaReportName, "report", "", "report file name inside the output directory (default README.md)")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab'|'|' (auto-detect if omitted)")
	analyzeCmd.Flags().StringSliceVar(&anaMissing, "missing", nil, "missing-value sentinel tokens (default \"\",NA,NaN,null)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum data rows to read (0 = unlimited)")
	analyzeCmd.Flags().IntVar(&anaTopK, "top-k", 0, "top categorical values to retain per column")
	analyzeCmd.Flags().IntVar(&anaBins, "bins", 0, "histogram bin count")
	analyzeCmd.Flags().Float64Var(&anaPlotSize, "plot-size", 0, "square plot edge in inches")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().BoolVar(&anaAI, "ai", false, "generate the narrative with an OpenAI-compatible model instead of the deterministic writer")
	analyzeCmd.Flags().StringVar(&anaModel, "model", "", "model for --ai (overrides config ai_model)")
}
