package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/report"
)

var (
	proOutput     string
	proDelimiter  string
	proMissing    []string
	proMaxRows    int
	proTopK       int
	proSheetName  string
	proSheetIndex int
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Print column statistics and correlations without rendering images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		opt := dataset.DefaultOptions()
		if len(c.MissingTokens) > 0 {
			opt.MissingTokens = c.MissingTokens
		}
		if cmd.Flags().Changed("missing") {
			opt.MissingTokens = proMissing
		}
		delim := proDelimiter
		if delim == "" {
			delim = c.Delimiter
		}
		if delim != "" {
			d, err := parseDelimiter(delim)
			if err != nil {
				return err
			}
			opt.Delimiter = d
		}
		opt.MaxRows = c.MaxRows
		if proMaxRows > 0 {
			opt.MaxRows = proMaxRows
		}
		opt.SheetName = proSheetName
		opt.SheetIndex = proSheetIndex

		ds, err := dataset.Load(args[0], opt)
		if err != nil {
			return err
		}
		topK := c.TopK
		if proTopK > 0 {
			topK = proTopK
		}
		profiles := analysis.Profile(ds, analysis.ProfileOptions{TopK: topK})
		corr := analysis.Correlate(ds)
		md := report.Summary(ds, profiles, corr)

		if proOutput != "" {
			if err := os.WriteFile(proOutput, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", proOutput)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&proOutput, "output", "o", "", "optional path to write the summary (Markdown)")
	profileCmd.Flags().StringVar(&proDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab'|'|' (auto-detect if omitted)")
	profileCmd.Flags().StringSliceVar(&proMissing, "missing", nil, "missing-value sentinel tokens (default \"\",NA,NaN,null)")
	profileCmd.Flags().IntVar(&proMaxRows, "max-rows", 0, "maximum data rows to read (0 = unlimited)")
	profileCmd.Flags().IntVar(&proTopK, "top-k", 0, "top categorical values to retain per column")
	profileCmd.Flags().StringVar(&proSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	profileCmd.Flags().IntVar(&proSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
