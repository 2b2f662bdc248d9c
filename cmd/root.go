package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/country-risk/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "country-risk",
	Short: "Country safety tiers from indicator scores",
	Long: `Loads a table of countries and numeric indicator scores, builds the pairwise
Euclidean distance matrix between countries, and sorts them into three tiers:
Most Safe, Moderately Safe and Most Dangerous.

Column types are declared, not inferred: pass one tag per column with --types
(name or score; the legacy codes 1 and 2 also work).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	addInputFlags(rootCmd.PersistentFlags())
}

// addInputFlags registers the dataset, pipeline and output flags shared by every subcommand.
func addInputFlags(f *pflag.FlagSet) {
	f.StringP("input", "i", "", "input file (.csv, .tsv, .txt or .xlsx)")
	f.StringP("types", "t", "", "comma-separated column types, one per column (e.g. name,score,score)")
	f.String("primary", "", "score column used for thresholds and ranking (default: first score column)")
	f.String("delimiter", "", "field delimiter for delimited files (default: tab for .tsv, comma otherwise)")
	f.String("sheet", "", "xlsx sheet name (default: first sheet)")
	f.Bool("strict", false, "fail on non-numeric scores instead of treating them as 0.0")
	f.Int("workers", 0, "goroutines used to build the distance matrix (default from config)")
	f.StringP("format", "f", "", "output format: table, csv, json or yaml")
	f.StringP("output", "o", "", "output file path (default: stdout)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
