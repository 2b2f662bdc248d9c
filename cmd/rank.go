package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/country-risk/internal/report"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Sort countries by score and split them into top, middle and bottom buckets",
	Long: `Rank countries by the primary score column, highest first, and split the
ordering into buckets: the top --fraction are Most Safe, the bottom --fraction
are Most Dangerous and the rest are Moderately Safe. Ties keep input order.

Examples:
  # Quartiles (the default)
  rank -t name,score

  # Top and bottom tenths
  rank -t name,score --fraction 0.1`,
	RunE: runRank,
}

func init() {
	addRankFlags(rankCmd.Flags())

	rootCmd.AddCommand(rankCmd)
}

func addRankFlags(f *pflag.FlagSet) {
	f.Float64("fraction", 0, "share of countries in the top and bottom buckets, in (0, 0.5] (overrides config)")
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, c, err := runAnalysis(ctx, cmd)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, c, r, report.WriteBuckets); err != nil {
		return err
	}

	zap.L().Info("rank complete",
		zap.String("run_id", r.RunID),
		zap.Int("most_safe", len(r.Buckets.Safest)),
		zap.Int("moderately_safe", len(r.Buckets.ModeratelySafe)),
		zap.Int("most_dangerous", len(r.Buckets.MostDangerous)),
	)
	return nil
}
