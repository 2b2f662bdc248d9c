package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/country-risk/internal/report"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Assign every country to a safety tier",
	Long: `Classify each country into Most Safe, Moderately Safe or Most Dangerous.

With --source score (the default) the primary score column is compared against
--dangerous-max and --moderate-max. With --source distance the mean of the
country's row in the distance matrix is compared against the same cuts. The two
sources are never mixed within one run.

Examples:
  # Classify the default dataset
  classify --types name,score

  # Three indicators, classify on the second one
  classify -i countries.csv -t name,score,score,score --primary Homicide

  # Export tiers as JSON
  classify -i countries.xlsx -t name,score -f json -o tiers.json`,
	RunE: runClassify,
}

func init() {
	addTierFlags(classifyCmd.Flags())

	rootCmd.AddCommand(classifyCmd)
}

func addTierFlags(f *pflag.FlagSet) {
	f.String("source", "", "classification source: score or distance (overrides config)")
	f.Float64("dangerous-max", 0, "highest value classified as Most Dangerous (overrides config)")
	f.Float64("moderate-max", 0, "highest value classified as Moderately Safe (overrides config)")
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, c, err := runAnalysis(ctx, cmd)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, c, r, report.WriteTiers); err != nil {
		return err
	}

	zap.L().Info("classify complete",
		zap.String("run_id", r.RunID),
		zap.Int("countries", len(r.Entities)),
		zap.String("output", c.Output.Path),
	)
	return nil
}
