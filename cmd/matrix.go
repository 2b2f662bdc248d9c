package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/country-risk/internal/report"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the pairwise distance matrix between countries",
	Long: `Build the symmetric Euclidean distance matrix over every score column and
print it labelled by country name.

Examples:
  matrix -i countries.csv -t name,score,score
  matrix -i countries.csv -t name,score,score --workers 8 -f csv -o distances.csv`,
	RunE: runMatrix,
}

func init() {
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, c, err := runAnalysis(ctx, cmd)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, c, r, report.WriteMatrix); err != nil {
		return err
	}

	zap.L().Info("matrix complete",
		zap.String("run_id", r.RunID),
		zap.Int("size", r.Matrix.Size()),
	)
	return nil
}
