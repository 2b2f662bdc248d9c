// Package analysis runs the load, distance and tier steps for one dataset.
package analysis

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/country-risk/internal/config"
	"github.com/sells-group/country-risk/internal/dataset"
	"github.com/sells-group/country-risk/internal/distance"
	"github.com/sells-group/country-risk/internal/tier"
)

// Report is the outcome of one run.
type Report struct {
	RunID       string
	Source      tier.Source
	Policy      tier.Policy
	Fraction    float64
	Labels      []string // score column labels, i.e. the feature dimensions
	Entities    []dataset.Entity
	Matrix      *distance.Matrix
	Assignments []tier.Assignment
	Buckets     tier.Buckets
	Warnings    []dataset.ParseWarning
}

// Load reads the configured input file and builds its entities.
func Load(ctx context.Context, in config.InputConfig) (*dataset.Table, []dataset.Entity, error) {
	types, err := dataset.ParseColumnTypes(in.ColumnTypes)
	if err != nil {
		return nil, nil, err
	}
	policy, err := dataset.ParseNumericPolicy(in.NumericPolicy)
	if err != nil {
		return nil, nil, err
	}

	opts := dataset.LoadOptions{
		Types:     types,
		Policy:    policy,
		Sheet:     in.Sheet,
		TrimSpace: true,
	}
	if r := []rune(in.Delimiter); len(r) == 1 {
		opts.Delimiter = r[0]
	}

	tbl, err := dataset.Load(ctx, in.Path, opts)
	if err != nil {
		return nil, nil, err
	}

	ents, err := dataset.Entities(tbl, in.PrimaryColumn)
	if err != nil {
		return nil, nil, err
	}
	return tbl, ents, nil
}

// Analyze builds the distance matrix over entities and classifies them with
// the configured source, cut points and bucket fraction.
func Analyze(ctx context.Context, tbl *dataset.Table, ents []dataset.Entity, tc config.TierConfig, dc config.DistanceConfig) (*Report, error) {
	if err := tier.ValidateConfig(tc); err != nil {
		return nil, err
	}
	src, err := tier.ParseSource(tc.Source)
	if err != nil {
		return nil, err
	}

	r := &Report{
		RunID:    uuid.New().String(),
		Source:   src,
		Policy:   tier.NewPolicy(tc),
		Fraction: tc.BucketFraction,
		Labels:   tbl.ScoreLabels(),
		Entities: ents,
		Warnings: tbl.Warnings,
	}
	log := zap.L().With(zap.String("run_id", r.RunID))

	r.Matrix, err = distance.BuildMatrixParallel(ctx, dataset.Vectors(ents), dc.Workers)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: build distance matrix")
	}
	log.Debug("analysis: distance matrix built",
		zap.Int("entities", r.Matrix.Size()),
		zap.Int("dimensions", len(r.Labels)),
		zap.Int("workers", dc.Workers),
	)

	if src == tier.FromDistance {
		log.Warn("analysis: tiers driven by mean pairwise distance; larger values mean more dissimilar, not safer")
	}
	r.Assignments, err = tier.Classify(ents, r.Matrix, r.Policy, src)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: classify")
	}

	r.Buckets, err = tier.RankAndBucket(ents, tc.BucketFraction)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: rank")
	}

	counts := tier.Counts(r.Assignments)
	log.Info("analysis: complete",
		zap.String("source", string(src)),
		zap.Int("entities", len(ents)),
		zap.Int("safest", counts[tier.Safest]),
		zap.Int("moderately_safe", counts[tier.ModeratelySafe]),
		zap.Int("most_dangerous", counts[tier.MostDangerous]),
		zap.Int("parse_warnings", len(r.Warnings)),
	)
	return r, nil
}

// Run loads the configured input and analyzes it.
func Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	tbl, ents, err := Load(ctx, cfg.Input)
	if err != nil {
		return nil, err
	}
	return Analyze(ctx, tbl, ents, cfg.Tiers, cfg.Distance)
}
