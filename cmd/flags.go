package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/country-risk/internal/analysis"
	"github.com/sells-group/country-risk/internal/config"
)

// applyOverrides returns a copy of the base config with explicitly set CLI flags applied.
func applyOverrides(cmd *cobra.Command, base config.Config) config.Config {
	c := base
	c.Input.ColumnTypes = append([]string(nil), base.Input.ColumnTypes...)

	if v, ok := changedString(cmd, "input"); ok {
		c.Input.Path = v
	}
	if v, ok := changedString(cmd, "types"); ok {
		c.Input.ColumnTypes = splitAndTrim(v)
	}
	if v, ok := changedString(cmd, "primary"); ok {
		c.Input.PrimaryColumn = v
	}
	if v, ok := changedString(cmd, "delimiter"); ok {
		c.Input.Delimiter = unescapeDelimiter(v)
	}
	if v, ok := changedString(cmd, "sheet"); ok {
		c.Input.Sheet = v
	}
	if changed(cmd, "strict") {
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			c.Input.NumericPolicy = config.NumericStrict
		} else {
			c.Input.NumericPolicy = config.NumericTolerant
		}
	}
	if changed(cmd, "workers") {
		c.Distance.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if v, ok := changedString(cmd, "format"); ok {
		c.Output.Format = strings.ToLower(v)
	}
	if v, ok := changedString(cmd, "output"); ok {
		c.Output.Path = v
	}
	if v, ok := changedString(cmd, "source"); ok {
		c.Tiers.Source = strings.ToLower(v)
	}
	if changed(cmd, "dangerous-max") {
		c.Tiers.DangerousMax, _ = cmd.Flags().GetFloat64("dangerous-max")
	}
	if changed(cmd, "moderate-max") {
		c.Tiers.ModerateMax, _ = cmd.Flags().GetFloat64("moderate-max")
	}
	if changed(cmd, "fraction") {
		c.Tiers.BucketFraction, _ = cmd.Flags().GetFloat64("fraction")
	}

	return c
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func changedString(cmd *cobra.Command, name string) (string, bool) {
	if !changed(cmd, name) {
		return "", false
	}
	v, _ := cmd.Flags().GetString(name)
	return v, true
}

// unescapeDelimiter lets shells pass a tab as the two characters `\t`.
func unescapeDelimiter(s string) string {
	switch s {
	case `\t`, "tab":
		return "\t"
	}
	return s
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// runAnalysis resolves the effective config for cmd and runs the pipeline.
func runAnalysis(ctx context.Context, cmd *cobra.Command) (*analysis.Report, config.Config, error) {
	c := applyOverrides(cmd, *cfg)
	if err := c.Validate(); err != nil {
		return nil, c, err
	}

	log := zap.L().With(zap.String("command", cmd.Name()))
	log.Info("loading dataset",
		zap.String("path", c.Input.Path),
		zap.Strings("column_types", c.Input.ColumnTypes),
		zap.String("numeric_policy", c.Input.NumericPolicy),
	)

	r, err := analysis.Run(ctx, &c)
	if err != nil {
		return nil, c, eris.Wrapf(err, "%s: %s", cmd.Name(), c.Input.Path)
	}
	return r, c, nil
}

// openOutput returns stdout, or a created file when path is set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, f.Close, nil
}

// writeReport renders with the given writer function into the configured output.
func writeReport(cmd *cobra.Command, c config.Config, r *analysis.Report, write func(io.Writer, *analysis.Report, string) error) (err error) {
	w, closeFn, err := openOutput(cmd, c.Output.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = eris.Wrap(cerr, "close output file")
		}
	}()

	return write(w, r, c.Output.Format)
}
