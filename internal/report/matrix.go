package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/country-risk/internal/analysis"
)

type matrixDoc struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Countries []string      `json:"countries" yaml:"countries"`
	Features  []string      `json:"features" yaml:"features"`
	Distances [][]float64   `json:"distances" yaml:"distances"`
	Warnings  []warningItem `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// WriteMatrix renders the labelled pairwise distance matrix of r.
func WriteMatrix(w io.Writer, r *analysis.Report, format string) error {
	names := make([]string, len(r.Entities))
	for i, e := range r.Entities {
		names[i] = e.Name
	}

	switch format {
	case FormatTable:
		return writeMatrixTable(w, names, r)
	case FormatCSV:
		return writeMatrixCSV(w, names, r)
	case FormatJSON, FormatYAML:
		return encode(w, format, matrixDoc{
			RunID:     r.RunID,
			Countries: names,
			Features:  r.Labels,
			Distances: r.Matrix.Rows(),
			Warnings:  warningItems(r),
		})
	default:
		return eris.Errorf("report: unsupported format %q", format)
	}
}

func writeMatrixTable(w io.Writer, names []string, r *analysis.Report) error {
	const cell = 10

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s", nameWidth, "")
	for _, n := range names {
		fmt.Fprintf(&sb, " %*s", cell, abbreviate(n, cell))
	}
	sb.WriteByte('\n')

	for i, n := range names {
		fmt.Fprintf(&sb, "%-*s", nameWidth, truncate(n))
		for j := range names {
			fmt.Fprintf(&sb, " %*.4f", cell, r.Matrix.At(i, j))
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return eris.Wrap(err, "report: write matrix table")
	}
	return nil
}

func writeMatrixCSV(w io.Writer, names []string, r *analysis.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{"country"}, names...)); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}
	for i, n := range names {
		row := make([]string, 0, len(names)+1)
		row = append(row, n)
		for j := range names {
			row = append(row, formatFloat(r.Matrix.At(i, j)))
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}

func abbreviate(name string, width int) string {
	r := []rune(name)
	if len(r) > width {
		return string(r[:width])
	}
	return name
}
