// Package report renders analysis results as tables, CSV, JSON or YAML.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/country-risk/internal/analysis"
	"github.com/sells-group/country-risk/internal/tier"
)

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const nameWidth = 30

// tierDoc is the serialized form of a tier run.
type tierDoc struct {
	RunID        string        `json:"run_id" yaml:"run_id"`
	Source       string        `json:"source" yaml:"source"`
	DangerousMax float64       `json:"dangerous_max" yaml:"dangerous_max"`
	ModerateMax  float64       `json:"moderate_max" yaml:"moderate_max"`
	Countries    []tierEntry   `json:"countries" yaml:"countries"`
	Warnings     []warningItem `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type tierEntry struct {
	Name         string    `json:"name" yaml:"name"`
	Tier         tier.Tier `json:"tier" yaml:"tier"`
	Value        float64   `json:"value" yaml:"value"`
	PrimaryScore float64   `json:"primary_score" yaml:"primary_score"`
}

type warningItem struct {
	Row     int    `json:"row" yaml:"row"`
	Column  string `json:"column" yaml:"column"`
	Value   string `json:"value" yaml:"value"`
	Message string `json:"message" yaml:"message"`
}

// WriteTiers renders the threshold classification of r.
func WriteTiers(w io.Writer, r *analysis.Report, format string) error {
	switch format {
	case FormatTable:
		return writeTierTable(w, r)
	case FormatCSV:
		return writeTierCSV(w, r)
	case FormatJSON, FormatYAML:
		return encode(w, format, newTierDoc(r))
	default:
		return eris.Errorf("report: unsupported format %q", format)
	}
}

func newTierDoc(r *analysis.Report) tierDoc {
	doc := tierDoc{
		RunID:        r.RunID,
		Source:       string(r.Source),
		DangerousMax: r.Policy.DangerousMax,
		ModerateMax:  r.Policy.ModerateMax,
		Countries:    make([]tierEntry, len(r.Assignments)),
	}
	for i, a := range r.Assignments {
		doc.Countries[i] = tierEntry{
			Name:         a.Entity.Name,
			Tier:         a.Tier,
			Value:        a.Value,
			PrimaryScore: a.Entity.PrimaryScore,
		}
	}
	doc.Warnings = warningItems(r)
	return doc
}

func warningItems(r *analysis.Report) []warningItem {
	var out []warningItem
	for _, pw := range r.Warnings {
		out = append(out, warningItem{Row: pw.Row, Column: pw.Label, Value: pw.Value, Message: pw.String()})
	}
	return out
}

func writeTierTable(w io.Writer, r *analysis.Report) error {
	valueLabel := "Score"
	if r.Source == tier.FromDistance {
		valueLabel = "Mean Dist"
	}

	for i, t := range tier.All {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return eris.Wrap(err, "report: write table")
			}
		}
		if _, err := fmt.Fprintf(w, "%s Countries:\n%-*s %10s\n%s\n",
			t, nameWidth, "Country", valueLabel, strings.Repeat("-", nameWidth+11)); err != nil {
			return eris.Wrap(err, "report: write table header")
		}
		for _, a := range r.Assignments {
			if a.Tier != t {
				continue
			}
			if _, err := fmt.Fprintf(w, "%-*s %10.2f\n", nameWidth, truncate(a.Entity.Name), a.Value); err != nil {
				return eris.Wrap(err, "report: write table row")
			}
		}
	}
	return writeWarnings(w, r)
}

func writeTierCSV(w io.Writer, r *analysis.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"country", "tier", "source", "value", "primary_score"}); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}
	for _, a := range r.Assignments {
		row := []string{
			a.Entity.Name,
			a.Tier.Key(),
			string(r.Source),
			formatFloat(a.Value),
			formatFloat(a.Entity.PrimaryScore),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}

func writeWarnings(w io.Writer, r *analysis.Report) error {
	if len(r.Warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%d value(s) could not be parsed and were treated as 0.00:\n", len(r.Warnings)); err != nil {
		return eris.Wrap(err, "report: write warnings")
	}
	for _, pw := range r.Warnings {
		if _, err := fmt.Fprintf(w, "  %s\n", pw); err != nil {
			return eris.Wrap(err, "report: write warnings")
		}
	}
	return nil
}

func encode(w io.Writer, format string, v any) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "report: encode YAML")
		}
		return eris.Wrap(enc.Close(), "report: close YAML encoder")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "report: encode JSON")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(name string) string {
	r := []rune(name)
	if len(r) > nameWidth {
		return string(r[:nameWidth-3]) + "..."
	}
	return name
}
