package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/country-risk/internal/analysis"
	"github.com/sells-group/country-risk/internal/tier"
)

type bucketDoc struct {
	RunID    string          `json:"run_id" yaml:"run_id"`
	Fraction float64         `json:"fraction" yaml:"fraction"`
	Buckets  []bucketSection `json:"buckets" yaml:"buckets"`
	Warnings []warningItem   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type bucketSection struct {
	Tier      tier.Tier     `json:"tier" yaml:"tier"`
	Countries []bucketEntry `json:"countries" yaml:"countries"`
}

type bucketEntry struct {
	Rank  int     `json:"rank" yaml:"rank"`
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// bucketOrder is the section order of the rank report.
var bucketOrder = []tier.Tier{tier.Safest, tier.MostDangerous, tier.ModeratelySafe}

// WriteBuckets renders the rank-based partition of r.
func WriteBuckets(w io.Writer, r *analysis.Report, format string) error {
	switch format {
	case FormatTable:
		return writeBucketTable(w, r)
	case FormatCSV:
		return writeBucketCSV(w, r)
	case FormatJSON, FormatYAML:
		return encode(w, format, newBucketDoc(r))
	default:
		return eris.Errorf("report: unsupported format %q", format)
	}
}

// ranks returns each bucket's starting 1-based rank in the overall ordering.
func ranks(b tier.Buckets) map[tier.Tier]int {
	return map[tier.Tier]int{
		tier.Safest:         1,
		tier.ModeratelySafe: 1 + len(b.Safest),
		tier.MostDangerous:  1 + len(b.Safest) + len(b.ModeratelySafe),
	}
}

func newBucketDoc(r *analysis.Report) bucketDoc {
	start := ranks(r.Buckets)
	doc := bucketDoc{RunID: r.RunID, Fraction: r.Fraction, Warnings: warningItems(r)}
	for _, t := range bucketOrder {
		sec := bucketSection{Tier: t, Countries: []bucketEntry{}}
		for i, e := range r.Buckets.Get(t) {
			sec.Countries = append(sec.Countries, bucketEntry{Rank: start[t] + i, Name: e.Name, Score: e.PrimaryScore})
		}
		doc.Buckets = append(doc.Buckets, sec)
	}
	return doc
}

func writeBucketTable(w io.Writer, r *analysis.Report) error {
	for i, t := range bucketOrder {
		prefix := ""
		if i > 0 {
			prefix = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s%s Countries:\n", prefix, t); err != nil {
			return eris.Wrap(err, "report: write bucket header")
		}
		for _, e := range r.Buckets.Get(t) {
			if _, err := fmt.Fprintf(w, "%-*s %.2f\n", nameWidth, truncate(e.Name), e.PrimaryScore); err != nil {
				return eris.Wrap(err, "report: write bucket row")
			}
		}
	}
	return writeWarnings(w, r)
}

func writeBucketCSV(w io.Writer, r *analysis.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"rank", "country", "bucket", "score"}); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}
	start := ranks(r.Buckets)
	for _, t := range tier.All {
		for i, e := range r.Buckets.Get(t) {
			row := []string{
				fmt.Sprintf("%d", start[t]+i),
				e.Name,
				t.Key(),
				formatFloat(e.PrimaryScore),
			}
			if err := cw.Write(row); err != nil {
				return eris.Wrap(err, "report: write CSV row")
			}
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}
