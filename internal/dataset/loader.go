package dataset

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// NumericPolicy decides what happens to a score field that does not parse.
type NumericPolicy int

const (
	// Tolerant replaces unparseable scores with 0.0 and records a ParseWarning.
	Tolerant NumericPolicy = iota
	// Strict fails the load with a NumericParseError.
	Strict
)

// ParseNumericPolicy maps "tolerant" (or "") and "strict" to a NumericPolicy.
func ParseNumericPolicy(s string) (NumericPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tolerant":
		return Tolerant, nil
	case "strict":
		return Strict, nil
	default:
		return Tolerant, eris.Errorf("dataset: unknown numeric policy %q", s)
	}
}

// LoadOptions configures Load.
type LoadOptions struct {
	Types         []ColumnType
	Policy        NumericPolicy
	Delimiter     rune   // delimited files only; defaults to ',' (tab for .tsv)
	Sheet         string // xlsx only; defaults to the first sheet
	TrimSpace     bool
	AllowComments bool // treat lines starting with '#' as comments
}

// Load reads a dataset file. The format is chosen from the extension:
// .xlsx is read as a workbook, everything else as delimited text.
// The first row supplies the column labels.
func Load(ctx context.Context, path string, opts LoadOptions) (*Table, error) {
	if len(opts.Types) == 0 {
		return nil, eris.New("dataset: no column types declared")
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, openError(path, statErr)
		}
		records, err = ReadXLSX(path, XLSXOptions{SheetName: opts.Sheet})
	default:
		records, err = readDelimitedFile(ctx, path, opts)
	}
	if err != nil {
		return nil, err
	}

	t, err := Parse(records, opts.Types, opts.Policy)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("dataset: loaded",
		zap.String("path", path),
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.Labels)),
		zap.Int("warnings", len(t.Warnings)),
	)
	return t, nil
}

func readDelimitedFile(ctx context.Context, path string, opts LoadOptions) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close() //nolint:errcheck

	csvOpts := CSVOptions{
		Delimiter:  opts.Delimiter,
		LazyQuotes: true,
		TrimSpace:  opts.TrimSpace,
	}
	if csvOpts.Delimiter == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
		csvOpts.Delimiter = '\t'
	}
	if opts.AllowComments {
		csvOpts.Comment = '#'
	}
	return ReadCSV(ctx, f, csvOpts)
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return eris.Wrapf(ErrFileNotFound, "dataset: %s", path)
	}
	return eris.Wrapf(ErrIO, "dataset: open %s: %v", path, err)
}

// Parse types raw records. records[0] is the header; every record must have
// exactly len(types) fields.
func Parse(records [][]string, types []ColumnType, policy NumericPolicy) (*Table, error) {
	for i, ct := range types {
		if ct != NameColumn && ct != ScoreColumn {
			return nil, &UnknownColumnTypeError{Index: i, Tag: strconv.Itoa(int(ct))}
		}
	}

	t := &Table{Types: append([]ColumnType(nil), types...)}
	if len(records) == 0 {
		return t, nil
	}

	header := records[0]
	if len(header) != len(types) {
		return nil, &ColumnCountError{Row: 0, Expected: len(types), Actual: len(header)}
	}
	t.Labels = make([]string, len(header))
	for i, l := range header {
		t.Labels[i] = strings.TrimSpace(strings.TrimPrefix(l, "\ufeff"))
	}

	for r, record := range records[1:] {
		rowNum := r + 1
		if len(record) != len(types) {
			return nil, &ColumnCountError{Row: rowNum, Expected: len(types), Actual: len(record)}
		}

		row := make([]Cell, len(record))
		for c, field := range record {
			if types[c] == NameColumn {
				row[c] = NameCell(field)
				continue
			}

			v, ok := parseScore(field)
			if !ok {
				if policy == Strict {
					return nil, &NumericParseError{Row: rowNum, Column: c, Label: t.Labels[c], Value: field}
				}
				w := ParseWarning{Row: rowNum, Column: c, Label: t.Labels[c], Value: field}
				t.Warnings = append(t.Warnings, w)
				zap.L().Warn("dataset: non-numeric score replaced with 0.0",
					zap.Int("row", w.Row),
					zap.Int("column", w.Column),
					zap.String("label", w.Label),
					zap.String("value", w.Value),
				)
			}
			row[c] = ScoreCell(v)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// parseScore returns (0, false) for anything that is not a finite number.
func parseScore(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
