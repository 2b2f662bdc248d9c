// Package dataset loads country indicator tables from CSV and XLSX files into typed rows.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnType tags a column as holding names or numeric scores.
type ColumnType int

// Column type tags. The numeric values match the legacy type codes (1 = name, 2 = score).
const (
	NameColumn  ColumnType = 1
	ScoreColumn ColumnType = 2
)

func (t ColumnType) String() string {
	switch t {
	case NameColumn:
		return "name"
	case ScoreColumn:
		return "score"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// ParseColumnType maps a type tag to a ColumnType. Accepts "name", "country",
// "score", "numeric" and the legacy codes "1" and "2" (case-insensitive).
// index is the column position, used only for error context.
func ParseColumnType(index int, tag string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "name", "country", "1":
		return NameColumn, nil
	case "score", "numeric", "2":
		return ScoreColumn, nil
	default:
		return 0, &UnknownColumnTypeError{Index: index, Tag: tag}
	}
}

// ParseColumnTypes maps every tag in order.
func ParseColumnTypes(tags []string) ([]ColumnType, error) {
	types := make([]ColumnType, len(tags))
	for i, tag := range tags {
		ct, err := ParseColumnType(i, tag)
		if err != nil {
			return nil, err
		}
		types[i] = ct
	}
	return types, nil
}

// Cell is one typed field of a data row: either a Name or a Score.
type Cell struct {
	Type  ColumnType
	Name  string
	Score float64
}

// NameCell returns a Name cell.
func NameCell(v string) Cell { return Cell{Type: NameColumn, Name: v} }

// ScoreCell returns a Score cell.
func ScoreCell(v float64) Cell { return Cell{Type: ScoreColumn, Score: v} }

// IsScore reports whether the cell holds a numeric score.
func (c Cell) IsScore() bool { return c.Type == ScoreColumn }

// String renders names verbatim and scores with two decimals.
func (c Cell) String() string {
	if c.IsScore() {
		return strconv.FormatFloat(c.Score, 'f', 2, 64)
	}
	return c.Name
}

// ParseWarning records a numeric field that was replaced with 0.0 under the tolerant policy.
// Row is the 1-based data record number; blank lines and blank sheet rows are not counted.
type ParseWarning struct {
	Row    int    `json:"row" yaml:"row"`
	Column int    `json:"column" yaml:"column"`
	Label  string `json:"label" yaml:"label"`
	Value  string `json:"value" yaml:"value"`
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("row %d column %d (%s): %q is not a number, using 0.0", w.Row, w.Column, w.Label, w.Value)
}

// Table is the loader output: header labels, column types, and typed data rows.
type Table struct {
	Labels   []string
	Types    []ColumnType
	Rows     [][]Cell
	Warnings []ParseWarning
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the index of the column with the given label, or -1.
// Labels are compared case-insensitively after trimming.
func (t *Table) ColumnIndex(label string) int {
	want := strings.TrimSpace(label)
	for i, l := range t.Labels {
		if strings.EqualFold(strings.TrimSpace(l), want) {
			return i
		}
	}
	return -1
}

// ScoreLabels returns the labels of the numeric columns in column order.
func (t *Table) ScoreLabels() []string {
	var out []string
	for i, ct := range t.Types {
		if ct == ScoreColumn && i < len(t.Labels) {
			out = append(out, t.Labels[i])
		}
	}
	return out
}
