package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Entity is one country under analysis.
type Entity struct {
	Name         string    `json:"name" yaml:"name"`
	Features     []float64 `json:"features" yaml:"features"`
	PrimaryScore float64   `json:"primary_score" yaml:"primary_score"`
	Row          int       `json:"row" yaml:"row"` // 1-based data row
}

// NormalizeName trims whitespace and surrounding quotes, collapses internal
// runs of whitespace, and applies NFC normalization.
func NormalizeName(s string) string {
	r := []rune(strings.TrimSpace(norm.NFC.String(s)))
	for len(r) >= 2 && isQuote(r[0]) && isQuote(r[len(r)-1]) {
		r = []rune(strings.TrimSpace(string(r[1 : len(r)-1])))
	}
	return strings.Join(strings.FieldsFunc(string(r), unicode.IsSpace), " ")
}

// NameKey is the case-folded form of a normalized name, used for uniqueness checks.
func NameKey(s string) string {
	return cases.Fold().String(NormalizeName(s))
}

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '”', '‘', '’':
		return true
	}
	return false
}

// FeatureVectors extracts the Score cells of every row, preserving row order
// and column order within each row.
func FeatureVectors(rows [][]Cell) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		vec := make([]float64, 0, len(row))
		for _, c := range row {
			if c.IsScore() {
				vec = append(vec, c.Score)
			}
		}
		out[i] = vec
	}
	return out
}

// Entities builds one Entity per data row. The name comes from the first name
// column; the primary score comes from primaryColumn, or the first score column
// when primaryColumn is empty. Names must be unique after normalization.
func Entities(t *Table, primaryColumn string) ([]Entity, error) {
	nameIdx, primaryIdx := -1, -1
	for i, ct := range t.Types {
		if ct == NameColumn && nameIdx < 0 {
			nameIdx = i
		}
		if ct == ScoreColumn && primaryIdx < 0 {
			primaryIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, ErrNoNameColumn
	}
	if primaryIdx < 0 {
		return nil, ErrNoScoreColumn
	}

	if strings.TrimSpace(primaryColumn) != "" {
		idx := t.ColumnIndex(primaryColumn)
		if idx < 0 || t.Types[idx] != ScoreColumn {
			return nil, &UnknownColumnError{Label: primaryColumn}
		}
		primaryIdx = idx
	}

	features := FeatureVectors(t.Rows)
	fold := cases.Fold()
	seen := make(map[string]int, len(t.Rows))
	entities := make([]Entity, len(t.Rows))
	for i, row := range t.Rows {
		rowNum := i + 1
		name := NormalizeName(row[nameIdx].Name)
		key := fold.String(name)
		if first, dup := seen[key]; dup {
			return nil, &DuplicateEntityError{Name: name, FirstRow: first, Row: rowNum}
		}
		seen[key] = rowNum

		entities[i] = Entity{
			Name:         name,
			Features:     features[i],
			PrimaryScore: row[primaryIdx].Score,
			Row:          rowNum,
		}
	}
	return entities, nil
}

// Vectors returns the feature vectors of the given entities in order.
func Vectors(entities []Entity) [][]float64 {
	out := make([][]float64, len(entities))
	for i := range entities {
		out[i] = entities[i].Features
	}
	return out
}
