package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{
		Labels: []string{"Country", "Crime", "Safety", "Region"},
		Types:  []ColumnType{NameColumn, ScoreColumn, ScoreColumn, NameColumn},
		Rows: [][]Cell{
			{NameCell(`"Iceland"`), ScoreCell(0.1), ScoreCell(0.92), NameCell("Europe")},
			{NameCell("  South   Africa "), ScoreCell(0.8), ScoreCell(0.35), NameCell("Africa")},
			{NameCell("Chile"), ScoreCell(0.4), ScoreCell(0.7), NameCell("Americas")},
		},
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Chile", "Chile"},
		{"double quotes", `"Chile"`, "Chile"},
		{"single quotes", "'Chile'", "Chile"},
		{"curly quotes", "“Côte d’Ivoire”", "Côte d’Ivoire"},
		{"nested quotes and space", ` " 'Peru' " `, "Peru"},
		{"collapse whitespace", "South \t  Africa", "South Africa"},
		{"decomposed accent", "Co\u0302te", "C\u00f4te"},
		{"lone quote kept", `"`, `"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNameKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, NameKey("FRANCE"), NameKey(`"france"`))
	assert.NotEqual(t, NameKey("France"), NameKey("Frances"))
}

func TestFeatureVectors_OnlyScoresInOrder(t *testing.T) {
	vecs := FeatureVectors(sampleTable().Rows)
	assert.Equal(t, [][]float64{{0.1, 0.92}, {0.8, 0.35}, {0.4, 0.7}}, vecs)
}

func TestFeatureVectors_Empty(t *testing.T) {
	assert.Empty(t, FeatureVectors(nil))
}

func TestEntities_DefaultPrimaryIsFirstScoreColumn(t *testing.T) {
	ents, err := Entities(sampleTable(), "")
	require.NoError(t, err)
	require.Len(t, ents, 3)

	assert.Equal(t, "Iceland", ents[0].Name)
	assert.Equal(t, "South Africa", ents[1].Name)
	assert.InDelta(t, 0.1, ents[0].PrimaryScore, 1e-12)
	assert.Equal(t, []float64{0.1, 0.92}, ents[0].Features)
	assert.Equal(t, 3, ents[2].Row)
}

func TestEntities_NamedPrimaryColumn(t *testing.T) {
	ents, err := Entities(sampleTable(), "safety")
	require.NoError(t, err)
	assert.InDelta(t, 0.92, ents[0].PrimaryScore, 1e-12)
	assert.InDelta(t, 0.35, ents[1].PrimaryScore, 1e-12)
}

func TestEntities_PrimaryMustBeScoreColumn(t *testing.T) {
	for _, label := range []string{"Region", "Population"} {
		t.Run(label, func(t *testing.T) {
			_, err := Entities(sampleTable(), label)
			var uce *UnknownColumnError
			require.True(t, errors.As(err, &uce))
			assert.Equal(t, label, uce.Label)
		})
	}
}

func TestEntities_Duplicate(t *testing.T) {
	tbl := sampleTable()
	tbl.Rows = append(tbl.Rows, []Cell{NameCell("iceland "), ScoreCell(0), ScoreCell(0), NameCell("Europe")})

	_, err := Entities(tbl, "")
	var dup *DuplicateEntityError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 1, dup.FirstRow)
	assert.Equal(t, 4, dup.Row)
}

func TestEntities_MissingColumns(t *testing.T) {
	_, err := Entities(&Table{Types: []ColumnType{ScoreColumn}}, "")
	assert.ErrorIs(t, err, ErrNoNameColumn)

	_, err = Entities(&Table{Types: []ColumnType{NameColumn}}, "")
	assert.ErrorIs(t, err, ErrNoScoreColumn)
}

func TestVectors(t *testing.T) {
	ents, err := Entities(sampleTable(), "")
	require.NoError(t, err)
	assert.Equal(t, FeatureVectors(sampleTable().Rows), Vectors(ents))
}
