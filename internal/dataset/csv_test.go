package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	input := "Country,Safety\nNorway,0.95\nMexico,0.41\n"
	rows, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Country", "Safety"}, rows[0])
	assert.Equal(t, []string{"Mexico", "0.41"}, rows[2])
}

func TestReadCSV_PipeDelimited(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader("a|b\n1|2\n"), CSVOptions{Delimiter: '|'})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestReadCSV_VariableFieldCounts(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader("a,b,c\n1,2\n"), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], 2)
}

func TestReadCSV_QuotedNamesWithCommas(t *testing.T) {
	input := "Country,Safety\n\"Korea, Republic of\",0.88\n"
	rows, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Korea, Republic of", rows[1][0])
}

func TestReadCSV_LazyQuotes(t *testing.T) {
	input := "a,b\n1,\"hello \"world\"\n"
	_, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: read row 1")

	rows, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{LazyQuotes: true})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadCSV_TrimSpace(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader(" a , b \n 1 , 2 \n"), CSVOptions{TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestReadCSV_Empty(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader(""), CSVOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
