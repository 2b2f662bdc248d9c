package dataset

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Sentinel errors for file access and entity construction.
var (
	ErrFileNotFound  = eris.New("dataset: file not found")
	ErrIO            = eris.New("dataset: i/o failure")
	ErrNoNameColumn  = eris.New("dataset: no name column declared")
	ErrNoScoreColumn = eris.New("dataset: no score column declared")
)

// ColumnCountError reports a row whose field count disagrees with the declared column types.
// Row 0 is the header row; data rows are numbered from 1, skipping blank lines.
type ColumnCountError struct {
	Row      int
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("dataset: row %d has %d columns, expected %d", e.Row, e.Actual, e.Expected)
}

// UnknownColumnTypeError reports a type tag outside the recognized set.
type UnknownColumnTypeError struct {
	Index int
	Tag   string
}

func (e *UnknownColumnTypeError) Error() string {
	return fmt.Sprintf("dataset: unknown column type %q at column %d", e.Tag, e.Index)
}

// NumericParseError reports an unparseable score under the strict policy.
type NumericParseError struct {
	Row    int
	Column int
	Label  string
	Value  string
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("dataset: row %d column %d (%s): cannot parse %q as a number", e.Row, e.Column, e.Label, e.Value)
}

// DuplicateEntityError reports two rows that normalize to the same entity name.
type DuplicateEntityError struct {
	Name     string
	FirstRow int
	Row      int
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("dataset: duplicate entity %q in rows %d and %d", e.Name, e.FirstRow, e.Row)
}

// UnknownColumnError reports a primary column label that is not a score column of the table.
type UnknownColumnError struct {
	Label string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("dataset: %q is not a score column", e.Label)
}
