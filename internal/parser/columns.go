package parser

import (
	"strings"

	"trip_parser/internal/diag"
	"trip_parser/internal/token"
)

// Column identifies one flight table column.
type Column int

const (
	ColDT Column = iota
	ColEQ
	ColFLT
	ColDSTA
	ColDEP
	ColM
	ColASTA
	ColARR
	ColAC
	ColFLY
	ColGTR
	ColGRD
	ColACT
	numColumns
)

// columnSpecs lists the table header labels in the order they are printed.
// justify is the number of characters a right-justified column's data ends
// past the label's left edge.
var columnSpecs = [numColumns]struct {
	name    string
	label   string
	justify int
}{
	ColDT:   {"DT", "DT", 0},
	ColEQ:   {"EQ", "EQ", 0},
	ColFLT:  {"FLT", "FLT", 3},
	ColDSTA: {"DSTA", "STA", 0},
	ColDEP:  {"DEP", "DEP", 0},
	ColM:    {"M", "M", 0},
	ColASTA: {"ASTA", "STA", 0},
	ColARR:  {"ARR", "ARR", 0},
	ColAC:   {"AC", "AC", 0},
	ColFLY:  {"FLY", "FLY", 4},
	ColGTR:  {"GTR", "GTR", 4},
	ColGRD:  {"GRD", "GRD", 4},
	ColACT:  {"ACT", "ACT", 0},
}

func (col Column) String() string {
	if col < 0 || col >= numColumns {
		return "?"
	}
	return columnSpecs[col].name
}

// Columns maps each flight table column to the x position its data is
// expected at.
type Columns struct {
	x     [numColumns]float64
	valid [numColumns]bool
}

// X returns the expected x position of a column.
func (cols *Columns) X(col Column) float64 {
	return cols.x[col]
}

// Missing returns the columns whose header label was not found.
func (cols *Columns) Missing() []Column {
	var out []Column
	for col := Column(0); col < numColumns; col++ {
		if !cols.valid[col] {
			out = append(out, col)
		}
	}
	return out
}

// BuildColumns reads the flight table header row at c. Labels must appear in
// the fixed order; a label that is not where it is expected leaves its
// column unresolved and the reader stays put for the next label. Any
// unresolved column is a structural error.
func BuildColumns(c token.Cursor, width float64, l *diag.List) (Columns, token.Cursor, error) {
	var cols Columns

	for col := Column(0); col < numColumns; col++ {
		spec := columnSpecs[col]
		tok, ok := c.Peek(0)
		if !ok || tok.Text != spec.label {
			l.Add(diag.Diagnostic{
				Kind:    diag.Structural,
				Pos:     c.Pos(),
				Token:   tok.Text,
				Field:   spec.name,
				Message: "no " + spec.name + " column found",
			})
			continue
		}
		cols.x[col] = tok.X + width*float64(spec.justify)
		cols.valid[col] = true
		c = c.Advance(1)
	}

	if missing := cols.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, col := range missing {
			names[i] = col.String()
		}
		return cols, c, diag.Errorf(c.Pos(), c.Text(0), "flight table header incomplete, missing %s", strings.Join(names, ", "))
	}
	return cols, c, nil
}
