// Package patterns provides shared regex patterns for trip document parsing.
package patterns

// Token-level format names. These are used by the section parsers to decide
// whether a token can fill a slot.
const (
	SeqNumber   = "SEQNUM"
	Station     = "STATION"
	Fleet       = "FLEET"
	Sel         = "SEL"
	Division    = "DIVISION"
	Category    = "CATEGORY"
	Hours       = "HOURS"
	PayCredit   = "PCHOURS"
	ClockTime   = "HHMM"
	Slashed     = "SLASHED"
	RangeType   = "RANGE"
	ExpenseType = "EXPENSE"
	Position    = "POSITION"
	ETBFlag     = "ETBFLAG"
	RowKind     = "ROWKIND"
	HalfCount   = "HALFCOUNT"

	// FlyCell captures the numeric part of a FLY cell, which may carry a
	// two-letter code or RPRT suffix.
	FlyCell = "FLYCELL"
)

var tokenFormats = []Format{
	{Name: SeqNumber, Pattern: `{SEQNUM}`},
	{Name: Station, Pattern: `{STATION}`},
	{Name: Fleet, Pattern: `{FLEET}`},
	{Name: Sel, Pattern: `{SEL}`},
	{Name: Division, Pattern: `{DIVISION}`},
	{Name: Category, Pattern: `{CATEGORY}`},
	{Name: Hours, Pattern: `{HOURS}`},
	{Name: PayCredit, Pattern: `{PCHOURS}`},
	{Name: ClockTime, Pattern: `{HHMM}`},
	{Name: Slashed, Pattern: `{SLASHED}`},
	{Name: RangeType, Pattern: `{RANGE}`},
	{Name: ExpenseType, Pattern: `{EXPENSE}`},
	{Name: Position, Pattern: `{POSITION}`},
	{Name: ETBFlag, Pattern: `{ETBFLAG}`},
	{Name: RowKind, Pattern: `{ROWKIND}`},
	{Name: HalfCount, Pattern: `{HALFCOUNT}`},
	{Name: FlyCell, Pattern: `({HOURS})(?:[A-Z]{2}|RPRT)?`},
}

// Flight field validators, keyed by the flight table column they check.
var fieldFormats = []Format{
	{Name: "DT", Pattern: `{DAY}`},
	{Name: "EQ", Pattern: `{EQUIP}`},
	{Name: "FLT", Pattern: `{FLTNUM}`},
	{Name: "DSTA", Pattern: `{STATION}`},
	{Name: "DEP", Pattern: `{HHMM}`},
	{Name: "M", Pattern: `{MEAL}`},
	{Name: "ASTA", Pattern: `{STATION}`},
	{Name: "ARR", Pattern: `{HHMM}|\*\*\*\*`},
	{Name: "AC", Pattern: `{TAIL}`},
	{Name: "FLY", Pattern: `{HOURS}(?:[A-Z]{2})?|0\.00RPRT`},
	{Name: "GTR", Pattern: `{HOURS}|{GTRCODE}`},
	{Name: "GRD", Pattern: `{HOURS}`},
	{Name: "ACT", Pattern: `{ACTUAL}`},
	{Name: "ACT_TIME", Pattern: `{HOURS}`},
}

var (
	tokens = MustCompile(tokenFormats, nil)
	fields = MustCompile(fieldFormats, nil)
)

// Is reports whether a token's text matches the named token format.
func Is(format, text string) bool {
	return tokens.Match(format, text)
}

// Find returns the submatches of a token format, or nil.
func Find(format, text string) []string {
	return tokens.Find(format, text)
}

// ValidField reports whether value is well formed for a flight table
// column. It is a pure predicate: the answer never depends on parse state.
func ValidField(column, value string) bool {
	return fields.Match(column, value)
}

// FieldPattern returns the anchored expression a column is validated with.
func FieldPattern(column string) string {
	return fields.Pattern(column)
}
