package parser

import (
	"trip_parser/internal/diag"
	"trip_parser/internal/patterns"
	"trip_parser/internal/token"
	"trip_parser/internal/trip"
)

// cell is the context a column rule sees: the token being placed, the row
// it belongs to and the flight being filled.
type cell struct {
	f     *trip.Flight
	cols  *Columns
	width float64
	c     token.Cursor // positioned at tok
	row   token.Token
	tok   token.Token
	extra int // further tokens the rule consumed
}

// at reports whether the cell's left edge, shifted by shift, lines up with
// a column.
func (k *cell) at(col Column, shift float64) bool {
	return token.Near(k.tok.X+shift, k.cols.X(col))
}

// rightAt reports whether a right-justified cell of n characters ends at a
// column.
func (k *cell) rightAt(col Column, n int) bool {
	return k.at(col, k.width*float64(n))
}

// columnRule places a token into one flight field. Rules are tried in order
// and the first one that accepts the token wins.
type columnRule struct {
	column string
	apply  func(k *cell) bool
}

var flightRules = []columnRule{
	{"DT", func(k *cell) bool {
		return setIf(&k.f.Day, k.tok.Text, k.at(ColDT, 0))
	}},
	{"EQ", func(k *cell) bool {
		return setIf(&k.f.Equipment, k.tok.Text, k.at(ColEQ, 0))
	}},
	{"FLT", func(k *cell) bool {
		return setIf(&k.f.FlightNumber, k.tok.Text, k.rightAt(ColFLT, len(k.tok.Text)))
	}},
	{"DSTA", func(k *cell) bool {
		return setIf(&k.f.DepStation, k.tok.Text, k.at(ColDSTA, 0))
	}},
	{"DEP", func(k *cell) bool {
		if k.f.DepTime != "" || !k.at(ColDEP, 0) {
			return false
		}
		splitDeparture(k.f, k.tok.Text)
		return true
	}},
	{"M", func(k *cell) bool {
		return setIf(&k.f.Meal, k.tok.Text, k.at(ColM, 0))
	}},
	{"ASTA", func(k *cell) bool {
		return setIf(&k.f.ArrStation, k.tok.Text, k.at(ColASTA, 0))
	}},
	{"ARR", func(k *cell) bool {
		if k.f.ArrTime != "" || !k.at(ColARR, 0) {
			return false
		}
		splitArrival(k.f, k.tok.Text)
		return true
	}},
	{"AC", func(k *cell) bool {
		if k.f.Tail != "" || !k.at(ColAC, 0) {
			return false
		}
		splitTail(k.f, k.tok.Text)
		return true
	}},
	{"FLY", func(k *cell) bool {
		if k.f.FlyTime != "" {
			return false
		}
		// The numeric part is right-justified; a code suffix hangs past the
		// column edge. Anything else is taken whole and left to validation.
		n := len(k.tok.Text)
		if m := patterns.Find(patterns.FlyCell, k.tok.Text); m != nil {
			n = len(m[1])
		}
		return setIf(&k.f.FlyTime, k.tok.Text, k.rightAt(ColFLY, n))
	}},
	{"GTR", func(k *cell) bool {
		return setIf(&k.f.GroundTransport, k.tok.Text, k.rightAt(ColGTR, len(k.tok.Text)))
	}},
	{"GRD", func(k *cell) bool {
		return setIf(&k.f.GroundDuty, k.tok.Text, k.rightAt(ColGRD, len(k.tok.Text)))
	}},
	{"ACT", func(k *cell) bool {
		return setIf(&k.f.ActualCode, k.tok.Text, k.at(ColACT, 0))
	}},
	{"ACT+time", func(k *cell) bool {
		// A code followed by its time is printed two characters left.
		if k.f.ActualCode != "" || !k.at(ColACT, 2*k.width) {
			return false
		}
		k.f.ActualCode = k.tok.Text
		if next, ok := k.c.Peek(1); ok && next.SameRow(k.row) {
			k.f.ActualTime = next.Text
			k.extra = 1
		}
		return true
	}},
	{"ACT>", func(k *cell) bool {
		return setIf(&k.f.ActualCode, k.tok.Text, k.at(ColACT, -4*k.width))
	}},
}

// setIf fills an empty field when the position test passed.
func setIf(field *string, v string, ok bool) bool {
	if !ok || *field != "" {
		return false
	}
	*field = v
	return true
}

// splitDeparture handles a DEP cell that may also hold the meal code.
func splitDeparture(f *trip.Flight, s string) {
	if len(s) <= 4 {
		f.DepTime = s
		return
	}
	f.DepTime = s[:4]
	f.DepShared = true
	if f.Meal == "" && (len(s) == 5 || len(s) == 6) {
		f.Meal = s[len(s)-1:]
	}
}

// splitArrival handles an ARR cell that may also hold the aircraft tail.
func splitArrival(f *trip.Flight, s string) {
	switch {
	case len(s) == 7:
		f.ArrTime = s[:4]
		f.ArrShared = true
		if f.Tail == "" {
			f.Tail = s[5:]
		}
	case len(s) == 6 && s[5] == '*':
		f.ArrTime = s[:4]
		f.ArrShared = true
		if f.Tail == "" {
			f.Tail = "*"
		}
	default:
		f.ArrTime = s
	}
}

// splitTail handles an AC cell that may also hold the flight pay time.
func splitTail(f *trip.Flight, s string) {
	if len(s) != 7 {
		f.Tail = s
		return
	}
	f.Tail = s[:2]
	if f.FlyTime == "" {
		f.FlyTime = s[2:]
	}
}

// parseFlightRow reads one table row starting at c: the row kind token and
// every token on the same line. Tokens that fit no column are reported and
// skipped. The finished row is validated field by field.
func parseFlightRow(c token.Cursor, cols *Columns, width float64, l *diag.List) (trip.Flight, token.Cursor) {
	row, _ := c.Peek(0)
	start := c.Pos()
	f := trip.Flight{Kind: row.Text}

	c = c.Advance(1)
	for c.OnRow(0, row) {
		tok, _ := c.Peek(0)
		k := cell{f: &f, cols: cols, width: width, c: c, row: row, tok: tok}

		placed := false
		for _, r := range flightRules {
			if r.apply(&k) {
				placed = true
				break
			}
		}
		if !placed {
			l.Unrecognized(c.Pos(), tok.Text, "no column found for value")
		}
		c = c.Advance(1 + k.extra)
	}

	f.Validate(start, l)
	return f, c
}
