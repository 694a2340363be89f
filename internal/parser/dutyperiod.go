package parser

import (
	"trip_parser/internal/diag"
	"trip_parser/internal/patterns"
	"trip_parser/internal/token"
	"trip_parser/internal/trip"
)

// atFooter reports whether c is at the trip footer line.
func atFooter(c token.Cursor) bool {
	return c.Is("SEQ") || c.Is("AB", "SEQ")
}

// parseDutyPeriod reads one duty period: flight rows up to D/P, the D/P
// header, an optional half day count, on-duty lines and the optional FDPT
// footer. Any structural error aborts the period.
func parseDutyPeriod(c token.Cursor, cols *Columns, width float64, l *diag.List) (trip.DutyPeriod, token.Cursor, error) {
	var dp trip.DutyPeriod

	legs, c, err := parseFlightTable(c, cols, width, l)
	if err != nil {
		return dp, c, err
	}
	dp, c, err = parseDPHeader(c, legs)
	if err != nil {
		return dp, c, err
	}

	if c.Is("HALF", "DAY", "COUNT") {
		c = parseHalfDay(c, &dp, l)
	}

	for atOnDutyLine(c) {
		var line trip.OnDutyLine
		line, c, err = parseOnDutyLine(c)
		if err != nil {
			return dp, c, err
		}
		dp.OnDuty = append(dp.OnDuty, line)
	}

	// A pure deadhead period has no FDPT line.
	if c.Is("FDPT") && patterns.Is(patterns.Hours, c.Text(1)) {
		c, err = parseDPFooter(c, &dp)
		if err != nil {
			return dp, c, err
		}
	}
	return dp, c, nil
}

// parseFlightTable groups flight rows into legs. An SKD row starts a new leg.
func parseFlightTable(c token.Cursor, cols *Columns, width float64, l *diag.List) ([][]trip.Flight, token.Cursor, error) {
	var (
		legs [][]trip.Flight
		leg  []trip.Flight
	)
	for !c.Is("D/P") {
		if c.Done() {
			return nil, c, errEOF(c, "flight table")
		}
		if atFooter(c) {
			return nil, c, diag.Errorf(c.Pos(), c.Text(0), "trip footer reached before D/P")
		}
		if c.Is("SKD") && len(leg) > 0 {
			legs = append(legs, leg)
			leg = nil
		}
		if !patterns.Is(patterns.RowKind, c.Text(0)) {
			l.Unrecognized(c.Pos(), c.Text(0), "invalid flight row format")
			c = c.Advance(1)
			continue
		}
		var f trip.Flight
		f, c = parseFlightRow(c, cols, width, l)
		leg = append(leg, f)
	}
	if len(leg) > 0 {
		legs = append(legs, leg)
	}
	if len(legs) == 0 {
		return nil, c, diag.Errorf(c.Pos(), c.Text(0), "duty period has no flights")
	}
	return legs, c, nil
}

// parseDPHeader reads "D/P <cat> <dp> P/C <pc> TL <tl>".
func parseDPHeader(c token.Cursor, legs [][]trip.Flight) (trip.DutyPeriod, token.Cursor, error) {
	dp := trip.DutyPeriod{Flights: legs}
	c = c.Advance(1)

	steps := []struct {
		keyword string
		format  string
		field   *string
		msg     string
	}{
		{"", patterns.Category, &dp.Category, "unable to recognize duty period type"},
		{"", patterns.Hours, &dp.DPTime, "invalid duty period time"},
		{"P/C", "", nil, "P/C header not found"},
		{"", patterns.PayCredit, &dp.PCTime, "invalid P/C time"},
		{"TL", "", nil, "TL header not found"},
		{"", patterns.Hours, &dp.TLTime, "invalid total time"},
	}
	for _, s := range steps {
		if c.Done() {
			return dp, c, errEOF(c, "duty period header")
		}
		word := c.Text(0)
		if (s.keyword != "" && word != s.keyword) || (s.format != "" && !patterns.Is(s.format, word)) {
			return dp, c, diag.Errorf(c.Pos(), word, "%s", s.msg)
		}
		if s.field != nil {
			*s.field = word
		}
		c = c.Advance(1)
	}
	return dp, c, nil
}

// parseHalfDay reads "HALF DAY COUNT" followed by airport/count pairs on the
// same row. A malformed pair is reported but kept.
func parseHalfDay(c token.Cursor, dp *trip.DutyPeriod, l *diag.List) token.Cursor {
	row, _ := c.Peek(2)
	c = c.Advance(3)
	for c.OnRow(0, row) {
		pos := c.Pos()
		port, count := c.Text(0), ""
		if c.OnRow(1, row) {
			count = c.Text(1)
			c = c.Advance(2)
		} else {
			c = c.Advance(1)
		}
		if !patterns.Is(patterns.Station, port) || !patterns.Is(patterns.HalfCount, count) {
			l.Add(diag.Diagnostic{
				Kind:    diag.FieldValidation,
				Pos:     pos,
				Token:   port + " " + count,
				Field:   "HALF DAY COUNT",
				Message: "invalid half day airport or count",
			})
		}
		dp.AddHalfDay(port, count)
	}
	return c
}

// atOnDutyLine reports whether the next row is an on-duty line: it starts
// with "<AAA> ONDUTY" or "U/S", or it is indented.
func atOnDutyLine(c token.Cursor) bool {
	if c.Done() {
		return false
	}
	return c.Text(1) == "ONDUTY" || c.Is("U/S") || !c.AtMargin(0)
}

// parseOnDutyLine reads one on-duty line. Everything after the category and
// time is optional, but a token that is none of the known items aborts the
// duty period.
func parseOnDutyLine(c token.Cursor) (trip.OnDutyLine, token.Cursor, error) {
	var line trip.OnDutyLine
	row, _ := c.Peek(0)

	switch {
	case patterns.Is(patterns.Station, c.Text(0)) && c.Text(1) == "ONDUTY":
		line.Category = c.Text(0)
		c = c.Advance(2)
	case c.Is("U/S"):
		line.Category = "U/S"
		c = c.Advance(1)
	}
	if line.Category != "" {
		t, ok := c.Peek(0)
		if !ok {
			return line, c, errEOF(c, "on-duty line")
		}
		line.OnDutyTime = t.Text
		row = t
		c = c.Advance(1)
	}

	for c.OnRow(0, row) {
		word, next := c.Text(0), c.Text(1)
		hasNext := c.OnRow(1, row)

		switch {
		case word == "ODL" && hasNext && patterns.Is(patterns.Hours, next):
			line.ODLTime = next
			c = c.Advance(2)
		case word == "EXP" && hasNext && patterns.Is(patterns.Hours, next):
			line.ExpTime = next
			if c.OnRow(-1, row) && patterns.Is(patterns.ExpenseType, c.Text(-1)) {
				line.ExpType = c.Text(-1)
			}
			c = c.Advance(2)
		case word == "SI" && hasNext && patterns.Is(patterns.Slashed, next):
			line.SIData = next
			c = c.Advance(2)
		case word == "RLS" && hasNext && patterns.Is(patterns.Slashed, next):
			line.RLSData = next
			c = c.Advance(2)
		case patterns.Is(patterns.RangeType, word):
			line.RangeType = word
			c = c.Advance(1)
		case patterns.Is(patterns.ExpenseType, word):
			// Filler; picked up by the EXP that follows it.
			c = c.Advance(1)
		default:
			return line, c, diag.Errorf(c.Pos(), word, "unknown identifier on on-duty line")
		}
	}
	return line, c, nil
}

// parseDPFooter reads "FDPT <t> START <hhmm> END <hhmm> ACC STA <AAA>" and
// the optional indented "RSV FDP BEGAN <t> [ENDS <t>]".
func parseDPFooter(c token.Cursor, dp *trip.DutyPeriod) (token.Cursor, error) {
	dp.FDPT = c.Text(1)
	c = c.Advance(2)

	if !c.Is("START") || !patterns.Is(patterns.ClockTime, c.Text(1)) {
		return c, diag.Errorf(c.Pos(), c.Text(0), "start hours not found")
	}
	dp.StartTime = c.Text(1)
	c = c.Advance(2)

	if !c.Is("END") || !patterns.Is(patterns.ClockTime, c.Text(1)) {
		return c, diag.Errorf(c.Pos(), c.Text(0), "end hours not found")
	}
	dp.EndTime = c.Text(1)
	c = c.Advance(2)

	if !c.Is("ACC", "STA") || !patterns.Is(patterns.Station, c.Text(2)) {
		return c, diag.Errorf(c.Pos(), c.Text(0), "ACC STA not found")
	}
	dp.AccSta = c.Text(2)
	c = c.Advance(3)

	if c.Is("RSV", "FDP", "BEGAN") {
		if !c.Has(3) {
			return c, errEOF(c, "reserve block")
		}
		dp.RsvBegan = c.Text(3)
		c = c.Advance(4)
		if c.Is("ENDS") && c.Has(1) {
			dp.RsvEnds = c.Text(1)
			c = c.Advance(2)
		}
	}
	return c, nil
}
