package parser

import (
	"trip_parser/internal/diag"
	"trip_parser/internal/patterns"
	"trip_parser/internal/token"
	"trip_parser/internal/trip"
)

// parseFooter reads the trip totals line:
// "[AB SEQ <v>] SEQ <cat> <t> P/C <t> TL <t> [PTL <t>] TAFB <t>".
func parseFooter(c token.Cursor, t *trip.Trip) (token.Cursor, error) {
	if c.Is("AB", "SEQ") {
		if !c.Has(2) {
			return c, errEOF(c, "footer")
		}
		t.ABSeq = c.Text(2)
		c = c.Advance(3)
	}

	if !c.Is("SEQ") {
		return c, diag.Errorf(c.Pos(), c.Text(0), "footer line not found")
	}
	c = c.Advance(1)

	if !patterns.Is(patterns.Category, c.Text(0)) || !patterns.Is(patterns.Hours, c.Text(1)) {
		return c, diag.Errorf(c.Pos(), c.Text(0), "flying hours not found")
	}
	t.FlightTimeType = c.Text(0)
	t.FlightTime = c.Text(1)
	c = c.Advance(2)

	var ok bool
	if t.PCTime, c, ok = keyedHours(c, "P/C"); !ok {
		return c, diag.Errorf(c.Pos(), c.Text(0), "P/C hours not found")
	}
	if t.TLTime, c, ok = keyedHours(c, "TL"); !ok {
		return c, diag.Errorf(c.Pos(), c.Text(0), "total hours not found")
	}
	t.PTLTime, c, _ = keyedHours(c, "PTL")
	if t.TAFBTime, c, ok = keyedHours(c, "TAFB"); !ok {
		return c, diag.Errorf(c.Pos(), c.Text(0), "time away from base not found")
	}
	return c, nil
}

// keyedHours reads "<key> <h.mm>". The cursor is only advanced on a match.
func keyedHours(c token.Cursor, key string) (string, token.Cursor, bool) {
	if !c.Is(key) || !patterns.Is(patterns.Hours, c.Text(1)) {
		return "", c, false
	}
	return c.Text(1), c.Advance(2), true
}
