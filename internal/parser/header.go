package parser

import (
	"trip_parser/internal/diag"
	"trip_parser/internal/patterns"
	"trip_parser/internal/token"
	"trip_parser/internal/trip"
)

// parseSeq checks the document opens with "SEQ <number>" and returns a trip
// for that sequence.
func parseSeq(c token.Cursor) (*trip.Trip, token.Cursor, error) {
	if !c.Is("SEQ") || !patterns.Is(patterns.SeqNumber, c.Text(1)) {
		return nil, c, diag.Errorf(c.Pos(), c.Text(0), "document does not start with SEQ <number>")
	}
	return trip.New(c.Text(1)), c.Advance(2), nil
}

// parseHeader reads the header fields that follow the sequence number. The
// header ends at the first token back at the left margin.
func parseHeader(c token.Cursor, t *trip.Trip, l *diag.List) (token.Cursor, error) {
	for !c.AtMargin(0) {
		if c.Done() {
			return c, errEOF(c, "header")
		}
		word, next := c.Text(0), c.Text(1)

		switch {
		case word == "BASE" && patterns.Is(patterns.Station, next):
			t.Base = next
			c = c.Advance(2)
		case word == "SEL" && patterns.Is(patterns.Sel, next):
			t.Sel = next
			c = c.Advance(2)
		case patterns.Is(patterns.Division, word) && patterns.Is(patterns.Fleet, next):
			t.Division = word
			t.Fleet = next
			c = c.Advance(2)
		case c.Is("ORG", "SCH"):
			t.Original = true
			c = c.Advance(2)
		case word == "IPD":
			t.IPD = true
			c = c.Advance(1)
		default:
			l.Unrecognized(c.Pos(), word, "unknown header token")
			t.AdditionalInfo = append(t.AdditionalInfo, word)
			c = c.Advance(1)
		}
	}
	return c, nil
}

func errEOF(c token.Cursor, section string) error {
	return diag.Errorf(c.Pos(), "", "document ended inside %s", section)
}
