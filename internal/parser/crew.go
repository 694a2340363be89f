package parser

import (
	"strings"

	"trip_parser/internal/diag"
	"trip_parser/internal/patterns"
	"trip_parser/internal/token"
	"trip_parser/internal/trip"
)

// atTableHeader reports whether c is at the flight table header row.
func atTableHeader(c token.Cursor) bool {
	return c.Is("DT", "EQ")
}

// parseCrewBlock reads crew lines and the ETB flag row up to the flight
// table header.
func parseCrewBlock(c token.Cursor, t *trip.Trip, l *diag.List) (token.Cursor, error) {
	for !atTableHeader(c) {
		if c.Done() {
			return c, errEOF(c, "crew block")
		}
		word := c.Text(0)

		switch {
		case c.AtMargin(0) && patterns.Is(patterns.Position, word):
			var (
				cr  trip.Crew
				err error
			)
			cr, c, err = parseCrewLine(c)
			if err != nil {
				return c, err
			}
			t.AddCrew(cr)
		case patterns.Is(patterns.ETBFlag, word):
			c = parseFlags(c, t)
		default:
			l.Unrecognized(c.Pos(), word, "could not understand crew information")
			c = c.Advance(1)
		}
	}
	return c, nil
}

// parseCrewLine reads "<POS> <name...> EMP NBR <nbr> [comment]" or
// "<POS> OPEN", then the indented info lines beneath it.
func parseCrewLine(c token.Cursor) (trip.Crew, token.Cursor, error) {
	cr := trip.Crew{Position: c.Text(0)}
	c = c.Advance(1)

	if c.Is(trip.OpenPosition) {
		cr.Name = trip.OpenPosition
		c = c.Advance(1)
	} else {
		var name []string
		for !c.Is("EMP", "NBR") {
			if c.Done() || atTableHeader(c) {
				return cr, c, diag.Errorf(c.Pos(), c.Text(0), "EMP NBR not found for %s", cr.Position)
			}
			name = append(name, c.Text(0))
			c = c.Advance(1)
		}
		cr.Name = strings.TrimSpace(strings.Join(name, " "))

		c = c.Advance(2)
		emp, ok := c.Peek(0)
		if !ok {
			return cr, c, errEOF(c, "crew line")
		}
		cr.EmpNbr = emp.Text
		c = c.Advance(1)

		var comment []string
		for c.OnRow(0, emp) {
			comment = append(comment, c.Text(0))
			c = c.Advance(1)
		}
		cr.Comments = strings.Join(comment, " ")
	}

	cr.Info, c = readInfoLines(c)
	return cr, c, nil
}

// readInfoLines collects indented rows beneath a crew line, one string per
// row. A token shaped like a crew position ends the info lines.
func readInfoLines(c token.Cursor) ([]string, token.Cursor) {
	var lines []string
	for isInfo(c) {
		row, _ := c.Peek(0)
		var words []string
		for isInfo(c) && c.OnRow(0, row) {
			words = append(words, c.Text(0))
			c = c.Advance(1)
		}
		lines = append(lines, strings.Join(words, " "))
	}
	return lines, c
}

func isInfo(c token.Cursor) bool {
	return !c.Done() &&
		!c.AtMargin(0) &&
		!atTableHeader(c) &&
		!patterns.Is(patterns.Position, c.Text(0)) &&
		!patterns.Is(patterns.ETBFlag, c.Text(0))
}

// parseFlags reads the ETB/TTS/red flag row. Each flag is set when its token
// ends in Y.
func parseFlags(c token.Cursor, t *trip.Trip) token.Cursor {
	row, _ := c.Peek(0)
	flags := []*bool{&t.ETB, &t.TTS, &t.RedFlag}
	for _, flag := range flags {
		if !c.OnRow(0, row) {
			break
		}
		*flag = strings.HasSuffix(c.Text(0), "Y")
		c = c.Advance(1)
	}
	return c
}
