// Package parser turns the positioned tokens of a trip document into a
// trip.Trip.
//
// The document is read in one pass as a sequence of sections:
//
//	header -> crew -> columns -> duty period (repeated) -> footer
//
// Each section reads from a token.Cursor and hands the advanced cursor to the
// next one. Anything that does not fit but can be skipped is recorded as a
// diagnostic; a missing anchor token stops the parse with a
// *diag.StructuralError.
package parser

import (
	"trip_parser/internal/diag"
	"trip_parser/internal/token"
	"trip_parser/internal/trip"
)

// Result is a successfully parsed trip and the diagnostics recorded along
// the way. A trip with diagnostics is still a trip; whether it is usable is
// the caller's decision.
type Result struct {
	Trip        *trip.Trip
	Diagnostics []diag.Diagnostic
}

// Parse reads a whole trip document. charWidth is the document's average
// glyph width, used to place right-justified cells. The returned error is
// always a *diag.StructuralError; no partial trip is returned with it.
func Parse(toks []token.Token, charWidth float64) (*Result, error) {
	m := &machine{cur: token.NewCursor(toks), width: charWidth}
	if err := m.run(); err != nil {
		return nil, err
	}
	return &Result{Trip: m.trip, Diagnostics: m.diags.Items()}, nil
}

type section int

const (
	sectionHeader section = iota
	sectionCrew
	sectionColumns
	sectionDutyPeriod
	sectionFooter
	sectionDone
)

func (s section) String() string {
	switch s {
	case sectionHeader:
		return "header"
	case sectionCrew:
		return "crew"
	case sectionColumns:
		return "columns"
	case sectionDutyPeriod:
		return "duty period"
	case sectionFooter:
		return "footer"
	case sectionDone:
		return "done"
	}
	return "unknown"
}

// transitions lists the sections allowed to follow each section.
var transitions = map[section][]section{
	sectionHeader:     {sectionCrew},
	sectionCrew:       {sectionColumns},
	sectionColumns:    {sectionDutyPeriod},
	sectionDutyPeriod: {sectionDutyPeriod, sectionFooter},
	sectionFooter:     {sectionDone},
}

// machine is the state of one parse. It is never shared.
type machine struct {
	cur   token.Cursor
	width float64
	trip  *trip.Trip
	cols  Columns
	diags diag.List
}

type stepFunc func(m *machine) (section, error)

var steps = map[section]stepFunc{
	sectionHeader:     (*machine).header,
	sectionCrew:       (*machine).crew,
	sectionColumns:    (*machine).columns,
	sectionDutyPeriod: (*machine).dutyPeriod,
	sectionFooter:     (*machine).footer,
}

func (m *machine) run() error {
	for s := sectionHeader; s != sectionDone; {
		next, err := steps[s](m)
		if err != nil {
			return err
		}
		if !allowed(s, next) {
			return diag.Errorf(m.cur.Pos(), m.cur.Text(0), "%s cannot follow %s", next, s)
		}
		s = next
	}
	return nil
}

func allowed(from, to section) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (m *machine) header() (section, error) {
	t, c, err := parseSeq(m.cur)
	if err != nil {
		return sectionHeader, err
	}
	m.trip = t
	m.cur, err = parseHeader(c, m.trip, &m.diags)
	return sectionCrew, err
}

func (m *machine) crew() (section, error) {
	var err error
	m.cur, err = parseCrewBlock(m.cur, m.trip, &m.diags)
	return sectionColumns, err
}

func (m *machine) columns() (section, error) {
	var err error
	m.cols, m.cur, err = BuildColumns(m.cur, m.width, &m.diags)
	return sectionDutyPeriod, err
}

func (m *machine) dutyPeriod() (section, error) {
	dp, c, err := parseDutyPeriod(m.cur, &m.cols, m.width, &m.diags)
	if err != nil {
		return sectionDutyPeriod, err
	}
	m.cur = c
	m.trip.AddDutyPeriod(dp)

	switch {
	case atFooter(m.cur):
		return sectionFooter, nil
	case m.cur.Done():
		return sectionDutyPeriod, errEOF(m.cur, "duty periods")
	}
	return sectionDutyPeriod, nil
}

func (m *machine) footer() (section, error) {
	var err error
	m.cur, err = parseFooter(m.cur, m.trip)
	if err != nil {
		return sectionFooter, err
	}
	if !m.cur.Done() {
		m.diags.Unrecognized(m.cur.Pos(), m.cur.Text(0), "text after trip footer ignored")
	}
	return sectionDone, nil
}
