package parser

import (
	"trip_parser/internal/patterns"
	"trip_parser/internal/token"
)

// Layout shared by the tests: a 5 unit glyph width and a left margin at 10.
const (
	testWidth  = 5.0
	testMargin = 10.0
)

// labelX is where each flight table header label is printed.
var labelX = [numColumns]float64{30, 45, 60, 85, 105, 130, 140, 160, 185, 200, 235, 265, 295}

// page builds a token stream one visual row at a time, top to bottom.
type page struct {
	toks []token.Token
	y    float64
}

func newPage() *page {
	return &page{y: 800}
}

func at(text string, x float64) token.Token {
	return token.Token{Text: text, X: x}
}

// row appends tokens on a new line.
func (p *page) row(words ...token.Token) *page {
	p.y -= 10
	for _, t := range words {
		t.Y = p.y
		p.toks = append(p.toks, t)
	}
	return p
}

// words appends a row of tokens starting at x, one word every 10 units.
func (p *page) words(x float64, texts ...string) *page {
	toks := make([]token.Token, len(texts))
	for i, s := range texts {
		toks[i] = at(s, x+float64(i)*10)
	}
	return p.row(toks...)
}

// tableHeader appends the flight table header row.
func (p *page) tableHeader() *page {
	labels := []string{"DT", "EQ", "FLT", "STA", "DEP", "M", "STA", "ARR", "AC", "FLY", "GTR", "GRD", "ACT"}
	toks := make([]token.Token, len(labels))
	for i, l := range labels {
		toks[i] = at(l, labelX[i])
	}
	return p.row(toks...)
}

// colX is the x a column's data is aligned to.
func colX(col Column) float64 {
	return labelX[col] + testWidth*float64(columnSpecs[col].justify)
}

// cellAt places text in a column, right-justifying where the column is.
func cellAt(col Column, text string) token.Token {
	switch col {
	case ColFLT, ColGTR, ColGRD:
		return at(text, colX(col)-testWidth*float64(len(text)))
	case ColFLY:
		n := len(text)
		if m := patterns.Find(patterns.FlyCell, text); m != nil {
			n = len(m[1])
		}
		return at(text, colX(col)-testWidth*float64(n))
	}
	return at(text, colX(col))
}

// flight appends a flight row. cells maps columns to their text.
func (p *page) flight(kind string, cells ...any) *page {
	toks := []token.Token{at(kind, testMargin)}
	for i := 0; i+1 < len(cells); i += 2 {
		switch v := cells[i].(type) {
		case Column:
			toks = append(toks, cellAt(v, cells[i+1].(string)))
		case float64:
			toks = append(toks, at(cells[i+1].(string), v))
		}
	}
	return p.row(toks...)
}

// basicFlight is a complete scheduled row.
func (p *page) basicFlight(kind, day, flt, from, dep, to, arr string) *page {
	return p.flight(kind,
		ColDT, day, ColEQ, "73", ColFLT, flt, ColDSTA, from, ColDEP, dep,
		ColASTA, to, ColARR, arr, ColAC, "6Y", ColFLY, "2.00")
}

// scenarioHead is the minimal document up to and including its only flight
// row.
func scenarioHead() *page {
	return newPage().
		row(at("SEQ", testMargin), at("12345", 30), at("BASE", 100), at("DFW", 125)).
		row(at("CAPT", testMargin), at("J", 40), at("DOE", 50), at("EMP", 100), at("NBR", 120), at("9876", 140)).
		tableHeader().
		flight("SKD",
			ColDT, "15", ColEQ, "73", ColFLT, "100", ColDSTA, "DFW", ColDEP, "0900",
			ColASTA, "ORD", ColARR, "1100", ColAC, "6Y", ColFLY, "0200", ColGTR, "0200", ColGRD, "0200")
}

// scenarioTokens is the minimal document: one crew member, one duty period
// with one flight, and the footer.
func scenarioTokens() []token.Token {
	return scenarioHead().
		words(testMargin, "D/P", "SKD", "2.00", "P/C", "2.20", "TL", "2.20").
		words(testMargin, "SEQ", "SKD", "2.00", "P/C", "2.20", "TL", "2.20", "TAFB", "2.20").
		toks
}

// fullTokens exercises every section: header flags, filled and open crew
// slots with comments and info lines, the flag row, two duty periods with
// legs, half day counts, on-duty lines, the FDPT and reserve footer, and an
// AB SEQ footer with PTL.
func fullTokens() []token.Token {
	p := newPage().
		row(at("SEQ", testMargin), at("12345", 30), at("BASE", 100), at("DFW", 125),
			at("SEL", 160), at("123", 180), at("DOM", 210), at("73N", 230),
			at("ORG", 260), at("SCH", 280), at("IPD", 300)).
		row(at("CAPT", testMargin), at("J", 40), at("DOE", 50), at("EMP", 100), at("NBR", 120),
			at("9876", 140), at("RESTRICTED", 170)).
		row(at("QUALIFIED", 40), at("INTERNATIONAL", 90)).
		row(at("F/O", testMargin), at("A", 40), at("SMITH", 50), at("EMP", 100), at("NBR", 120), at("5432", 140)).
		row(at("FA1", testMargin), at("OPEN", 40)).
		row(at("ETB-Y", testMargin), at("TTS-N", 60), at("RF-Y", 110)).
		tableHeader()

	// Duty period 1: two legs, the first with an actual row.
	p.flight("SKD",
		ColDT, "15", ColEQ, "73", ColFLT, "100", ColDSTA, "DFW", ColDEP, "0930A",
		ColASTA, "ORD", ColARR, "1130", ColAC, "6Y", ColFLY, "2.00", ColGTR, "0.45", ColGRD, "1.00")
	p.flight("ACT",
		ColDT, "15", ColEQ, "73", ColFLT, "100", ColDSTA, "DFW", ColDEP, "0935",
		ColASTA, "ORD", ColARR, "1140", ColAC, "6Y", ColFLY, "2.05", ColACT, "XH")
	p.basicFlight("SKD", "15", "200", "ORD", "1230", "LGA", "1500")
	p.words(testMargin, "D/P", "SKD", "4.30", "P/C", "5.00", "TL", "5.00")
	p.words(testMargin, "HALF", "DAY", "COUNT", "DFW", "1", "ORD", "2")
	p.words(testMargin, "DFW", "ONDUTY", "0800", "ODL", "0.30", "TAXABLE", "EXP", "1.15", "SI", "0930/15", "NR")
	p.words(testMargin, "U/S", "1545", "RLS", "1545/12")
	p.words(testMargin, "FDPT", "7.45", "START", "0800", "END", "1545", "ACC", "STA", "DFW")
	p.words(40, "RSV", "FDP", "BEGAN", "0700", "ENDS", "1900")

	// Duty period 2: one deadhead leg, no FDPT line.
	p.basicFlight("SKD", "16", "300", "LGA", "0900", "DFW", "1200")
	p.words(testMargin, "D/P", "GTR", "4.00", "P/C", "4.00", "TL", "4.00")

	p.words(testMargin, "AB", "SEQ", "12300")
	p.words(testMargin, "SEQ", "SKD", "8.30", "P/C", "9.00", "TL", "9.00", "PTL", "1.00", "TAFB", "30.15")
	return p.toks
}
