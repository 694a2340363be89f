package token

import (
	"strings"
)

// StartMarker is the text of the token every trip document starts at.
// Anything on the page before it is discarded.
const StartMarker = "SEQ"

// TextItem is one text run from a PDF page's text content. Transform is the
// run's text matrix; elements 4 and 5 are the x and y of its origin.
type TextItem struct {
	Str       string    `json:"str"`
	Width     float64   `json:"width"`
	Transform []float64 `json:"transform"`
}

func (it TextItem) origin() (float64, float64) {
	if len(it.Transform) < 6 {
		return 0, 0
	}
	return it.Transform[4], it.Transform[5]
}

func (it TextItem) charWidth() float64 {
	if n := len(it.Str); n > 0 {
		return it.Width / float64(n)
	}
	return 0
}

// CharWidth returns the average glyph width of the page, measured once from
// its first text run.
func CharWidth(items []TextItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return items[0].charWidth()
}

// FromTextItems flattens a page's text runs into tokens, starting at the
// first run whose text is exactly StartMarker. Each run is split on
// whitespace and every word's x is advanced from the run origin by the
// characters consumed so far (including one separator per word).
func FromTextItems(items []TextItem) []Token {
	start := -1
	for i, it := range items {
		if it.Str == StartMarker {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	items = items[start:]
	fallback := items[0].charWidth()

	var toks []Token
	for _, it := range items {
		str := strings.TrimSpace(it.Str)
		if str == "" {
			continue
		}
		w := it.charWidth()
		if w <= 0 {
			w = fallback
		}
		x, y := it.origin()

		offset := 0.0
		for _, word := range strings.Fields(str) {
			toks = append(toks, Token{Text: word, X: x + offset, Y: y})
			offset += float64(len(word)+1) * w
		}
	}
	return toks
}
