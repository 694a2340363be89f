// Package token provides the positioned text tokens a trip document is
// parsed from, and a cursor for walking them.
package token

import (
	"encoding/json"
	"fmt"
	"math"
)

// Tolerance is the absolute difference under which two document positions
// are considered equal. Positions come from rasterised layout so exact
// comparison is never used.
const Tolerance = 0.01

// Token is a single whitespace-delimited word and the position of its left
// edge on the page.
type Token struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Near reports whether two positions are equal within Tolerance.
func Near(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// SameRow reports whether two tokens share a visual row.
func (t Token) SameRow(o Token) bool {
	return Near(t.Y, o.Y)
}

// UnmarshalJSON accepts either an object or the compact [text, x, y] triple
// emitted by the extraction step.
func (t *Token) UnmarshalJSON(data []byte) error {
	var triple []json.RawMessage
	if err := json.Unmarshal(data, &triple); err == nil {
		if len(triple) != 3 {
			return fmt.Errorf("token triple has %d elements, want 3", len(triple))
		}
		if err := json.Unmarshal(triple[0], &t.Text); err != nil {
			return fmt.Errorf("token text: %w", err)
		}
		if err := json.Unmarshal(triple[1], &t.X); err != nil {
			return fmt.Errorf("token x: %w", err)
		}
		if err := json.Unmarshal(triple[2], &t.Y); err != nil {
			return fmt.Errorf("token y: %w", err)
		}
		return nil
	}

	type plain Token
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Token(p)
	return nil
}

// Cursor is a read position over a borrowed token slice. It is a value:
// advancing returns a new cursor and leaves the receiver untouched, so a
// stage can hand its final position back to the caller alongside its result.
type Cursor struct {
	toks []Token
	pos  int
}

// NewCursor returns a cursor positioned at the first token.
func NewCursor(toks []Token) Cursor {
	return Cursor{toks: toks}
}

// Pos returns the index of the current token.
func (c Cursor) Pos() int { return c.pos }

// Done reports whether the cursor is past the last token.
func (c Cursor) Done() bool { return c.pos >= len(c.toks) }

// Has reports whether the token n positions ahead exists.
func (c Cursor) Has(n int) bool {
	i := c.pos + n
	return i >= 0 && i < len(c.toks)
}

// Peek returns the token n positions ahead of the cursor.
func (c Cursor) Peek(n int) (Token, bool) {
	if !c.Has(n) {
		return Token{}, false
	}
	return c.toks[c.pos+n], true
}

// Text returns the text of the token n positions ahead, or "" past the end.
func (c Cursor) Text(n int) string {
	t, _ := c.Peek(n)
	return t.Text
}

// Is reports whether the tokens starting at the cursor spell out words.
func (c Cursor) Is(words ...string) bool {
	for i, w := range words {
		if !c.Has(i) || c.toks[c.pos+i].Text != w {
			return false
		}
	}
	return true
}

// Advance returns a cursor moved n tokens forward.
func (c Cursor) Advance(n int) Cursor {
	c.pos += n
	return c
}

// First returns the first token of the stream. Its X is the document's left
// margin.
func (c Cursor) First() (Token, bool) {
	if len(c.toks) == 0 {
		return Token{}, false
	}
	return c.toks[0], true
}

// AtMargin reports whether the token n positions ahead starts at the left
// margin of the document.
func (c Cursor) AtMargin(n int) bool {
	t, ok := c.Peek(n)
	if !ok {
		return false
	}
	first, _ := c.First()
	return Near(t.X, first.X)
}

// OnRow reports whether the token n positions ahead shares a row with row.
func (c Cursor) OnRow(n int, row Token) bool {
	t, ok := c.Peek(n)
	return ok && t.SameRow(row)
}
