package batch

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"trip_parser/internal/token"
)

// Document is one input line. A document carries either positioned tokens
// with their glyph width, or the raw text content of a PDF page.
type Document struct {
	Name      string           `json:"name"`
	Date      string           `json:"date,omitempty"` // yymmdd, used for the trip ID
	CharWidth float64          `json:"char_width,omitempty"`
	Tokens    []token.Token    `json:"tokens,omitempty"`
	Items     []token.TextItem `json:"items,omitempty"`

	err error // set when the line could not be decoded
}

var errEmptyDocument = errors.New("document has neither tokens nor items")

// Stream returns the token stream and glyph width to parse. An explicit
// char_width wins over the width measured from text items.
func (d *Document) Stream() ([]token.Token, float64, error) {
	if d.err != nil {
		return nil, 0, d.err
	}

	var (
		toks  []token.Token
		width float64
	)
	switch {
	case len(d.Tokens) > 0:
		toks = d.Tokens
	case len(d.Items) > 0:
		toks = token.FromTextItems(d.Items)
		width = token.CharWidth(d.Items)
	default:
		return nil, 0, errEmptyDocument
	}
	if d.CharWidth > 0 {
		width = d.CharWidth
	}
	if width <= 0 {
		return nil, 0, fmt.Errorf("document %s: no usable char_width", d.Name)
	}
	return toks, width, nil
}

// ReadStats counts what ReadDocuments saw.
type ReadStats struct {
	Lines     int
	Documents int
	Invalid   int
}

// ReadDocuments reads JSONL documents. A line that does not decode is kept
// as a document carrying the decode error, so it shows up in the output
// next to the others. Documents without a name are named after their line.
func ReadDocuments(r io.Reader) ([]Document, ReadStats, error) {
	scanner := bufio.NewScanner(r)
	// Pages can be long; bump buffer.
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 64*1024*1024)

	var (
		docs []Document
		st   ReadStats
	)
	for scanner.Scan() {
		st.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var d Document
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			d = Document{err: fmt.Errorf("line %d: %w", st.Lines, err)}
			st.Invalid++
		}
		if d.Name == "" {
			d.Name = fmt.Sprintf("line %d", st.Lines)
		}
		docs = append(docs, d)
		st.Documents++
	}
	if err := scanner.Err(); err != nil {
		return docs, st, fmt.Errorf("reading input: %w", err)
	}
	return docs, st, nil
}
