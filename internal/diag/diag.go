// Package diag records what went wrong, or looked wrong, while parsing a
// trip document.
package diag

import (
	"fmt"
	"strings"
)

// Kind is the severity class of a diagnostic.
type Kind int

const (
	// Structural means a required anchor token was missing or malformed.
	// It aborts the parse.
	Structural Kind = iota
	// FieldValidation means a captured value failed its lexical pattern.
	// The raw value is kept.
	FieldValidation
	// UnrecognizedToken means a token fit no slot in its context and was
	// skipped.
	UnrecognizedToken
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case FieldValidation:
		return "field_validation"
	case UnrecognizedToken:
		return "unrecognized_token"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name so JSON output stays readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is a single finding. Pos is the token index it refers to, or -1
// when it refers to a whole record.
type Diagnostic struct {
	Kind    Kind   `json:"kind" msgpack:"kind"`
	Pos     int    `json:"pos" msgpack:"pos"`
	Token   string `json:"token,omitempty" msgpack:"token,omitempty"`
	Field   string `json:"field,omitempty" msgpack:"field,omitempty"`
	Message string `json:"message" msgpack:"message"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	if d.Pos >= 0 {
		fmt.Fprintf(&b, " at %d", d.Pos)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Field != "" {
		fmt.Fprintf(&b, " [%s]", d.Field)
	}
	if d.Token != "" {
		fmt.Fprintf(&b, " (%q)", d.Token)
	}
	return b.String()
}

// List accumulates diagnostics in the order they were found.
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
}

// Unrecognized records a token that matched nothing.
func (l *List) Unrecognized(pos int, tok, msg string) {
	l.Add(Diagnostic{Kind: UnrecognizedToken, Pos: pos, Token: tok, Message: msg})
}

// Invalid records a field whose value failed validation. want describes
// the accepted form and may be empty.
func (l *List) Invalid(pos int, field, value, want string) {
	msg := "invalid " + field
	if want != "" {
		msg += ", want " + want
	}
	l.Add(Diagnostic{Kind: FieldValidation, Pos: pos, Field: field, Token: value, Message: msg})
}

// Items returns the recorded diagnostics.
func (l *List) Items() []Diagnostic {
	if l == nil {
		return nil
	}
	return l.items
}

// Len returns the number of recorded diagnostics.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// StructuralError aborts a parse. It carries the diagnostic that caused it.
type StructuralError struct {
	Diagnostic
}

// Errorf builds a structural error at a token position.
func Errorf(pos int, tok string, format string, args ...any) *StructuralError {
	return &StructuralError{Diagnostic{
		Kind:    Structural,
		Pos:     pos,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}}
}

func (e *StructuralError) Error() string {
	return e.Diagnostic.String()
}
