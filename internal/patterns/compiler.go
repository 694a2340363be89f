// Package patterns provides shared regex patterns for trip document parsing.
// This file contains the grok-style pattern compiler.

package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// Format is a named whole-token pattern.
type Format struct {
	Name     string         // Format name for identification
	Pattern  string         // Pattern with {PLACEHOLDER} syntax
	Compiled *regexp.Regexp // Compiled regex (populated by Compile)
}

// Compiler manages pattern compilation and matching for a set of formats.
type Compiler struct {
	basePatterns map[string]string
	formats      []Format
	byName       map[string]int
}

// NewCompiler creates a new pattern compiler with the given formats.
// It merges the provided base patterns with the global BasePatterns,
// allowing local patterns to override global ones.
func NewCompiler(formats []Format, localPatterns map[string]string) *Compiler {
	c := &Compiler{
		basePatterns: make(map[string]string),
		formats:      make([]Format, len(formats)),
		byName:       make(map[string]int, len(formats)),
	}

	for k, v := range BasePatterns {
		c.basePatterns[k] = v
	}
	for k, v := range localPatterns {
		c.basePatterns[k] = v
	}

	copy(c.formats, formats)
	for i, f := range c.formats {
		c.byName[f.Name] = i
	}

	return c
}

// Compile expands all {PLACEHOLDER} references and compiles regexes.
// Every format is anchored so it has to match a whole token.
func (c *Compiler) Compile() error {
	for i := range c.formats {
		expanded := c.expand(c.formats[i].Pattern)
		if name := unresolved(expanded); name != "" {
			return fmt.Errorf("format %s: unknown placeholder {%s}", c.formats[i].Name, name)
		}
		re, err := regexp.Compile("^(?:" + expanded + ")$")
		if err != nil {
			return fmt.Errorf("format %s: %w", c.formats[i].Name, err)
		}
		c.formats[i].Compiled = re
	}
	return nil
}

// MustCompile is like NewCompiler followed by Compile but panics on error.
// It is meant for package-level pattern tables.
func MustCompile(formats []Format, localPatterns map[string]string) *Compiler {
	c := NewCompiler(formats, localPatterns)
	if err := c.Compile(); err != nil {
		panic(err)
	}
	return c
}

// expand replaces {PLACEHOLDER} with actual regex patterns. Placeholders are
// wrapped in a non-capturing group so alternations stay local.
func (c *Compiler) expand(pattern string) string {
	result := pattern
	for name, regex := range c.basePatterns {
		result = strings.ReplaceAll(result, "{"+name+"}", "(?:"+regex+")")
	}
	return result
}

var placeholderRe = regexp.MustCompile(`\{([A-Z_]+)\}`)

func unresolved(expanded string) string {
	if m := placeholderRe.FindStringSubmatch(expanded); m != nil {
		return m[1]
	}
	return ""
}

func (c *Compiler) format(name string) *Format {
	i, ok := c.byName[name]
	if !ok || c.formats[i].Compiled == nil {
		return nil
	}
	return &c.formats[i]
}

// Match reports whether text matches the named format in full. Unknown
// format names never match.
func (c *Compiler) Match(name, text string) bool {
	f := c.format(name)
	return f != nil && f.Compiled.MatchString(text)
}

// Find returns the submatches of the named format, or nil.
func (c *Compiler) Find(name, text string) []string {
	f := c.format(name)
	if f == nil {
		return nil
	}
	return f.Compiled.FindStringSubmatch(text)
}

// Pattern returns the compiled expression for a format, for tracing.
func (c *Compiler) Pattern(name string) string {
	if f := c.format(name); f != nil {
		return f.Compiled.String()
	}
	return ""
}
