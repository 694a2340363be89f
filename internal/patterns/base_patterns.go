// Package patterns provides shared regex patterns for trip document parsing.
// This file contains grok-style base patterns for use with the Compiler.

package patterns

// BasePatterns defines reusable regex components for grok-style pattern composition.
// These are referenced in format patterns using {PATTERN_NAME} syntax.
var BasePatterns = map[string]string{
	// Stations.
	"STATION": `[A-Z]{3}`,
	"FLEET":   `[A-Z0-9]{3}`,

	// Times.
	"HHMM":    `\d{4}`,                // clock time
	"HOURS":   `\d{1,2}\.\d{2}`,       // decimal hours, e.g. 2.20 or 12.05
	"PCHOURS": `\d{1,2}\.\d{2}[A-Z]?`, // pay credit may carry a one letter flag
	"SLASHED": `\d{4}/\d{2}`,          // SI and RLS data, e.g. 0930/15

	// Identifiers.
	"SEQNUM": `\d{1,5}`,
	"SEL":    `\d{1,4}`,
	"DAY":    `\d{2}`,
	"EQUIP":  `\d{2}|XX`,
	"FLTNUM": `\d{1,4}`,
	"TAIL":   `[0-9A-Z]{2}|\*`,
	"MEAL":   `[A-Z]`,

	// Codes.
	"CATEGORY":  `EST|GTR|SKD`,
	"DIVISION":  `DOM|INT`,
	"RANGE":     `NR|MR|LR|XL`,
	"EXPENSE":   `I|TAXABLE`,
	"ACTUAL":    `[A-Z]{2,4}`,
	"GTRCODE":   `[A-Z]{4}`,
	"POSITION":  `.{3,4}`,
	"ETBFLAG":   `ETB-[YN]`,
	"ROWKIND":   `[A-Z]{3}`,
	"HALFCOUNT": `\d`,
}
