package trip

import (
	"trip_parser/internal/diag"
	"trip_parser/internal/patterns"
)

// Flight is one row of the flight table. A leg has a scheduled row and may
// have actual rows below it.
type Flight struct {
	Kind string `json:"kind" msgpack:"kind"` // SKD, ACT, ...

	Day             string `json:"dt,omitempty" msgpack:"dt,omitempty"`
	Equipment       string `json:"eq,omitempty" msgpack:"eq,omitempty"`
	FlightNumber    string `json:"flt,omitempty" msgpack:"flt,omitempty"`
	DepStation      string `json:"dsta,omitempty" msgpack:"dsta,omitempty"`
	DepTime         string `json:"dep,omitempty" msgpack:"dep,omitempty"`
	Meal            string `json:"m,omitempty" msgpack:"m,omitempty"`
	ArrStation      string `json:"asta,omitempty" msgpack:"asta,omitempty"`
	ArrTime         string `json:"arr,omitempty" msgpack:"arr,omitempty"`
	Tail            string `json:"ac,omitempty" msgpack:"ac,omitempty"`
	FlyTime         string `json:"fly,omitempty" msgpack:"fly,omitempty"`
	GroundTransport string `json:"gtr,omitempty" msgpack:"gtr,omitempty"`
	GroundDuty      string `json:"grd,omitempty" msgpack:"grd,omitempty"`
	ActualCode      string `json:"act,omitempty" msgpack:"act,omitempty"`
	ActualTime      string `json:"act_time,omitempty" msgpack:"act_time,omitempty"`

	// DepShared and ArrShared record that DEP/M or ARR/AC were printed as
	// one cell and split.
	DepShared bool `json:"dep_rev" msgpack:"dep_rev"`
	ArrShared bool `json:"arr_rev" msgpack:"arr_rev"`
}

type fieldCheck struct {
	column   string
	value    func(f *Flight) string
	required bool // checked even when empty
}

var flightChecks = []fieldCheck{
	{"DT", func(f *Flight) string { return f.Day }, false},
	{"EQ", func(f *Flight) string { return f.Equipment }, true},
	{"FLT", func(f *Flight) string { return f.FlightNumber }, false},
	{"DSTA", func(f *Flight) string { return f.DepStation }, true},
	{"DEP", func(f *Flight) string { return f.DepTime }, false},
	{"M", func(f *Flight) string { return f.Meal }, false},
	{"ASTA", func(f *Flight) string { return f.ArrStation }, true},
	{"ARR", func(f *Flight) string { return f.ArrTime }, false},
	{"AC", func(f *Flight) string { return f.Tail }, false},
	{"FLY", func(f *Flight) string { return f.FlyTime }, false},
	{"GTR", func(f *Flight) string { return f.GroundTransport }, false},
	{"GRD", func(f *Flight) string { return f.GroundDuty }, false},
	{"ACT", func(f *Flight) string { return f.ActualCode }, false},
	{"ACT_TIME", func(f *Flight) string { return f.ActualTime }, false},
}

// Validate checks every field against its column format and records a
// field validation diagnostic for each mismatch. Values are never changed.
// pos is the index of the row's first token.
func (f *Flight) Validate(pos int, l *diag.List) {
	for _, c := range flightChecks {
		v := c.value(f)
		if v == "" && !c.required {
			continue
		}
		if !patterns.ValidField(c.column, v) {
			l.Invalid(pos, c.column, v, patterns.FieldPattern(c.column))
		}
	}
}
