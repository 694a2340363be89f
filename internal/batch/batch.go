// Package batch parses many trip documents in parallel and collects one
// output record per document.
package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"trip_parser/internal/diag"
	"trip_parser/internal/logger"
	"trip_parser/internal/parser"
	"trip_parser/internal/trip"
)

// Output is the result for one document. Error is set when no trip could be
// built; Diagnostics then ends with the structural finding that stopped the
// parse.
type Output struct {
	Name        string            `json:"name" msgpack:"name"`
	Trip        *trip.Trip        `json:"trip,omitempty" msgpack:"trip,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Error       string            `json:"error,omitempty" msgpack:"error,omitempty"`
	Failed      bool              `json:"failed" msgpack:"failed"`
}

// Stats counts processed documents and the diagnostics they produced.
type Stats struct {
	Documents       int
	Parsed          int
	Failed          int
	Structural      int
	FieldValidation int
	Unrecognized    int
}

func (st Stats) String() string {
	return fmt.Sprintf("stats: documents=%d parsed=%d failed=%d diagnostics(structural=%d field=%d unrecognized=%d)",
		st.Documents, st.Parsed, st.Failed, st.Structural, st.FieldValidation, st.Unrecognized)
}

func (st *Stats) add(o Output) {
	st.Documents++
	if o.Trip != nil {
		st.Parsed++
	}
	if o.Failed {
		st.Failed++
	}
	for _, d := range o.Diagnostics {
		switch d.Kind {
		case diag.Structural:
			st.Structural++
		case diag.FieldValidation:
			st.FieldValidation++
		case diag.UnrecognizedToken:
			st.Unrecognized++
		}
	}
}

// Processor parses documents. The zero value is usable and runs one worker
// without logging.
type Processor struct {
	Workers int
	// Strict marks any document with diagnostics as failed.
	Strict bool
	Log    *logger.Logger
}

func (p *Processor) log() *logger.Logger {
	if p.Log == nil {
		return logger.Nop()
	}
	return p.Log
}

// Run parses every document with up to Workers goroutines. Outputs are in
// input order. A failed document does not stop the others; only a cancelled
// context does.
func (p *Processor) Run(ctx context.Context, docs []Document) ([]Output, Stats, error) {
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	out := make([]Output, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.Process(&docs[i])
			return nil
		})
	}
	// gctx is always cancelled once Wait returns; only the caller's ctx
	// tells whether the run was cut short.
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var st Stats
	if err != nil {
		return nil, st, err
	}
	for _, o := range out {
		st.add(o)
	}
	return out, st, nil
}

// Process parses a single document.
func (p *Processor) Process(d *Document) Output {
	log := p.log().Named("batch").WithDocument(d.Name)
	o := Output{Name: d.Name}

	toks, width, err := d.Stream()
	if err != nil {
		log.Error("unreadable document", logger.Error(err))
		o.Error = err.Error()
		o.Failed = true
		return o
	}

	res, err := parser.Parse(toks, width)
	if err != nil {
		var se *diag.StructuralError
		if errors.As(err, &se) {
			o.Diagnostics = append(o.Diagnostics, se.Diagnostic)
		}
		log.Error("parse failed", logger.Error(err), logger.Int("tokens", len(toks)))
		o.Error = err.Error()
		o.Failed = true
		return o
	}

	o.Trip = res.Trip
	o.Diagnostics = res.Diagnostics
	o.Trip.BuildID(d.Date)
	for _, dg := range o.Diagnostics {
		log.Warn(dg.Message,
			logger.String("kind", dg.Kind.String()),
			logger.Int("pos", dg.Pos),
			logger.String("token", dg.Token),
			logger.String("field", dg.Field))
	}
	o.Failed = p.Strict && len(o.Diagnostics) > 0

	log.Debug("parsed",
		logger.String("seq", o.Trip.Seq),
		logger.Int("crew", len(o.Trip.Crew)),
		logger.Int("duty_periods", len(o.Trip.DutyPeriods)),
		logger.Int("diagnostics", len(o.Diagnostics)))
	return o
}
