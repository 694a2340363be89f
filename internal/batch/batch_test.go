package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"trip_parser/internal/config"
	"trip_parser/internal/diag"
	"trip_parser/internal/token"
)

// tripTokens lays out a one-flight trip with a glyph width of 5. fly is
// printed in the FLY column.
func tripTokens(fly string) []token.Token {
	row := func(y float64, cells ...any) []token.Token {
		var out []token.Token
		for i := 0; i+1 < len(cells); i += 2 {
			out = append(out, token.Token{Text: cells[i].(string), X: float64(cells[i+1].(int)), Y: y})
		}
		return out
	}

	var toks []token.Token
	toks = append(toks, row(790, "SEQ", 10, "12345", 30, "BASE", 100, "DFW", 125)...)
	toks = append(toks, row(780, "CAPT", 10, "J", 40, "DOE", 50, "EMP", 100, "NBR", 120, "9876", 140)...)
	toks = append(toks, row(770, "DT", 30, "EQ", 45, "FLT", 60, "STA", 85, "DEP", 105, "M", 130, "STA", 140,
		"ARR", 160, "AC", 185, "FLY", 200, "GTR", 235, "GRD", 265, "ACT", 295)...)
	toks = append(toks, row(760, "SKD", 10, "15", 30, "73", 45, "100", 60, "DFW", 85, "0900", 105,
		"ORD", 140, "1100", 160, "6Y", 185, fly, 200)...)
	toks = append(toks, row(750, "D/P", 10, "SKD", 20, "2.00", 30, "P/C", 40, "2.20", 50, "TL", 60, "2.20", 70)...)
	toks = append(toks, row(740, "SEQ", 10, "SKD", 20, "2.00", 30, "P/C", 40, "2.20", 50, "TL", 60, "2.20", 70,
		"TAFB", 80, "2.20", 90)...)
	return toks
}

func TestReadDocuments(t *testing.T) {
	clean, err := json.Marshal(Document{Name: "clean", Date: "240301", CharWidth: 5, Tokens: tripTokens("2.00")})
	if err != nil {
		t.Fatal(err)
	}
	input := strings.Join([]string{
		string(clean),
		"",
		"not json",
		`{"char_width":5,"tokens":[["SEQ",10,700],["1",30,700]]}`,
	}, "\n")

	docs, st, err := ReadDocuments(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDocuments() error = %v", err)
	}
	if st.Lines != 4 || st.Documents != 3 || st.Invalid != 1 {
		t.Errorf("stats = %+v, want 4 lines, 3 documents, 1 invalid", st)
	}

	names := []string{"clean", "line 3", "line 4"}
	for i, want := range names {
		if docs[i].Name != want {
			t.Errorf("docs[%d].Name = %q, want %q", i, docs[i].Name, want)
		}
	}
	if len(docs[0].Tokens) != len(tripTokens("2.00")) {
		t.Errorf("len(docs[0].Tokens) = %d, want %d", len(docs[0].Tokens), len(tripTokens("2.00")))
	}
	if _, _, err := docs[1].Stream(); err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("docs[1].Stream() error = %v, want the decode error for line 3", err)
	}
	if tok := docs[2].Tokens[1]; tok.Text != "1" || tok.X != 30 {
		t.Errorf("triple token = %+v, want 1 at x=30", tok)
	}
}

func TestDocument_Stream(t *testing.T) {
	items := []token.TextItem{
		{Str: "PAGE 1", Width: 30, Transform: []float64{1, 0, 0, 1, 10, 800}},
		{Str: "SEQ", Width: 15, Transform: []float64{1, 0, 0, 1, 10, 790}},
		{Str: "12345", Width: 25, Transform: []float64{1, 0, 0, 1, 30, 790}},
	}

	tests := []struct {
		name      string
		doc       Document
		wantToks  int
		wantWidth float64
		wantErr   bool
	}{
		{"tokens", Document{CharWidth: 4, Tokens: tripTokens("2.00")}, len(tripTokens("2.00")), 4, false},
		{"tokens without width", Document{Tokens: tripTokens("2.00")}, 0, 0, true},
		{"items", Document{Items: items}, 2, 5, false},
		{"items with explicit width", Document{CharWidth: 6, Items: items}, 2, 6, false},
		{"empty", Document{}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, width, err := tt.doc.Stream()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Stream() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(toks) != tt.wantToks {
				t.Errorf("len(tokens) = %d, want %d", len(toks), tt.wantToks)
			}
			if width != tt.wantWidth {
				t.Errorf("width = %v, want %v", width, tt.wantWidth)
			}
		})
	}
}

func testDocuments() []Document {
	return []Document{
		{Name: "clean", Date: "240301", CharWidth: 5, Tokens: tripTokens("2.00")},
		{Name: "flagged", CharWidth: 5, Tokens: tripTokens("0200")},
		{Name: "empty"},
		{Name: "broken", CharWidth: 5, Tokens: []token.Token{{Text: "XYZ", X: 10, Y: 700}}},
	}
}

func TestProcessor_Run(t *testing.T) {
	p := &Processor{Workers: 2}
	outs, st, err := p.Run(context.Background(), testDocuments())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outs) != 4 {
		t.Fatalf("len(outputs) = %d, want 4", len(outs))
	}

	tests := []struct {
		name      string
		wantTrip  bool
		wantDiags int
		wantFail  bool
	}{
		{"clean", true, 0, false},
		{"flagged", true, 1, false},
		{"empty", false, 0, true},
		{"broken", false, 1, true},
	}
	for i, tt := range tests {
		o := outs[i]
		if o.Name != tt.name {
			t.Errorf("outs[%d].Name = %q, want %q", i, o.Name, tt.name)
		}
		if (o.Trip != nil) != tt.wantTrip {
			t.Errorf("%s: has trip = %v, want %v", tt.name, o.Trip != nil, tt.wantTrip)
		}
		if len(o.Diagnostics) != tt.wantDiags {
			t.Errorf("%s: len(Diagnostics) = %d, want %d", tt.name, len(o.Diagnostics), tt.wantDiags)
		}
		if o.Failed != tt.wantFail {
			t.Errorf("%s: Failed = %v, want %v", tt.name, o.Failed, tt.wantFail)
		}
		if tt.wantFail && o.Error == "" {
			t.Errorf("%s: Error is empty, want a message", tt.name)
		}
	}

	if id := outs[0].Trip.ID; id != "24030115-12345" {
		t.Errorf("ID = %q, want %q", id, "24030115-12345")
	}
	if id := outs[1].Trip.ID; id != "" {
		t.Errorf("ID without date = %q, want empty", id)
	}
	if d := outs[3].Diagnostics[0]; d.Kind != diag.Structural {
		t.Errorf("broken diagnostic kind = %v, want %v", d.Kind, diag.Structural)
	}

	want := Stats{Documents: 4, Parsed: 2, Failed: 2, Structural: 1, FieldValidation: 1}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}
}

func TestProcessor_RunSingle(t *testing.T) {
	ctx := context.Background()
	docs := []Document{{Name: "clean", CharWidth: 5, Tokens: tripTokens("2.00")}}

	// The same Processor must be reusable across runs.
	p := &Processor{Workers: 1}
	for run := 0; run < 2; run++ {
		outs, st, err := p.Run(ctx, docs)
		if err != nil {
			t.Fatalf("run %d: Run() error = %v", run, err)
		}
		if len(outs) != 1 || outs[0].Trip == nil {
			t.Fatalf("run %d: outputs = %+v, want one parsed trip", run, outs)
		}
		if st.Parsed != 1 {
			t.Errorf("run %d: stats.Parsed = %d, want 1", run, st.Parsed)
		}
	}
}

func TestProcessor_Strict(t *testing.T) {
	p := &Processor{Strict: true}
	outs, st, err := p.Run(context.Background(), testDocuments()[:2])
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outs[0].Failed {
		t.Error("clean document failed in strict mode")
	}
	if !outs[1].Failed || outs[1].Trip == nil {
		t.Errorf("flagged document: Failed = %v, trip = %v, want failed with trip kept", outs[1].Failed, outs[1].Trip != nil)
	}
	if st.Failed != 1 {
		t.Errorf("stats.Failed = %d, want 1", st.Failed)
	}
}

func TestProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Processor{Workers: 4}
	if _, _, err := p.Run(ctx, testDocuments()); err == nil {
		t.Error("Run() error = nil, want context error")
	}
}

func TestWriteOutputs(t *testing.T) {
	outs, _, err := (&Processor{}).Run(context.Background(), testDocuments()[:3])
	if err != nil {
		t.Fatal(err)
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteOutputs(&buf, outs, config.FormatJSON, true); err != nil {
			t.Fatalf("WriteOutputs() error = %v", err)
		}
		var got []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not a JSON array: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		trip := got[0]["trip"].(map[string]any)
		if trip["seq"] != "12345" {
			t.Errorf("trip.seq = %v, want 12345", trip["seq"])
		}
		diags := got[1]["diagnostics"].([]any)
		if kind := diags[0].(map[string]any)["kind"]; kind != "field_validation" {
			t.Errorf("diagnostic kind = %v, want field_validation", kind)
		}
		if _, ok := got[2]["trip"]; ok {
			t.Error("failed document has a trip in JSON output")
		}
	})

	t.Run("msgpack", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteOutputs(&buf, outs, config.FormatMsgpack, false); err != nil {
			t.Fatalf("WriteOutputs() error = %v", err)
		}
		dec := msgpack.NewDecoder(&buf)
		for i, o := range outs {
			var got map[string]any
			if err := dec.Decode(&got); err != nil {
				t.Fatalf("decoding record %d: %v", i, err)
			}
			if got["name"] != o.Name {
				t.Errorf("record %d name = %v, want %q", i, got["name"], o.Name)
			}
		}
		var extra map[string]any
		if err := dec.Decode(&extra); err != io.EOF {
			t.Errorf("after last record: err = %v, want io.EOF", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := WriteOutputs(io.Discard, outs, "csv", false); err == nil {
			t.Error("WriteOutputs() error = nil, want error")
		}
	})
}

func TestZstdRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.jsonl"+ZstdSuffix)
	line, err := json.Marshal(Document{Name: "z", CharWidth: 5, Tokens: tripTokens("2.00")})
	if err != nil {
		t.Fatal(err)
	}

	w, err := CreateOutput(path)
	if err != nil {
		t.Fatalf("CreateOutput() error = %v", err)
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := OpenInput(path)
	if err != nil {
		t.Fatalf("OpenInput() error = %v", err)
	}
	defer r.Close()

	docs, _, err := ReadDocuments(r)
	if err != nil {
		t.Fatalf("ReadDocuments() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "z" {
		t.Errorf("docs = %+v, want the one document back", docs)
	}
}
