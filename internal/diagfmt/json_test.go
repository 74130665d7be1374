package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"zeron/internal/diag"
	"zeron/internal/layout"
	"zeron/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("dir/test.zr", []byte("fn f() {\n  let x = \"unterminated\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 19, End: 32},
		"Unterminated string literal",
	).WithNote(source.Span{File: fileID, Start: 0, End: 2}, "inside this function"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Errorf("got %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "test.zr" || d.Location.StartLine != 2 || d.Location.StartCol != 11 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 1 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONOptions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.zr", []byte("a; b; c;"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.SemaUnknownSymbol, source.Span{File: fileID, Start: i * 3, End: i*3 + 1}, "unknown").
			WithNote(source.Span{File: fileID}, "n"))
	}

	tests := []struct {
		name      string
		opts      JSONOpts
		count     int
		positions bool
		notes     bool
	}{
		{"defaults", JSONOpts{}, 3, false, false},
		{"max", JSONOpts{Max: 2}, 2, false, false},
		{"positions and notes", JSONOpts{IncludePositions: true, IncludeNotes: true}, 3, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := BuildDiagnostics(bag, fs, tt.opts)
			if len(ds) != tt.count {
				t.Fatalf("count = %d", len(ds))
			}
			if got := ds[0].Location.StartLine != 0; got != tt.positions {
				t.Errorf("positions = %v", got)
			}
			if got := len(ds[0].Notes) > 0; got != tt.notes {
				t.Errorf("notes = %v", got)
			}
		})
	}
}

func sampleReport() *Report {
	prog := &layout.Program{
		Target:  "jvm",
		Globals: []layout.Global{{Name: "x", Descriptor: ":Int", Final: true}},
		Frames: []layout.Frame{{
			Name:       "f",
			Descriptor: "$ 1 :Float :Unit",
			MaxLocals:  2,
			Locals:     []layout.Local{{Name: "a", Slot: 0, Slots: 2, Family: layout.FamilyDouble, Descriptor: ":Float"}},
		}},
	}
	return &Report{
		Version: "test",
		Files: []FileReport{{
			Path:    "main.zr",
			OK:      true,
			Globals: Symbols(prog.Globals),
			Frames:  Frames(prog),
		}},
	}
}

func TestReportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := ReportYAML(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"path: main.zr", "max_locals: 2", "family: d"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}
	var back Report
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Files[0].Frames[0].Locals[0].Slots != 2 {
		t.Fatalf("decoded = %+v", back)
	}
}

func TestReportMsgpack(t *testing.T) {
	var buf bytes.Buffer
	if err := ReportMsgpack(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	var back Report
	if err := msgpack.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Files[0].Globals[0].Name != "x" || !back.Files[0].Globals[0].Final {
		t.Fatalf("decoded = %+v", back)
	}
}

func TestFormatLayoutPretty(t *testing.T) {
	prog := &layout.Program{
		Target: "jvm",
		Frames: []layout.Frame{{
			Name:      "f",
			MaxLocals: 3,
			Locals: []layout.Local{
				{Name: "a", Slot: 0, Slots: 2, Family: layout.FamilyDouble, Descriptor: ":Float"},
				{Name: "b", Slot: 2, Slots: 1, Family: layout.FamilyInt, Descriptor: ":Int", Final: true},
			},
		}},
	}
	var buf bytes.Buffer
	if err := FormatLayoutPretty(&buf, prog); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"frame f (max_locals 3)", "dload/dstore", "iload/istore", "final"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
