package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"zeron/internal/layout"
)

// SymbolEntry is a global or function in a check report.
type SymbolEntry struct {
	Name       string `json:"name" yaml:"name" msgpack:"name"`
	Descriptor string `json:"descriptor" yaml:"descriptor" msgpack:"descriptor"`
	Final      bool   `json:"final,omitempty" yaml:"final,omitempty" msgpack:"final,omitempty"`
}

type LocalEntry struct {
	Name       string `json:"name" yaml:"name" msgpack:"name"`
	Slot       int    `json:"slot" yaml:"slot" msgpack:"slot"`
	Slots      int    `json:"slots" yaml:"slots" msgpack:"slots"`
	Family     string `json:"family" yaml:"family" msgpack:"family"`
	Descriptor string `json:"descriptor" yaml:"descriptor" msgpack:"descriptor"`
	Final      bool   `json:"final,omitempty" yaml:"final,omitempty" msgpack:"final,omitempty"`
}

type FrameEntry struct {
	Name       string       `json:"name" yaml:"name" msgpack:"name"`
	Descriptor string       `json:"descriptor,omitempty" yaml:"descriptor,omitempty" msgpack:"descriptor,omitempty"`
	MaxLocals  int          `json:"max_locals" yaml:"max_locals" msgpack:"max_locals"`
	Locals     []LocalEntry `json:"locals,omitempty" yaml:"locals,omitempty" msgpack:"locals,omitempty"`
}

// FileReport is everything a check learned about one file.
type FileReport struct {
	Path        string           `json:"path" yaml:"path" msgpack:"path"`
	OK          bool             `json:"ok" yaml:"ok" msgpack:"ok"`
	Cached      bool             `json:"cached,omitempty" yaml:"cached,omitempty" msgpack:"cached,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Globals     []SymbolEntry    `json:"globals,omitempty" yaml:"globals,omitempty" msgpack:"globals,omitempty"`
	Functions   []SymbolEntry    `json:"functions,omitempty" yaml:"functions,omitempty" msgpack:"functions,omitempty"`
	Frames      []FrameEntry     `json:"frames,omitempty" yaml:"frames,omitempty" msgpack:"frames,omitempty"`
}

// Report is the root of json/yaml/msgpack check output.
type Report struct {
	Version string       `json:"version" yaml:"version" msgpack:"version"`
	Files   []FileReport `json:"files" yaml:"files" msgpack:"files"`
	Errors  int          `json:"errors" yaml:"errors" msgpack:"errors"`
}

// Symbols converts layout globals for a report.
func Symbols(gs []layout.Global) []SymbolEntry {
	if len(gs) == 0 {
		return nil
	}
	out := make([]SymbolEntry, len(gs))
	for i, g := range gs {
		out[i] = SymbolEntry{Name: g.Name, Descriptor: g.Descriptor, Final: g.Final}
	}
	return out
}

// Frames converts a layout program's frames for a report.
func Frames(prog *layout.Program) []FrameEntry {
	if prog == nil {
		return nil
	}
	out := make([]FrameEntry, 0, len(prog.Frames))
	for _, f := range prog.Frames {
		fe := FrameEntry{Name: f.Name, Descriptor: f.Descriptor, MaxLocals: f.MaxLocals}
		for _, l := range f.Locals {
			fe.Locals = append(fe.Locals, LocalEntry{
				Name:       l.Name,
				Slot:       l.Slot,
				Slots:      l.Slots,
				Family:     string(l.Family),
				Descriptor: l.Descriptor,
				Final:      l.Final,
			})
		}
		out = append(out, fe)
	}
	return out
}

func ReportJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func ReportYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func ReportMsgpack(w io.Writer, r *Report) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(r)
}

// FormatLayoutPretty prints a slot table per frame.
func FormatLayoutPretty(w io.Writer, prog *layout.Program) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "target %s\n", prog.Target)
	for _, g := range prog.Globals {
		fmt.Fprintf(tw, "global\t%s\t%s\t%s\n", g.Name, g.Descriptor, finalMark(g.Final))
	}
	for _, f := range prog.Functions {
		fmt.Fprintf(tw, "function\t%s\t%s\t\n", f.Name, f.Descriptor)
	}
	for _, f := range prog.Frames {
		fmt.Fprintf(tw, "\nframe %s", f.Name)
		if f.Descriptor != "" {
			fmt.Fprintf(tw, " %s", f.Descriptor)
		}
		fmt.Fprintf(tw, " (max_locals %d)\n", f.MaxLocals)
		for _, l := range f.Locals {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s/%s\t%s\n", l.Slot, l.Name, l.Descriptor, l.Family.Load(), l.Family.Store(), finalMark(l.Final))
		}
	}
	return tw.Flush()
}

func finalMark(final bool) string {
	if final {
		return "final"
	}
	return ""
}
