package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"zeron/internal/diag"
	"zeron/internal/eval"
	"zeron/internal/token"
)

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTokenize(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.zr", "let x = 1;")
	res, err := Tokenize(p, 8)
	if err != nil {
		t.Fatal(err)
	}
	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("tokens = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestCheckExitClasses(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"ok", "let x = 1; print(x);", ExitOK},
		{"syntax", "let = ;", ExitSyntax},
		{"lexical", "let x = 1 # 2;", ExitSyntax},
		{"resolution", "let x: Int = true;", ExitResolve},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, tt.name+".zr", tt.src)
			res, err := Check(context.Background(), p, CheckOptions{MaxDiagnostics: 16})
			if err != nil {
				t.Fatal(err)
			}
			if got := ExitCodeForBag(res.Bag); got != tt.want {
				t.Fatalf("exit = %d, want %d (%v)", got, tt.want, res.Bag.Items())
			}
		})
	}
}

func TestCheckMissingFile(t *testing.T) {
	if _, err := Check(context.Background(), filepath.Join(t.TempDir(), "nope.zr"), CheckOptions{}); err == nil {
		t.Fatal("expected an I/O error")
	}
}

func TestCheckLayout(t *testing.T) {
	p := writeFile(t, t.TempDir(), "l.zr", "fn f(a: Float) { let b = a; }")
	res, err := Check(context.Background(), p, CheckOptions{MaxDiagnostics: 4, Layout: true})
	if err != nil || !res.OK() {
		t.Fatalf("check: %v %v", err, res.Bag.Items())
	}
	if res.Layout == nil || len(res.Layout.Frames) != 2 {
		t.Fatalf("layout = %+v", res.Layout)
	}
	if len(res.Summary.Functions) != 1 || res.Summary.Functions[0].Name != "f" {
		t.Fatalf("summary = %+v", res.Summary)
	}
}

func TestDiskCacheHit(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, dir, "c.zr", "let g = 1;\nlet h: Int = \"s\";")
	opts := CheckOptions{MaxDiagnostics: 8, Cache: cache}

	first, err := Check(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || first.OK() {
		t.Fatalf("first run: cached=%v ok=%v", first.Cached, first.OK())
	}
	second, err := Check(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Parse != nil {
		t.Fatal("second run must come from the cache")
	}
	if got, want := diag.FormatShort(second.Bag.Items(), second.FileSet, false), diag.FormatShort(first.Bag.Items(), first.FileSet, false); got != want {
		t.Fatalf("cached diagnostics = %q, want %q", got, want)
	}

	// другое содержимое, другой ключ
	writeFile(t, dir, "c.zr", "let g = 2;")
	third, err := Check(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached || !third.OK() {
		t.Fatalf("third run: cached=%v ok=%v", third.Cached, third.OK())
	}
}

func TestDiskCacheRejectsUnknownSeverity(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, dir, "s.zr", "print(nope);")
	opts := CheckOptions{MaxDiagnostics: 8, Cache: cache}
	first, err := Check(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}

	key := cacheKey(first.File.Hash)
	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err != nil || !hit || len(payload.Diagnostics) == 0 {
		t.Fatalf("payload not stored: hit=%v err=%v", hit, err)
	}
	payload.Diagnostics[0].Severity = 9
	if err := cache.Put(key, &payload); err != nil {
		t.Fatal(err)
	}

	second, err := Check(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.Cached || second.Parse == nil {
		t.Fatal("payload with an unknown severity must be rechecked")
	}
	if got := second.Bag.Items()[0].Severity; got != diag.SevError {
		t.Fatalf("severity = %s", got)
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestCheckFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.zr", "let a = 1;"),
		writeFile(t, dir, "b.zr", "let b = nope;"),
		writeFile(t, dir, "c.zr", "fn c(): Int { return 3; }"),
	}
	sink := &recordSink{}
	results, err := CheckFiles(context.Background(), paths, CheckOptions{MaxDiagnostics: 8, Jobs: 2, Sink: sink})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d is for %s", i, r.Path)
		}
	}
	if !results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Fatal("only b.zr has an error")
	}
	done := 0
	for _, ev := range sink.events {
		if ev.Stage == StageResolve && (ev.Status == StatusDone || ev.Status == StatusError) {
			done++
		}
	}
	if done != len(paths) {
		t.Fatalf("final events = %d", done)
	}
}

func TestCheckFilesIOError(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeFile(t, dir, "ok.zr", "let a = 1;"), filepath.Join(dir, "missing.zr")}
	if _, err := CheckFiles(context.Background(), paths, CheckOptions{MaxDiagnostics: 4}); err == nil || !strings.Contains(err.Error(), "missing.zr") {
		t.Fatalf("got %v", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		src  string
		out  string
		exit int
	}{
		{"prints", "for (let i in 1..3) print(i * 2);", "2\n4\n6\n", ExitOK},
		{"runtime error", "let x = 1; x = 2;", "", ExitRuntime},
		{"resolution error", "print(nope);", "", ExitResolve},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".zr", tt.src)
			var out bytes.Buffer
			res, err := Run(context.Background(), p, RunOptions{
				Check:   CheckOptions{MaxDiagnostics: 8},
				Runtime: eval.BufferRuntime{Out: &out},
			})
			if err != nil {
				t.Fatal(err)
			}
			if got := res.ExitCode(); got != tt.exit {
				t.Fatalf("exit = %d, want %d", got, tt.exit)
			}
			if out.String() != tt.out {
				t.Fatalf("output = %q", out.String())
			}
		})
	}
}

func TestTimingsDiagnostic(t *testing.T) {
	p := writeFile(t, t.TempDir(), "t.zr", "let a = 1;")
	res, err := Check(context.Background(), p, CheckOptions{MaxDiagnostics: 4, Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() || res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.ObsTimings {
		t.Fatalf("bag = %+v", res.Bag.Items())
	}
	if len(res.Timings.Phases) == 0 {
		t.Fatal("no phases recorded")
	}
	d := res.Bag.Items()[0]
	if !strings.HasPrefix(d.Message, "check "+p+": ") {
		t.Fatalf("message = %q", d.Message)
	}
	note := decodeTimings(t, d)
	if note.Command != "check" || note.File != p || note.Slowest == "" {
		t.Fatalf("note = %+v", note)
	}
	if got := phaseNames(note); !slices.Equal(got, []string{"load", "parse", "resolve", "layout"}) {
		t.Fatalf("phases = %v", got)
	}
}

func TestRunTimingsIncludeExecution(t *testing.T) {
	p := writeFile(t, t.TempDir(), "r.zr", "print(1);")
	var out bytes.Buffer
	res, err := Run(context.Background(), p, RunOptions{
		Check:   CheckOptions{MaxDiagnostics: 4, Timings: true},
		Runtime: eval.BufferRuntime{Out: &out},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("want one timings diagnostic, got %+v", res.Bag.Items())
	}
	note := decodeTimings(t, res.Bag.Items()[0])
	if note.Command != "run" || !slices.Contains(phaseNames(note), "run") {
		t.Fatalf("note = %+v", note)
	}
	if out.String() != "1\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunTimingsOnResolutionError(t *testing.T) {
	p := writeFile(t, t.TempDir(), "e.zr", "print(nope);")
	res, err := Run(context.Background(), p, RunOptions{
		Check:   CheckOptions{MaxDiagnostics: 4, Timings: true},
		Runtime: eval.BufferRuntime{Out: &bytes.Buffer{}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Ran {
		t.Fatal("program with errors must not run")
	}
	var timings int
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			timings++
			if note := decodeTimings(t, d); slices.Contains(phaseNames(note), "run") {
				t.Fatalf("no run phase expected: %+v", note)
			}
		}
	}
	if timings != 1 {
		t.Fatalf("timings diagnostics = %d", timings)
	}
}

func decodeTimings(t *testing.T, d diag.Diagnostic) timingNote {
	t.Helper()
	if d.Code != diag.ObsTimings || len(d.Notes) != 1 {
		t.Fatalf("not a timings diagnostic: %+v", d)
	}
	var note timingNote
	if err := json.Unmarshal([]byte(d.Notes[0].Msg), &note); err != nil {
		t.Fatal(err)
	}
	return note
}

func phaseNames(note timingNote) []string {
	names := make([]string, len(note.Phases))
	for i, p := range note.Phases {
		names[i] = p.Name
	}
	return names
}
