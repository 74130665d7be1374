package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"zeron/internal/diag"
	"zeron/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	path, gutter, caret   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID())
	if d.Code.Phase() == diag.PhaseObs || int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s: %s\n", sev, d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s: %s: %s\n", p.path.Sprint(loc), sev, d.Message)
	snippet(w, fs, d.Primary, opts, p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if int(n.Span.File) >= fs.Len() {
			fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		nloc := fmt.Sprintf("%s:%d:%d", formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col)
		fmt.Fprintf(w, "  %s: %s: %s\n", p.note.Sprint("note"), nloc, n.Msg)
		snippet(w, fs, n.Span, opts, p)
	}
}

// snippet печатает строки контекста и подчёркивание под первой строкой span.
func snippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	first := start.Line
	if opts.Context > 0 {
		back := uint32(opts.Context) //nolint:gosec // checked > 0
		if back >= first {
			first = 1
		} else {
			first -= back
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for line := first; line <= start.Line; line++ {
		text := expandTabs(file.GetLine(line))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), text)
	}

	lineText := file.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(lineText) {
		col = len(lineText)
	}
	pad := runewidth.StringWidth(expandTabs(lineText[:col]))

	// многострочный span подчёркиваем до конца первой строки
	stop := len(lineText)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(lineText))
	}
	width := 1
	if stop > col {
		width = max(runewidth.StringWidth(expandTabs(lineText[col:stop])), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
