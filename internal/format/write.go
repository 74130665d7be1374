package format

import "bytes"

// Options control indentation.
type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

// Writer accumulates formatted output and tracks indentation.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new formatting writer.
func NewWriter(sizeHint int, opt Options) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		buf:         make([]byte, 0, sizeHint),
		atLineStart: true,
	}
}

// Bytes returns the output with exactly one trailing newline.
func (w *Writer) Bytes() []byte {
	out := bytes.TrimRight(w.buf, " \t\n")
	if len(out) == 0 {
		return []byte{}
	}
	return append(out, '\n')
}

// Empty reports whether nothing has been written yet.
func (w *Writer) Empty() bool { return len(w.buf) == 0 }

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		w.buf = append(w.buf, bytes.Repeat([]byte{'\t'}, w.indentLevel)...)
	} else {
		w.buf = append(w.buf, bytes.Repeat([]byte{' '}, w.indentLevel*w.opt.IndentWidth)...)
	}
	w.atLineStart = false
}

// WriteString writes s after the pending indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
}

// Space writes a single space unless the line is empty or already ends
// with one.
func (w *Writer) Space() {
	if w.atLineStart || len(w.buf) == 0 || w.buf[len(w.buf)-1] == ' ' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the current line; blank adds one empty line after it.
func (w *Writer) Newline(blank bool) {
	if len(w.buf) == 0 {
		return
	}
	w.buf = bytes.TrimRight(w.buf, " ")
	if !w.atLineStart {
		w.buf = append(w.buf, '\n')
	}
	if blank && !bytes.HasSuffix(w.buf, []byte("\n\n")) {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// SetIndent sets the level used for the next line.
func (w *Writer) SetIndent(level int) {
	w.indentLevel = max(level, 0)
}
