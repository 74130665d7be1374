package eval

import (
	"fmt"
	"strings"

	"zeron/internal/diag"
	"zeron/internal/source"
)

// BacktraceFrame is one active call when a runtime error was raised.
type BacktraceFrame struct {
	FuncName string
	Span     source.Span // место вызова
}

// RuntimeError aborts a run. Code is in the diag Run range.
type RuntimeError struct {
	Code      diag.Code
	Message   string
	Span      source.Span
	Backtrace []BacktraceFrame // сверху вниз
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// FormatWithFiles renders the message, its location and the backtrace.
func (e *RuntimeError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n[line %d]\n", e.Message, line(e.Span, files))
	if len(e.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, fr := range e.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, fr.FuncName, formatSpan(fr.Span, files))
		}
	}
	return sb.String()
}

func line(span source.Span, files *source.FileSet) uint32 {
	if files == nil || int(span.File) >= files.Len() {
		return 0
	}
	start, _ := files.Resolve(span)
	return start.Line
}

func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || int(span.File) >= files.Len() {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", files.Get(span.File).Path, start.Line, start.Col)
}

func (in *Interpreter) fail(code diag.Code, span source.Span, format string, args ...any) *RuntimeError {
	e := &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
	e.Backtrace = make([]BacktraceFrame, len(in.stack))
	for i := range in.stack {
		e.Backtrace[i] = in.stack[len(in.stack)-1-i]
	}
	return e
}
