package trace

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StreamTracer writes events immediately to an io.Writer.
// Every stream opens with a header line naming its session id.
type StreamTracer struct {
	mu      sync.Mutex
	w       io.Writer
	level   Level
	format  Format
	session string
	start   time.Time
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	st := &StreamTracer{
		w:       w,
		level:   level,
		format:  format,
		session: uuid.NewString(),
		start:   time.Now(),
	}
	if format == FormatText {
		// трассировка не должна ронять компиляцию
		_, _ = fmt.Fprintf(w, "# zeron trace session %s level=%s\n", st.session, level) //nolint:errcheck
	}
	return st
}

// Session returns the id written in the stream header.
func (t *StreamTracer) Session() string { return t.session }

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format, t.session, t.start)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.Write(data) //nolint:errcheck
}

// Flush calls Flush on writers that buffer.
func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
