package eval

import (
	"io"
	"os"
	"time"
)

// Runtime is what a program sees of the outside world.
type Runtime interface {
	Stdout() io.Writer
	Now() time.Time
}

// DefaultRuntime uses the process stdout and the wall clock.
type DefaultRuntime struct{}

func (DefaultRuntime) Stdout() io.Writer { return os.Stdout }
func (DefaultRuntime) Now() time.Time    { return time.Now() }

// BufferRuntime captures output and freezes the clock.
type BufferRuntime struct {
	Out   io.Writer
	Clock time.Time
}

func (r BufferRuntime) Stdout() io.Writer { return r.Out }
func (r BufferRuntime) Now() time.Time    { return r.Clock }
