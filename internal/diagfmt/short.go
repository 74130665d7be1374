package diagfmt

import (
	"fmt"
	"io"

	"zeron/internal/diag"
	"zeron/internal/source"
)

// Short prints one line per diagnostic in the stable golden form.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	out := diag.FormatShort(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
