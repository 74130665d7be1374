package diagfmt

import "zeron/internal/source"

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if int(id) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeAuto:
		return f.Path
	}
	return f.FormatPath(mode.String(), "")
}
