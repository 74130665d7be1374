package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (tests, REPL, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// FileSet owns every file loaded during one driver invocation.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 4),
		index: make(map[string]FileID),
	}
}

// SetBaseDir sets the directory relative paths are printed against.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores already-normalized content and returns a fresh FileID.
// Re-adding a path creates a new version; GetLatest points at it.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	id := FileID(n)
	p := filepath.ToSlash(filepath.Clean(path))
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    p,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[p] = id
	return id
}

// Load reads a file from disk, strips a BOM, folds CRLF and applies NFC.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(content)
	return fs.Add(path, content, flags), nil
}

// AddVirtual normalizes and adds in-memory source.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

// Get returns the file for id. It panics on an unknown id.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// Len reports how many file versions the set holds.
func (fs *FileSet) Len() int { return len(fs.files) }

// GetLatest returns the latest file ID for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[filepath.ToSlash(filepath.Clean(path))]
	return id, ok
}

// Resolve converts a span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns the 1-based line without its newline.
func (f *File) GetLine(line uint32) string {
	if line == 0 {
		return ""
	}
	n := len(f.LineIdx)
	idx := int(line) - 1
	if idx > n {
		return ""
	}
	start := 0
	if idx > 0 {
		start = int(f.LineIdx[idx-1]) + 1
	}
	end := len(f.Content)
	if idx < n {
		end = int(f.LineIdx[idx])
	}
	if start > end || start > len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path: "absolute", "relative" (to baseDir), "basename"
// or anything else for the stored form.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if f.Flags&FileVirtual != 0 || baseDir == "" {
			return f.Path
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	}
	return f.Path
}

// Normalize prepares raw bytes for lexing.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
		flags |= FileHadBOM
	}
	if slices.Contains(content, '\r') {
		out := make([]byte, 0, len(content))
		for i := 0; i < len(content); i++ {
			if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
				continue
			}
			out = append(out, content[i])
		}
		if len(out) != len(content) {
			flags |= FileNormalizedCRLF
		}
		content = out
	}
	if !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	return content, flags
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) //nolint:gosec // bounded by Add
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: число переводов строки строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var start uint32
	if lo > 0 {
		start = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo) + 1, Col: off - start + 1} //nolint:gosec // lo <= len(lineIdx)
}
