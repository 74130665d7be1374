package driver

import (
	"context"

	"fortio.org/safecast"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/lexer"
	"zeron/internal/parser"
	"zeron/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse loads and parses one file. Syntax errors are in Bag, not in the
// returned error.
func Parse(ctx context.Context, filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fileID, maxDiagnostics)
}

// ParseSource parses in-memory text under a virtual name.
func ParseSource(ctx context.Context, name string, src []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseLoaded(ctx, fs, fs.AddVirtual(name, src), maxDiagnostics)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	opts := parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrors,
	}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	result := parser.ParseFile(ctx, fs, lx, builder, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
