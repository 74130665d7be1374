package format

import (
	"errors"
	"fmt"

	"zeron/internal/diag"
	"zeron/internal/lexer"
	"zeron/internal/source"
	"zeron/internal/token"
)

// ErrLex is returned for sources that do not lex cleanly.
var ErrLex = errors.New("format: source has lexical errors")

// Source formats sf. Callers are expected to reject files with syntax
// errors first; lexical errors are checked here.
func Source(sf *source.File, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	toks, err := lex(sf)
	if err != nil {
		return nil, err
	}
	w := NewWriter(len(sf.Content), opt)
	content := sf.Content
	depth := 0
	var prev token.Token
	prevUnary := false
	var prevEnd uint32

	for i, tok := range toks {
		comments, linesAfter := splitTrivia(content[prevEnd:tok.Span.Start])
		w.SetIndent(depth)
		s := sepNone
		if i > 0 {
			s = between(prev, tok, tok.Span.Start > prevEnd, prevUnary)
		}
		mustBreak := false
		for _, c := range comments {
			switch {
			case w.Empty():
			case c.linesBefore > 0 || mustBreak:
				w.Newline(c.linesBefore > 1)
			default:
				w.Space()
			}
			w.WriteString(c.text)
			mustBreak = c.line
		}

		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.RBrace {
			depth--
			w.SetIndent(depth)
		}
		switch {
		case w.Empty():
		case s == sepNewline, mustBreak, len(comments) > 0 && linesAfter > 0:
			w.Newline(linesAfter > 1 && s == sepNewline)
		case s == sepSpace, len(comments) > 0:
			w.Space()
		}
		w.WriteString(string(content[tok.Span.Start:tok.Span.End]))

		if tok.Kind == token.LBrace {
			depth++
		}
		prevUnary = (tok.Kind == token.Minus || tok.Kind == token.Bang) && (i == 0 || !endsOperand(prev))
		prev = tok
		prevEnd = tok.Span.End
	}
	return w.Bytes(), nil
}

func lex(sf *source.File) ([]token.Token, error) {
	bag := diag.NewBag(1)
	toks := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()
	if bag.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrLex, bag.Items()[0].Message)
	}
	return toks, nil
}

// CheckRoundTrip formats sf and verifies that the token stream is
// unchanged and that a second pass is a no-op.
func CheckRoundTrip(sf *source.File, opt Options) error {
	once, err := Source(sf, opt)
	if err != nil {
		return err
	}
	fs := source.NewFileSet()
	sf2 := fs.Get(fs.AddVirtual(sf.Path, once))
	before, err := lex(sf)
	if err != nil {
		return err
	}
	after, err := lex(sf2)
	if err != nil {
		return fmt.Errorf("fmt-check: formatted output does not lex: %w", err)
	}
	if len(before) != len(after) {
		return fmt.Errorf("fmt-check: token count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Kind != after[i].Kind || before[i].Text != after[i].Text {
			return fmt.Errorf("fmt-check: token %d changed: %s -> %s", i, before[i].Describe(), after[i].Describe())
		}
	}
	twice, err := Source(sf2, opt)
	if err != nil {
		return err
	}
	if string(twice) != string(once) {
		return errors.New("fmt-check: formatting is not idempotent")
	}
	return nil
}
