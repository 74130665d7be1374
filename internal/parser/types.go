package parser

import (
	"zeron/internal/diag"
	"zeron/internal/token"
	"zeron/internal/types"
)

// parseType разбирает аннотацию типа:
//
//	Type     = FnType | ["&"] Ident ["<" Type {"," Type} ">"] ["?"]
//	FnType   = "(" [Type {"," Type}] ")" "->" Type
func (p *Parser) parseType() (types.Type, bool) {
	if p.at(token.LParen) {
		return p.parseFnType()
	}

	mutable := false
	if _, ok := p.eat(token.Amp); ok {
		mutable = true
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectType, "Expect type name.")
	if !ok {
		return types.Infer(), false
	}
	t := types.Named(nameTok.Text)

	var args []types.Type
	generic := false
	for p.at(token.Lt) {
		p.advance()
		generic = true
		args = args[:0]
		for {
			arg, ok := p.parseType()
			if !ok {
				return types.Infer(), false
			}
			args = append(args, arg)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.Gt, diag.SynExpectType, "Expect '>' after type arguments."); !ok {
			return types.Infer(), false
		}
	}

	nullable := false
	if q, ok := p.eat(token.Question); ok {
		if t.Kind().IsPrimitive() {
			p.errAt(diag.SynNullablePrimitive, q.Span, "Primitive type '"+t.Name()+"' cannot be nullable.")
		}
		nullable = true
	}

	if generic {
		if t.Kind() != types.KindNominal {
			p.errAt(diag.SynExpectType, nameTok.Span, "Type '"+t.Name()+"' takes no type arguments.")
			return types.Infer(), false
		}
		t = types.Generic(t, args...)
	}
	if mutable {
		t = t.ToMutable()
	}
	if nullable {
		t = t.ToNullable()
	}
	return t, true
}

func (p *Parser) parseFnType() (types.Type, bool) {
	p.advance() // (
	var params []types.Type
	if !p.at(token.RParen) {
		for {
			pt, ok := p.parseType()
			if !ok {
				return types.Infer(), false
			}
			params = append(params, pt)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after parameter types."); !ok {
		return types.Infer(), false
	}
	if _, ok := p.expect(token.Arrow, diag.SynExpectType, "Expect '->' after ')'."); !ok {
		return types.Infer(), false
	}
	ret, ok := p.parseType()
	if !ok {
		return types.Infer(), false
	}
	return types.Lambda(ret, params...), true
}
