package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectSemicolon     Code = 2002
	SynExpectExpression    Code = 2003
	SynExpectIdentifier    Code = 2004
	SynExpectType          Code = 2005
	SynUnclosedParen       Code = 2006
	SynUnclosedBrace       Code = 2007
	SynForBadHeader        Code = 2008
	SynIfExprMissingThen   Code = 2009
	SynIfExprMissingElse   Code = 2010
	SynBreakOutsideLoop    Code = 2011
	SynReturnOutsideFn     Code = 2012
	SynInvalidAssignTarget Code = 2013
	SynTooManyParams       Code = 2014
	SynTooManyArgs         Code = 2015
	SynNullablePrimitive   Code = 2016
	SynCalleeNotName       Code = 2017
	SynRangeBound          Code = 2018
	SynReservedWord        Code = 2019
	SynNestedFn            Code = 2020

	// Семантические: один код на вид ошибки резолвера
	SemaInfo                       Code = 3000
	SemaDuplicateSymbol            Code = 3001
	SemaUnknownSymbol              Code = 3002
	SemaSelfReferenceInInitializer Code = 3003
	SemaMissingInitializer         Code = 3004
	SemaUninferredType             Code = 3005
	SemaTypeMismatch               Code = 3006
	SemaArityMismatch              Code = 3007
	SemaNotIterable                Code = 3008
	SemaNotBoolean                 Code = 3009
	SemaCalleeNotCallable          Code = 3010
	SemaInvalidState               Code = 3011

	// I/O
	IOLoadFileError Code = 4001

	// Runtime
	RunInfo            Code = 5000
	RunTypeError       Code = 5001
	RunUndefined       Code = 5002
	RunFinalReassign   Code = 5003
	RunDivisionByZero  Code = 5004
	RunArityMismatch   Code = 5005
	RunNotCallable     Code = 5006
	RunNotIterable     Code = 5007
	RunUninitialized   Code = 5008
	RunStackOverflow   Code = 5009
	RunIntegerOverflow Code = 5010

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                    "Unknown error",
	LexInfo:                        "Lexical information",
	LexUnknownChar:                 "Unknown character",
	LexUnterminatedString:          "Unterminated string literal",
	LexUnterminatedBlockComment:    "Unterminated block comment",
	LexBadNumber:                   "Invalid number literal",
	SynInfo:                        "Syntax information",
	SynUnexpectedToken:             "Unexpected token",
	SynExpectSemicolon:             "Missing semicolon",
	SynExpectExpression:            "Expected expression",
	SynExpectIdentifier:            "Expected identifier",
	SynExpectType:                  "Expected type",
	SynUnclosedParen:               "Unclosed parenthesis",
	SynUnclosedBrace:               "Unclosed brace",
	SynForBadHeader:                "Malformed for header",
	SynIfExprMissingThen:           "If expression without 'then'",
	SynIfExprMissingElse:           "If expression without 'else'",
	SynBreakOutsideLoop:            "Break outside of a loop",
	SynReturnOutsideFn:             "Return outside of a function",
	SynInvalidAssignTarget:         "Invalid assignment target",
	SynTooManyParams:               "Too many parameters",
	SynTooManyArgs:                 "Too many arguments",
	SynNullablePrimitive:           "Primitive types cannot be nullable",
	SynCalleeNotName:               "Callee must be a name",
	SynRangeBound:                  "Range bound must be an integer literal",
	SynReservedWord:                "Reserved word",
	SynNestedFn:                    "Function declared inside a block",
	SemaInfo:                       "Semantic information",
	SemaDuplicateSymbol:            "Duplicate symbol",
	SemaUnknownSymbol:              "Unknown symbol",
	SemaSelfReferenceInInitializer: "Self reference in initializer",
	SemaMissingInitializer:         "Missing initializer",
	SemaUninferredType:             "Uninferred type",
	SemaTypeMismatch:               "Type mismatch",
	SemaArityMismatch:              "Arity mismatch",
	SemaNotIterable:                "Not iterable",
	SemaNotBoolean:                 "Not a boolean",
	SemaCalleeNotCallable:          "Callee not callable",
	SemaInvalidState:               "Invalid resolver state",
	IOLoadFileError:                "I/O load file error",
	RunInfo:                        "Runtime information",
	RunTypeError:                   "Invalid operands",
	RunUndefined:                   "Undefined variable",
	RunFinalReassign:               "Final reassignment",
	RunDivisionByZero:              "Division by zero",
	RunArityMismatch:               "Wrong number of arguments",
	RunNotCallable:                 "Callee must be a function",
	RunNotIterable:                 "Only ranges can be iterated",
	RunUninitialized:               "Uninitialized variable",
	RunStackOverflow:               "Stack overflow",
	RunIntegerOverflow:             "Integer overflow",
	ObsInfo:                        "Observability information",
	ObsTimings:                     "Pipeline timings",
}

// ID returns the stable short identifier, e.g. SEM3006.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Phase classifies a code by the pipeline stage that produced it.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseLex
	PhaseSyntax
	PhaseSema
	PhaseIO
	PhaseRuntime
	PhaseObs
)

func (c Code) Phase() Phase {
	switch {
	case c >= 1000 && c < 2000:
		return PhaseLex
	case c >= 2000 && c < 3000:
		return PhaseSyntax
	case c >= 3000 && c < 4000:
		return PhaseSema
	case c >= 4000 && c < 5000:
		return PhaseIO
	case c >= 5000 && c < 6000:
		return PhaseRuntime
	case c >= 6000 && c < 7000:
		return PhaseObs
	}
	return PhaseUnknown
}
