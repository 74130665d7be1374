package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal integer literal.
	IntLit
	// FloatLit is a decimal literal with a fractional part.
	FloatLit
	// StringLit is a double-quoted string literal; Text keeps the quotes.
	StringLit

	KwAnd         // and
	KwBreak       // break
	KwClass       // class
	KwConstructor // constructor
	KwContract    // contract
	KwElse        // else
	KwFalse       // false
	KwFn          // fn
	KwFor         // for
	KwGet         // get
	KwIf          // if
	KwImplement   // implement
	KwIn          // in
	KwIs          // is
	KwLet         // let
	KwLoop        // loop
	KwMatch       // match
	KwMut         // mut
	KwNot         // not
	KwNull        // null
	KwOr          // or
	KwPrint       // print
	KwPrivate     // private
	KwPublic      // public
	KwReturn      // return
	KwSet         // set
	KwThen        // then
	KwThis        // this
	KwTrue        // true
	KwType        // type
	KwTypeof      // typeof
	KwUnit        // unit
	KwUntil       // until
	KwWhile       // while

	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Comma       // ,
	Semicolon   // ;
	Pipe        // |
	Amp         // &
	Dot         // .
	DotDot      // ..
	Colon       // :
	ColonColon  // ::
	Minus       // -
	MinusAssign // -=
	Arrow       // ->
	Plus        // +
	PlusAssign  // +=
	Slash       // /
	SlashAssign // /=
	Star        // *
	StarAssign  // *=
	Bang        // !
	BangEq      // !=
	Question    // ?
	QuestionDot // ?.
	Assign      // =
	EqEq        // ==
	Gt          // >
	GtEq        // >=
	Lt          // <
	LtEq        // <=

	kindCount
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	KwAnd:         "and",
	KwBreak:       "break",
	KwClass:       "class",
	KwConstructor: "constructor",
	KwContract:    "contract",
	KwElse:        "else",
	KwFalse:       "false",
	KwFn:          "fn",
	KwFor:         "for",
	KwGet:         "get",
	KwIf:          "if",
	KwImplement:   "implement",
	KwIn:          "in",
	KwIs:          "is",
	KwLet:         "let",
	KwLoop:        "loop",
	KwMatch:       "match",
	KwMut:         "mut",
	KwNot:         "not",
	KwNull:        "null",
	KwOr:          "or",
	KwPrint:       "print",
	KwPrivate:     "private",
	KwPublic:      "public",
	KwReturn:      "return",
	KwSet:         "set",
	KwThen:        "then",
	KwThis:        "this",
	KwTrue:        "true",
	KwType:        "type",
	KwTypeof:      "typeof",
	KwUnit:        "unit",
	KwUntil:       "until",
	KwWhile:       "while",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Comma:         ",",
	Semicolon:     ";",
	Pipe:          "|",
	Amp:           "&",
	Dot:           ".",
	DotDot:        "..",
	Colon:         ":",
	ColonColon:    "::",
	Minus:         "-",
	MinusAssign:   "-=",
	Arrow:         "->",
	Plus:          "+",
	PlusAssign:    "+=",
	Slash:         "/",
	SlashAssign:   "/=",
	Star:          "*",
	StarAssign:    "*=",
	Bang:          "!",
	BangEq:        "!=",
	Question:      "?",
	QuestionDot:   "?.",
	Assign:        "=",
	EqEq:          "==",
	Gt:            ">",
	GtEq:          ">=",
	Lt:            "<",
	LtEq:          "<=",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwAnd && k <= KwWhile }

// IsCompoundAssign reports whether k is one of += -= *= /=.
func (k Kind) IsCompoundAssign() bool {
	switch k {
	case PlusAssign, MinusAssign, StarAssign, SlashAssign:
		return true
	default:
		return false
	}
}

// BinaryOf maps a compound assignment to its arithmetic operator.
func (k Kind) BinaryOf() (Kind, bool) {
	switch k {
	case PlusAssign:
		return Plus, true
	case MinusAssign:
		return Minus, true
	case StarAssign:
		return Star, true
	case SlashAssign:
		return Slash, true
	default:
		return Invalid, false
	}
}

// IsComparison reports whether k yields a Boolean regardless of operand types.
func (k Kind) IsComparison() bool {
	switch k {
	case EqEq, BangEq, Gt, GtEq, Lt, LtEq:
		return true
	default:
		return false
	}
}
