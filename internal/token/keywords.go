package token

var keywords = map[string]Kind{
	"and":         KwAnd,
	"break":       KwBreak,
	"class":       KwClass,
	"constructor": KwConstructor,
	"contract":    KwContract,
	"else":        KwElse,
	"false":       KwFalse,
	"fn":          KwFn,
	"for":         KwFor,
	"get":         KwGet,
	"if":          KwIf,
	"implement":   KwImplement,
	"in":          KwIn,
	"is":          KwIs,
	"let":         KwLet,
	"loop":        KwLoop,
	"match":       KwMatch,
	"mut":         KwMut,
	"not":         KwNot,
	"null":        KwNull,
	"or":          KwOr,
	"print":       KwPrint,
	"private":     KwPrivate,
	"public":      KwPublic,
	"return":      KwReturn,
	"set":         KwSet,
	"then":        KwThen,
	"this":        KwThis,
	"true":        KwTrue,
	"type":        KwType,
	"typeof":      KwTypeof,
	"unit":        KwUnit,
	"until":       KwUntil,
	"while":       KwWhile,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
