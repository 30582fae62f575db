package query

import "github.com/docquery-io/docquery/schema"

// TokenKind enumerates the lexical vocabulary shared by the filter,
// sort and eval grammars.
type TokenKind int

const (
	// TokParenOpen is "(".
	TokParenOpen TokenKind = iota
	// TokParenClose is ")".
	TokParenClose
	// TokBracketOpen is a bare "[" (eval grammar).
	TokBracketOpen
	// TokBracketClose is "]".
	TokBracketClose
	// TokEquals is ":=".
	TokEquals
	// TokNotEquals is ":!=".
	TokNotEquals
	// TokMatch is ":".
	TokMatch
	// TokLess is ":<".
	TokLess
	// TokGreater is ":>".
	TokGreater
	// TokLessEq is ":<=".
	TokLessEq
	// TokGreaterEq is ":>=".
	TokGreaterEq
	// TokOpenList is ":[", opening a value list or range closed by "]".
	TokOpenList
	// TokComma is ",".
	TokComma
	// TokSpread is "..", the range separator between two numbers.
	TokSpread
	// TokAnd is "&&".
	TokAnd
	// TokOr is "||".
	TokOr
	// TokRangeLT is a bare "<" used as an exclusive range bound.
	TokRangeLT
	// TokRangeGT is a bare ">" used as an exclusive range bound.
	TokRangeGT
	// TokIdent is an identifier resolved to a schema field.
	TokIdent
	// TokNumber is a numeric literal.
	TokNumber
	// TokString is a string literal (backtick-quoted or bare).
	TokString
	// TokReference is a "$collection(clause)" join reference
	// (filter grammar only).
	TokReference
	// TokFilterClause wraps an embedded filter clause
	// (eval grammar only).
	TokFilterClause
	// TokConfig is a per-field "(key: value)" configuration
	// (sort grammar only).
	TokConfig
	// TokDirection is "asc" or "desc" (sort grammar only).
	TokDirection
	// TokEval wraps an "_eval(...)" sub-expression (sort grammar only).
	TokEval
)

var tokenNames = map[TokenKind]string{
	TokParenOpen: "(", TokParenClose: ")",
	TokBracketOpen: "[", TokBracketClose: "]",
	TokEquals: ":=", TokNotEquals: ":!=", TokMatch: ":",
	TokLess: ":<", TokGreater: ":>", TokLessEq: ":<=", TokGreaterEq: ":>=",
	TokOpenList: ":[", TokComma: ",", TokSpread: "..",
	TokAnd: "&&", TokOr: "||", TokRangeLT: "<", TokRangeGT: ">",
}

// Token is one element of a scanned token stream. It is a tagged
// union: Kind selects which of the remaining fields are meaningful.
type Token struct {
	Kind TokenKind

	// Text is the identifier name, literal text or number text.
	Text string

	// FieldType is the resolved schema type (TokIdent only).
	FieldType schema.FieldType

	// Target and Clause carry a join reference (TokReference), the
	// embedded clause text (TokFilterClause, TokEval).
	Target string
	Clause string

	// InRange marks a TokFilterClause scanned inside a bracketed
	// weighted list.
	InRange bool

	// Key and Value carry a TokConfig pair.
	Key   string
	Value string
}

// String renders the token the way it appeared in the source, for use
// in diagnostics.
func (t Token) String() string {
	if name, ok := tokenNames[t.Kind]; ok {
		return name
	}
	switch t.Kind {
	case TokIdent, TokNumber, TokString, TokDirection:
		return t.Text
	case TokReference:
		return "$" + t.Target + "(" + t.Clause + ")"
	case TokFilterClause:
		return "(" + t.Clause + ")"
	case TokConfig:
		return "(" + t.Key + ": " + t.Value + ")"
	case TokEval:
		return "_eval(" + t.Clause + ")"
	default:
		return "?"
	}
}

// isComparison reports whether the kind is a field comparison
// operator, ":[" included.
func (k TokenKind) isComparison() bool {
	switch k {
	case TokEquals, TokNotEquals, TokMatch, TokLess, TokGreater,
		TokLessEq, TokGreaterEq, TokOpenList:
		return true
	default:
		return false
	}
}
