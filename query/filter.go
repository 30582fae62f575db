package query

import "github.com/docquery-io/docquery/schema"

// DefaultMaxJoinDepth bounds recursion through nested $collection(...)
// references. The depth is driven by the expression text, so a cap is
// needed to keep malicious input from exhausting the stack.
const DefaultMaxJoinDepth = 8

// ValidateFilter checks a filter expression against the collection
// schema. Join references are resolved through the registry, which may
// be nil when the expression contains none. A nil return means the
// expression is valid; otherwise the error is a *Error.
func ValidateFilter(expr string, col *schema.Collection, reg *schema.Registry) error {
	return ValidateFilterDepth(expr, col, reg, DefaultMaxJoinDepth)
}

// ValidateFilterDepth is ValidateFilter with an explicit cap on join
// reference nesting.
func ValidateFilterDepth(expr string, col *schema.Collection, reg *schema.Registry, maxJoinDepth int) error {
	if col == nil {
		return schemaErrorf("collection schema is required")
	}
	if maxJoinDepth <= 0 {
		maxJoinDepth = DefaultMaxJoinDepth
	}
	return validateFilter(expr, col, reg, 0, maxJoinDepth)
}

func validateFilter(expr string, col *schema.Collection, reg *schema.Registry, depth, maxDepth int) error {
	tokens, err := scanFilter(expr, col)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return syntaxErrorf("empty filter expression")
	}
	if err := checkFilterStart(tokens[0]); err != nil {
		return err
	}

	// Parentheses and :[ ... ] value lists each balance via one stack.
	var stack []TokenKind
	for i, tok := range tokens {
		var next *Token
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}

		switch tok.Kind {
		case TokParenOpen:
			stack = append(stack, TokParenOpen)
		case TokOpenList:
			stack = append(stack, TokOpenList)
		case TokParenClose:
			if len(stack) == 0 || stack[len(stack)-1] != TokParenOpen {
				return syntaxErrorf("unbalanced parentheses in filter expression")
			}
			stack = stack[:len(stack)-1]
		case TokBracketClose:
			if len(stack) == 0 || stack[len(stack)-1] != TokOpenList {
				return syntaxErrorf("unbalanced square brackets in filter expression")
			}
			stack = stack[:len(stack)-1]
		case TokReference:
			if err := checkReference(tok, col, reg, depth, maxDepth); err != nil {
				return err
			}
		}

		if err := checkFilterSuccessor(tok, next); err != nil {
			if next == nil && len(stack) > 0 {
				return balanceError(stack)
			}
			return err
		}
	}
	if len(stack) > 0 {
		return balanceError(stack)
	}
	return nil
}

func balanceError(stack []TokenKind) *Error {
	if stack[len(stack)-1] == TokOpenList {
		return syntaxErrorf("unbalanced square brackets in filter expression")
	}
	return syntaxErrorf("unbalanced parentheses in filter expression")
}

func checkFilterStart(tok Token) error {
	switch tok.Kind {
	case TokParenOpen, TokIdent, TokString, TokNumber, TokReference:
		return nil
	default:
		return syntaxErrorf("Invalid start token %s in filter expression", tok)
	}
}

// checkFilterSuccessor enforces the next-token compatibility table of
// the filter grammar.
func checkFilterSuccessor(tok Token, next *Token) error {
	switch tok.Kind {
	case TokParenOpen:
		return expect(tok, next, false, TokParenOpen, TokIdent)
	case TokParenClose, TokBracketClose:
		return expect(tok, next, true, TokAnd, TokOr, TokParenClose)
	case TokIdent:
		return checkIdentSuccessor(tok, next)
	case TokEquals, TokNotEquals, TokMatch, TokLess, TokGreater, TokLessEq, TokGreaterEq:
		return expect(tok, next, false, TokNumber, TokString)
	case TokOpenList:
		return expect(tok, next, false, TokNumber, TokString, TokRangeLT, TokRangeGT)
	case TokRangeLT, TokRangeGT, TokSpread:
		return expect(tok, next, false, TokNumber)
	case TokComma:
		return expect(tok, next, false, TokNumber, TokString)
	case TokAnd, TokOr:
		return expect(tok, next, false, TokParenOpen, TokIdent, TokReference)
	case TokNumber:
		return expect(tok, next, true, TokParenClose, TokAnd, TokOr, TokComma, TokBracketClose, TokSpread)
	case TokString:
		if next != nil && next.Kind.isComparison() {
			// The bare word sat in field position but is not a field.
			return schemaErrorf("Unknown field '%s' in filter expression", tok.Text)
		}
		return expect(tok, next, true, TokParenClose, TokAnd, TokOr, TokComma, TokBracketClose)
	case TokReference:
		return expect(tok, next, true, TokAnd, TokOr, TokParenClose)
	default:
		return syntaxErrorf("unexpected token %s in filter expression", tok)
	}
}

func checkIdentSuccessor(tok Token, next *Token) error {
	ops, filterable := opsForType(tok.FieldType)
	if !filterable {
		return schemaErrorf(
			"field '%s' of type %s cannot be used in a filter expression",
			tok.Text, tok.FieldType,
		)
	}
	if next == nil {
		return syntaxErrorf("unexpected end of expression after %s", tok)
	}
	for _, k := range ops {
		if next.Kind == k {
			return nil
		}
	}
	if next.Kind.isComparison() {
		return schemaErrorf(
			"field '%s' of type %s does not support operator %s",
			tok.Text, tok.FieldType, *next,
		)
	}
	return syntaxErrorf("Invalid token %s after %s", *next, tok)
}

func expect(tok Token, next *Token, eofOK bool, allowed ...TokenKind) error {
	if next == nil {
		if eofOK {
			return nil
		}
		return syntaxErrorf("unexpected end of expression after %s", tok)
	}
	for _, k := range allowed {
		if next.Kind == k {
			return nil
		}
	}
	return syntaxErrorf("Invalid token %s after %s", *next, tok)
}

// opsForType maps a field type to the comparison operators that may
// follow an identifier of that type. The second result is false for
// types that cannot appear in a filter at all.
func opsForType(ft schema.FieldType) ([]TokenKind, bool) {
	switch ft {
	case schema.TypeString, schema.TypeStringStar:
		return []TokenKind{TokEquals, TokMatch, TokNotEquals, TokOpenList}, true
	case schema.TypeInt32, schema.TypeInt64, schema.TypeFloat:
		return []TokenKind{
			TokOpenList, TokLess, TokGreater, TokEquals,
			TokGreaterEq, TokLessEq, TokNotEquals,
		}, true
	case schema.TypeBool:
		return []TokenKind{TokEquals, TokNotEquals}, true
	case schema.TypeStringArray, schema.TypeInt32Array, schema.TypeInt64Array,
		schema.TypeFloatArray, schema.TypeGeopointArray:
		return []TokenKind{TokLess, TokGreater, TokEquals}, true
	case schema.TypeBoolArray:
		return []TokenKind{TokEquals}, true
	case schema.TypeAuto:
		return []TokenKind{
			TokEquals, TokNotEquals, TokMatch, TokLess, TokGreater,
			TokLessEq, TokGreaterEq, TokOpenList,
		}, true
	default:
		// geopoint, object, object[], image
		return nil, false
	}
}

// checkReference runs the semantic join checks: the current collection
// must be registered, the target must be registered and must declare a
// field referencing the current collection, and the inner clause must
// itself be a valid filter against the target schema.
func checkReference(tok Token, col *schema.Collection, reg *schema.Registry, depth, maxDepth int) error {
	if depth+1 > maxDepth {
		return joinErrorf("join references nested too deeply (max %d)", maxDepth)
	}
	if reg == nil || !reg.Has(col.Name) {
		return joinErrorf(
			"collection '%s' is not registered, cannot validate join on '%s'",
			col.Name, tok.Target,
		)
	}
	target, ok := reg.Lookup(tok.Target)
	if !ok {
		return joinErrorf("joined collection '%s' is not registered", tok.Target)
	}
	if !reg.References(tok.Target, col.Name) {
		return joinErrorf("Collection '%s' is not referenced in '%s'", tok.Target, col.Name)
	}
	if err := validateFilter(tok.Clause, target, reg, depth+1, maxDepth); err != nil {
		return wrapJoin(tok.Target, err)
	}
	return nil
}
