package query

import "github.com/docquery-io/docquery/schema"

// ValidateEval checks a scoring expression: either a single bare
// filter clause, or a bracketed, comma-separated list of
// "(<filter>):<weight>" pairs. Each embedded filter is validated with
// ValidateFilter against the same schema; failures are wrapped as
// "[Error on filter]: ...". A nil return means the expression is
// valid.
func ValidateEval(expr string, col *schema.Collection, reg *schema.Registry) error {
	if col == nil {
		return schemaErrorf("collection schema is required")
	}
	tokens, err := scanEval(expr, col)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return syntaxErrorf("empty eval expression")
	}

	// Bare form: the whole expression is one filter clause.
	if tokens[0].Kind == TokFilterClause {
		if len(tokens) > 1 {
			return syntaxErrorf(
				"Invalid token %s after filter clause in eval expression", tokens[1],
			)
		}
		if err := ValidateFilter(tokens[0].Clause, col, reg); err != nil {
			return wrapFilter(err)
		}
		return nil
	}

	depth := 0
	for i, tok := range tokens {
		var next *Token
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}

		switch tok.Kind {
		case TokBracketOpen:
			depth++
			if err := expectEval(tok, next, depth, TokFilterClause); err != nil {
				return err
			}
		case TokBracketClose:
			if depth == 0 {
				return syntaxErrorf("unbalanced square brackets in eval expression")
			}
			depth--
			// Nothing may follow a closing bracket.
			if err := expect(tok, next, true); err != nil {
				return err
			}
		case TokFilterClause:
			if err := ValidateFilter(tok.Clause, col, reg); err != nil {
				return wrapFilter(err)
			}
			if err := expectEval(tok, next, depth, TokMatch); err != nil {
				return err
			}
		case TokMatch:
			if err := expectEval(tok, next, depth, TokNumber); err != nil {
				return err
			}
		case TokNumber:
			if err := expectEval(tok, next, depth, TokComma, TokBracketClose); err != nil {
				return err
			}
		case TokComma:
			if err := expectEval(tok, next, depth, TokFilterClause); err != nil {
				return err
			}
		default:
			return syntaxErrorf("unexpected token %s in eval expression", tok)
		}
	}
	if depth != 0 {
		return syntaxErrorf("unbalanced square brackets in eval expression")
	}
	return nil
}

// expectEval is expect with end-of-input inside an open bracket
// reported as a balance failure rather than a generic truncation.
func expectEval(tok Token, next *Token, depth int, allowed ...TokenKind) error {
	if next == nil && depth > 0 {
		return syntaxErrorf("unbalanced square brackets in eval expression")
	}
	return expect(tok, next, false, allowed...)
}
