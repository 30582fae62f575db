package query

import "github.com/docquery-io/docquery/schema"

// TextMatchScore is the pseudo-field always accepted in sort
// expressions.
const TextMatchScore = "_text_match_score"

// ValidateSort checks a multi-key sort expression against the
// collection schema. Embedded _eval(...) clauses are deferred to
// ValidateEval. A nil return means the expression is valid.
func ValidateSort(expr string, col *schema.Collection, reg *schema.Registry) error {
	if col == nil {
		return schemaErrorf("collection schema is required")
	}
	tokens, err := scanSort(expr, col)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return syntaxErrorf("empty sort expression")
	}
	if tokens[0].Kind != TokIdent && tokens[0].Kind != TokEval {
		return syntaxErrorf("Invalid start token %s in sort expression", tokens[0])
	}

	for i, tok := range tokens {
		var next *Token
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}

		switch tok.Kind {
		case TokIdent:
			if err := checkSortField(tok, col); err != nil {
				return err
			}
			if err := expect(tok, next, false, TokConfig, TokMatch); err != nil {
				return err
			}
		case TokConfig:
			if err := checkSortConfig(tok); err != nil {
				return err
			}
			if err := expect(tok, next, false, TokMatch); err != nil {
				return err
			}
		case TokMatch:
			if err := expect(tok, next, false, TokDirection); err != nil {
				return err
			}
		case TokDirection:
			if err := expect(tok, next, true, TokComma); err != nil {
				return err
			}
		case TokComma:
			if err := expect(tok, next, false, TokIdent, TokEval); err != nil {
				return err
			}
		case TokEval:
			if err := ValidateEval(tok.Clause, col, reg); err != nil {
				return err
			}
			if err := expect(tok, next, false, TokMatch); err != nil {
				return err
			}
		default:
			return syntaxErrorf("unexpected token %s in sort expression", tok)
		}
	}
	return nil
}

func checkSortField(tok Token, col *schema.Collection) error {
	if tok.Text == TextMatchScore {
		return nil
	}
	f, ok := col.FieldByName(tok.Text)
	if !ok {
		return schemaErrorf("Unknown field '%s' in sort expression", tok.Text)
	}
	if !f.Sortable() {
		return schemaErrorf("%s is not a sortable field", tok.Text)
	}
	return nil
}

// checkSortConfig restricts per-field configuration to the
// missing_values placement switch.
func checkSortConfig(tok Token) error {
	if tok.Key != "missing_values" {
		return syntaxErrorf("unknown sort configuration key '%s'", tok.Key)
	}
	if tok.Value != "first" && tok.Value != "last" {
		return syntaxErrorf("missing_values must be 'first' or 'last', got '%s'", tok.Value)
	}
	return nil
}
