package query

import (
	"strings"
	"unicode"

	"github.com/docquery-io/docquery/schema"
)

// scanner holds the cursor state for one tokenization pass. A fresh
// scanner is built per call; nothing is shared across calls.
type scanner struct {
	input []rune
	pos   int
	col   *schema.Collection
}

func newScanner(input string, col *schema.Collection) *scanner {
	return &scanner{input: []rune(input), col: col}
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

func (s *scanner) cur() rune { return s.input[s.pos] }

func (s *scanner) peek(off int) rune {
	p := s.pos + off
	if p < len(s.input) {
		return s.input[p]
	}
	return 0
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.input[s.pos]) {
		s.pos++
	}
}

func (s *scanner) hasPrefix(lit string) bool {
	for i, r := range lit {
		if s.peek(i) != r {
			return false
		}
	}
	return true
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '*' || ch == '-'
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// Multi-character operators are matched longest first so that e.g.
// ":>=" is never split into ":>" and "=".
var multiOps = []struct {
	lit  string
	kind TokenKind
}{
	{":<=", TokLessEq}, {":>=", TokGreaterEq}, {":!=", TokNotEquals},
	{":=", TokEquals}, {":<", TokLess}, {":>", TokGreater},
	{":[", TokOpenList}, {"&&", TokAnd}, {"||", TokOr}, {"..", TokSpread},
}

var singleOps = map[rune]TokenKind{
	':': TokMatch, '(': TokParenOpen, ')': TokParenClose,
	']': TokBracketClose, ',': TokComma, '<': TokRangeLT, '>': TokRangeGT,
}

func (s *scanner) scanOperator() (TokenKind, bool) {
	for _, op := range multiOps {
		if s.hasPrefix(op.lit) {
			s.pos += len(op.lit)
			return op.kind, true
		}
	}
	if k, ok := singleOps[s.cur()]; ok {
		s.pos++
		return k, true
	}
	return 0, false
}

// scanNumber consumes an optional leading '-', digits, and at most one
// '.' that is directly followed by a digit. The second dot of "1..5"
// is deliberately left for the spread operator.
func (s *scanner) scanNumber() Token {
	start := s.pos
	if s.cur() == '-' {
		s.pos++
	}
	for !s.eof() && isDigit(s.cur()) {
		s.pos++
	}
	if !s.eof() && s.cur() == '.' && isDigit(s.peek(1)) {
		s.pos++
		for !s.eof() && isDigit(s.cur()) {
			s.pos++
		}
	}
	return Token{Kind: TokNumber, Text: string(s.input[start:s.pos])}
}

func (s *scanner) scanIdentText() string {
	start := s.pos
	for !s.eof() && isIdentChar(s.cur()) {
		s.pos++
	}
	return string(s.input[start:s.pos])
}

// scanQuoted reads a backtick-delimited literal verbatim, any
// characters included. If the closing backtick is missing nothing is
// consumed and ok is false; the caller surfaces the stray backtick as
// a lexical error.
func (s *scanner) scanQuoted() (Token, bool) {
	for i := s.pos + 1; i < len(s.input); i++ {
		if s.input[i] == '`' {
			text := string(s.input[s.pos+1 : i])
			s.pos = i + 1
			return Token{Kind: TokString, Text: text}, true
		}
	}
	return Token{}, false
}

// scanParenClause consumes a parenthesized clause starting at '(',
// tracking nesting depth, and returns the raw text between the outer
// matching parentheses.
func (s *scanner) scanParenClause() (string, error) {
	s.pos++ // consume (
	depth := 1
	start := s.pos
	for !s.eof() {
		switch s.cur() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				clause := string(s.input[start:s.pos])
				s.pos++
				return clause, nil
			}
		}
		s.pos++
	}
	return "", syntaxErrorf("unbalanced parentheses")
}

// scanReference consumes a "$collection(clause)" join reference. The
// inner clause is captured raw and validated later against the target
// collection's schema.
func (s *scanner) scanReference() (Token, error) {
	s.pos++ // consume $
	name := s.scanIdentText()
	if name == "" {
		return Token{}, lexErrorf("Unknown token: $")
	}
	if s.eof() || s.cur() != '(' {
		return Token{}, syntaxErrorf("expected ( after join reference $%s", name)
	}
	clause, err := s.scanParenClause()
	if err != nil {
		return Token{}, syntaxErrorf("unbalanced parentheses in join reference $%s", name)
	}
	return Token{Kind: TokReference, Target: name, Clause: clause}, nil
}

// scanFilter tokenizes a filter expression. Identifiers naming a
// schema field become typed Identifier tokens; any other bare word is
// a string literal, since field-name-shaped values are legal.
func scanFilter(input string, col *schema.Collection) ([]Token, error) {
	s := newScanner(input, col)
	var tokens []Token
	for {
		s.skipSpace()
		if s.eof() {
			return tokens, nil
		}
		ch := s.cur()
		switch {
		case ch == '`':
			tok, ok := s.scanQuoted()
			if !ok {
				return nil, lexErrorf("Unknown token: %c", ch)
			}
			tokens = append(tokens, tok)
		case ch == '$':
			tok, err := s.scanReference()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			if kind, ok := s.scanOperator(); ok {
				tokens = append(tokens, Token{Kind: kind})
				continue
			}
			if isDigit(ch) || (ch == '-' && isDigit(s.peek(1))) {
				tokens = append(tokens, s.scanNumber())
				continue
			}
			if isIdentStart(ch) {
				name := s.scanIdentText()
				if f, ok := s.col.FieldByName(name); ok {
					tokens = append(tokens, Token{Kind: TokIdent, Text: name, FieldType: f.Type})
				} else {
					tokens = append(tokens, Token{Kind: TokString, Text: name})
				}
				continue
			}
			return nil, lexErrorf("Unknown token: %c", ch)
		}
	}
}

// scanSort tokenizes a sort expression: comma-separated sort keys with
// optional "(key: value)" configuration and embedded "_eval(...)"
// clauses. Field resolution happens in the sort validator.
func scanSort(input string, col *schema.Collection) ([]Token, error) {
	s := newScanner(input, col)
	var tokens []Token
	for {
		s.skipSpace()
		if s.eof() {
			return tokens, nil
		}
		ch := s.cur()
		switch {
		case ch == ':':
			s.pos++
			tokens = append(tokens, Token{Kind: TokMatch})
		case ch == ',':
			s.pos++
			tokens = append(tokens, Token{Kind: TokComma})
		case isIdentStart(ch):
			name := s.scanIdentText()
			switch {
			case name == "asc" || name == "desc":
				tokens = append(tokens, Token{Kind: TokDirection, Text: name})
			case name == "_eval" && !s.eof() && s.cur() == '(':
				clause, err := s.scanParenClause()
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, Token{Kind: TokEval, Clause: clause})
			case !s.eof() && s.cur() == '(':
				cfg, err := s.scanConfig()
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, Token{Kind: TokIdent, Text: name}, cfg)
			default:
				tokens = append(tokens, Token{Kind: TokIdent, Text: name})
			}
		default:
			return nil, lexErrorf("Unknown token: %c", ch)
		}
	}
}

// scanConfig consumes a "(key: value)" pair attached to a sort field.
func (s *scanner) scanConfig() (Token, error) {
	s.pos++ // consume (
	s.skipSpace()
	key := s.scanIdentText()
	s.skipSpace()
	if key == "" || s.eof() || s.cur() != ':' {
		return Token{}, syntaxErrorf("malformed sort field configuration")
	}
	s.pos++ // consume :
	s.skipSpace()
	val := s.scanIdentText()
	s.skipSpace()
	if val == "" || s.eof() || s.cur() != ')' {
		return Token{}, syntaxErrorf("malformed sort field configuration")
	}
	s.pos++ // consume )
	return Token{Kind: TokConfig, Key: key, Value: val}, nil
}

// scanEval tokenizes a scoring expression. Anything that does not
// start with '[' is a single bare filter clause; the bracketed form is
// a weighted list of parenthesized clauses.
func scanEval(input string, col *schema.Collection) ([]Token, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return []Token{{Kind: TokFilterClause, Clause: trimmed}}, nil
	}

	s := newScanner(input, col)
	var tokens []Token
	bracketDepth := 0
	for {
		s.skipSpace()
		if s.eof() {
			return tokens, nil
		}
		ch := s.cur()
		switch {
		case ch == '[':
			s.pos++
			bracketDepth++
			tokens = append(tokens, Token{Kind: TokBracketOpen})
		case ch == ']':
			s.pos++
			if bracketDepth > 0 {
				bracketDepth--
			}
			tokens = append(tokens, Token{Kind: TokBracketClose})
		case ch == '(':
			clause, err := s.scanParenClause()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{
				Kind: TokFilterClause, Clause: clause, InRange: bracketDepth > 0,
			})
		case ch == ':':
			s.pos++
			tokens = append(tokens, Token{Kind: TokMatch})
		case ch == ',':
			s.pos++
			tokens = append(tokens, Token{Kind: TokComma})
		case isDigit(ch) || (ch == '-' && isDigit(s.peek(1))):
			tokens = append(tokens, s.scanNumber())
		default:
			return nil, lexErrorf("Unknown token: %c", ch)
		}
	}
}
