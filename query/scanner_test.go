package query

import (
	"testing"

	"github.com/docquery-io/docquery/schema"
)

func kinds(tokens []Token) []TokenKind {
	ks := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		ks[i] = t.Kind
	}
	return ks
}

func wantKinds(t *testing.T, tokens []Token, want ...TokenKind) {
	t.Helper()
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanFilter_Comparison(t *testing.T) {
	tokens, err := scanFilter("(age := 20) && name:[`John`, `Doe`]", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens,
		TokParenOpen, TokIdent, TokEquals, TokNumber, TokParenClose,
		TokAnd, TokIdent, TokOpenList, TokString, TokComma, TokString,
		TokBracketClose,
	)
	if tokens[1].FieldType != schema.TypeInt32 {
		t.Errorf("age type = %s, want int32", tokens[1].FieldType)
	}
	if tokens[8].Text != "John" || tokens[10].Text != "Doe" {
		t.Errorf("literals = %q, %q", tokens[8].Text, tokens[10].Text)
	}
}

func TestScanFilter_LongestOperatorFirst(t *testing.T) {
	tokens, err := scanFilter("age:>=20", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens, TokIdent, TokGreaterEq, TokNumber)
}

func TestScanFilter_BareWordIsStringLiteral(t *testing.T) {
	tokens, err := scanFilter("name:=John", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens, TokIdent, TokEquals, TokString)
	if tokens[2].Text != "John" {
		t.Errorf("literal = %q", tokens[2].Text)
	}
}

func TestScanFilter_Numbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
		texts []string
	}{
		{"integer", "age:=42", []TokenKind{TokIdent, TokEquals, TokNumber}, []string{"age", "", "42"}},
		{"negative", "age:=-7", []TokenKind{TokIdent, TokEquals, TokNumber}, []string{"age", "", "-7"}},
		{"decimal", "score:=1.5", []TokenKind{TokIdent, TokEquals, TokNumber}, []string{"score", "", "1.5"}},
		{"range keeps spread", "age:[0..20]", []TokenKind{TokIdent, TokOpenList, TokNumber, TokSpread, TokNumber, TokBracketClose}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := scanFilter(tt.input, usersCollection())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantKinds(t, tokens, tt.want...)
			for i, text := range tt.texts {
				if text != "" && tokens[i].Text != text {
					t.Errorf("token %d text = %q, want %q", i, tokens[i].Text, text)
				}
			}
		})
	}
}

func TestScanFilter_SecondDotNotConsumed(t *testing.T) {
	// "1.5.2" lexes 1.5, then "." is no known token.
	_, err := scanFilter("age:=1.5.2", usersCollection())
	wantKind(t, err, KindLex)
	wantMessage(t, err, "Unknown token: .")
}

func TestScanFilter_BacktickVerbatim(t *testing.T) {
	tokens, err := scanFilter("name:=`a :) b`", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens, TokIdent, TokEquals, TokString)
	if tokens[2].Text != "a :) b" {
		t.Errorf("literal = %q", tokens[2].Text)
	}
}

func TestScanFilter_UnmatchedBacktick(t *testing.T) {
	_, err := scanFilter("name:=`John", usersCollection())
	wantKind(t, err, KindLex)
	wantMessage(t, err, "Unknown token: `")
}

func TestScanFilter_UnknownToken(t *testing.T) {
	_, err := scanFilter("age != 20", usersCollection())
	wantKind(t, err, KindLex)
	wantMessage(t, err, "Unknown token: !")
}

func TestScanFilter_Reference(t *testing.T) {
	tokens, err := scanFilter("$posts(author:=*)", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens, TokReference)
	if tokens[0].Target != "posts" {
		t.Errorf("target = %q", tokens[0].Target)
	}
	if tokens[0].Clause != "author:=*" {
		t.Errorf("clause = %q", tokens[0].Clause)
	}
}

func TestScanFilter_NestedReferenceCapturedWhole(t *testing.T) {
	tokens, err := scanFilter("$posts(likes:>5 && $users(id:=1))", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens, TokReference)
	if tokens[0].Clause != "likes:>5 && $users(id:=1)" {
		t.Errorf("clause = %q", tokens[0].Clause)
	}
}

func TestScanFilter_ReferenceUnbalanced(t *testing.T) {
	_, err := scanFilter("$posts(author:=x", usersCollection())
	wantKind(t, err, KindSyntax)
	wantMessage(t, err, "unbalanced parentheses")
}

func TestScanSort_FieldConfigAndEval(t *testing.T) {
	tokens, err := scanSort(
		"_eval([(age:>=20):20]):desc, age(missing_values: last):asc", usersCollection(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens,
		TokEval, TokMatch, TokDirection, TokComma,
		TokIdent, TokConfig, TokMatch, TokDirection,
	)
	if tokens[0].Clause != "[(age:>=20):20]" {
		t.Errorf("eval clause = %q", tokens[0].Clause)
	}
	if tokens[5].Key != "missing_values" || tokens[5].Value != "last" {
		t.Errorf("config = %q:%q", tokens[5].Key, tokens[5].Value)
	}
	if tokens[2].Text != "desc" || tokens[7].Text != "asc" {
		t.Errorf("directions = %q, %q", tokens[2].Text, tokens[7].Text)
	}
}

func TestScanSort_MalformedConfig(t *testing.T) {
	_, err := scanSort("age(missing_values last):asc", usersCollection())
	wantKind(t, err, KindSyntax)
	wantMessage(t, err, "sort field configuration")
}

func TestScanEval_BareClauseIsSingleToken(t *testing.T) {
	tokens, err := scanEval("age:>=20 && active:=true", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens, TokFilterClause)
	if tokens[0].InRange {
		t.Error("bare clause marked in range")
	}
	if tokens[0].Clause != "age:>=20 && active:=true" {
		t.Errorf("clause = %q", tokens[0].Clause)
	}
}

func TestScanEval_WeightedList(t *testing.T) {
	tokens, err := scanEval("[(age:>=20):30, (age:<=40):20]", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, tokens,
		TokBracketOpen, TokFilterClause, TokMatch, TokNumber, TokComma,
		TokFilterClause, TokMatch, TokNumber, TokBracketClose,
	)
	if !tokens[1].InRange || !tokens[5].InRange {
		t.Error("bracketed clauses should be marked in range")
	}
	if tokens[1].Clause != "age:>=20" {
		t.Errorf("first clause = %q", tokens[1].Clause)
	}
}

func TestScanFilter_WhitespaceSkippable(t *testing.T) {
	compact, err := scanFilter("age:=20&&active:=true", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spaced, err := scanFilter("  age :=  20  &&\tactive := true ", usersCollection())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds(t, spaced, kinds(compact)...)
}
