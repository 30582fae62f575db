package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/docquery-io/docquery/schema"
)

func boolPtr(b bool) *bool { return &b }

func usersCollection() *schema.Collection {
	return &schema.Collection{
		Name: "users",
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeString},
			{Name: "name", Type: schema.TypeString},
			{Name: "age", Type: schema.TypeInt32, Sort: boolPtr(true)},
			{Name: "email", Type: schema.TypeString, Optional: true},
			{Name: "active", Type: schema.TypeBool},
			{Name: "score", Type: schema.TypeFloat},
			{Name: "tags", Type: schema.TypeStringArray},
			{Name: "flags", Type: schema.TypeBoolArray},
			{Name: "location", Type: schema.TypeGeopoint},
			{Name: "meta", Type: schema.TypeAuto},
		},
	}
}

func postsCollection() *schema.Collection {
	return &schema.Collection{
		Name: "posts",
		Fields: []schema.Field{
			{Name: "title", Type: schema.TypeString},
			{Name: "author", Type: schema.TypeString, Reference: "users.id"},
			{Name: "likes", Type: schema.TypeInt64},
		},
	}
}

func commentsCollection() *schema.Collection {
	return &schema.Collection{
		Name: "comments",
		Fields: []schema.Field{
			{Name: "body", Type: schema.TypeString},
		},
	}
}

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.NewRegistry(
		usersCollection(), postsCollection(), commentsCollection(),
	)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var qe *Error
	if !errors.As(err, &qe) {
		t.Fatalf("error %v is not a *query.Error", err)
	}
	if qe.Kind != kind {
		t.Errorf("error kind = %s, want %s (message: %s)", qe.Kind, kind, qe.Message)
	}
}

func wantMessage(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error = %q, want substring %q", err, substr)
	}
}
