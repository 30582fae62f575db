package schema

import (
	"strings"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestFieldValidate_Valid(t *testing.T) {
	tests := []struct {
		name  string
		field Field
	}{
		{"plain string", Field{Name: "title", Type: TypeString}},
		{"faceted indexed", Field{Name: "genre", Type: TypeString, Facet: true}},
		{"explicit index with facet", Field{Name: "tag", Type: TypeString, Index: boolPtr(true), Facet: true}},
		{"embedding", Field{Name: "vec", Type: TypeFloatArray, NumDim: 256}},
		{"reference", Field{Name: "author", Type: TypeString, Reference: "users.id"}},
		{"unindexed plain", Field{Name: "raw", Type: TypeObject, Index: boolPtr(false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.field.Validate(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFieldValidate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"empty name", Field{Type: TypeString}, "name is required"},
		{"long name", Field{Name: strings.Repeat("a", 65), Type: TypeString}, "too long"},
		{"bad type", Field{Name: "x", Type: "varchar"}, "invalid type"},
		{"facet without index", Field{Name: "x", Type: TypeString, Index: boolPtr(false), Facet: true}, "index is disabled"},
		{"reference and embedding", Field{Name: "x", Type: TypeFloatArray, NumDim: 8, Reference: "a.b"}, "cannot be both"},
		{"embedding wrong type", Field{Name: "x", Type: TypeInt32Array, NumDim: 8}, "must be of type float[]"},
		{"malformed reference", Field{Name: "x", Type: TypeString, Reference: "users"}, "malformed reference"},
		{"empty reference field", Field{Name: "x", Type: TypeString, Reference: "users."}, "malformed reference"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestFieldSortable(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  bool
	}{
		{"numeric default", Field{Name: "n", Type: TypeInt64}, true},
		{"float default", Field{Name: "n", Type: TypeFloat}, true},
		{"string default", Field{Name: "s", Type: TypeString}, false},
		{"bool default", Field{Name: "b", Type: TypeBool}, false},
		{"string explicit true", Field{Name: "s", Type: TypeString, Sort: boolPtr(true)}, true},
		{"numeric explicit false", Field{Name: "n", Type: TypeInt32, Sort: boolPtr(false)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.Sortable(); got != tt.want {
				t.Errorf("Sortable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldIndexed(t *testing.T) {
	if !(Field{Name: "x", Type: TypeString}).Indexed() {
		t.Error("Indexed() = false for default")
	}
	if (Field{Name: "x", Type: TypeString, Index: boolPtr(false)}).Indexed() {
		t.Error("Indexed() = true for explicit false")
	}
}

func TestFieldTypeHelpers(t *testing.T) {
	if !TypeStringArray.IsArray() || TypeString.IsArray() {
		t.Error("IsArray mismatch")
	}
	if !TypeInt32.IsNumeric() || TypeStringArray.IsNumeric() {
		t.Error("IsNumeric mismatch")
	}
	if TypeString.IsValid() != true || FieldType("varchar").IsValid() {
		t.Error("IsValid mismatch")
	}
}

func TestReferenceTarget(t *testing.T) {
	f := Field{Name: "author", Type: TypeString, Reference: "users.id"}
	col, fld, err := f.ReferenceTarget()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != "users" || fld != "id" {
		t.Errorf("target = %q.%q", col, fld)
	}
}
