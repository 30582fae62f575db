package schema

import (
	"fmt"
	"strings"
)

// FieldType is the declared type of a collection field.
type FieldType string

// Supported field types.
const (
	TypeString        FieldType = "string"
	TypeInt32         FieldType = "int32"
	TypeInt64         FieldType = "int64"
	TypeFloat         FieldType = "float"
	TypeBool          FieldType = "bool"
	TypeGeopoint      FieldType = "geopoint"
	TypeStringArray   FieldType = "string[]"
	TypeInt32Array    FieldType = "int32[]"
	TypeInt64Array    FieldType = "int64[]"
	TypeFloatArray    FieldType = "float[]"
	TypeBoolArray     FieldType = "bool[]"
	TypeGeopointArray FieldType = "geopoint[]"
	TypeObject        FieldType = "object"
	TypeObjectArray   FieldType = "object[]"
	TypeAuto          FieldType = "auto"
	TypeStringStar    FieldType = "string*"
	TypeImage         FieldType = "image"
)

var validTypes = map[FieldType]bool{
	TypeString: true, TypeInt32: true, TypeInt64: true, TypeFloat: true,
	TypeBool: true, TypeGeopoint: true, TypeStringArray: true,
	TypeInt32Array: true, TypeInt64Array: true, TypeFloatArray: true,
	TypeBoolArray: true, TypeGeopointArray: true, TypeObject: true,
	TypeObjectArray: true, TypeAuto: true, TypeStringStar: true,
	TypeImage: true,
}

// IsValid checks if the field type is supported.
func (t FieldType) IsValid() bool { return validTypes[t] }

// IsArray reports whether the type is an array variant.
func (t FieldType) IsArray() bool { return strings.HasSuffix(string(t), "[]") }

// IsNumeric reports whether the type is a scalar numeric type.
func (t FieldType) IsNumeric() bool {
	return t == TypeInt32 || t == TypeInt64 || t == TypeFloat
}

// Field describes a single indexed field of a collection.
// Index and Sort are tri-state: nil means "engine default" (indexed;
// sortable only for numeric types), which is distinct from an explicit
// false.
type Field struct {
	Name     string    `yaml:"name"`
	Type     FieldType `yaml:"type"`
	Optional bool      `yaml:"optional"`
	Facet    bool      `yaml:"facet"`
	Infix    bool      `yaml:"infix"`
	Store    bool      `yaml:"store"`
	Index    *bool     `yaml:"index"`
	Sort     *bool     `yaml:"sort"`

	// NumDim marks the field as an embedding vector of that dimension.
	NumDim int `yaml:"num_dim"`

	// Reference marks the field as a join edge, in the form
	// "<collection>.<field>".
	Reference string `yaml:"reference"`
}

// Validate checks the field definition invariants.
func (f Field) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}
	if len(f.Name) > 64 {
		return fmt.Errorf("field name %q too long (max 64)", f.Name)
	}
	if !f.Type.IsValid() {
		return fmt.Errorf("invalid type %q for field %q", f.Type, f.Name)
	}
	if !f.Indexed() && f.Facet {
		return fmt.Errorf("field %q cannot be a facet: index is disabled", f.Name)
	}
	if f.Reference != "" && f.NumDim > 0 {
		return fmt.Errorf("field %q cannot be both a reference and an embedding", f.Name)
	}
	if f.NumDim > 0 && f.Type != TypeFloatArray {
		return fmt.Errorf("embedding field %q must be of type float[], got %q", f.Name, f.Type)
	}
	if f.Reference != "" {
		if _, _, err := f.ReferenceTarget(); err != nil {
			return err
		}
	}
	return nil
}

// Indexed reports whether the field is indexed (default true).
func (f Field) Indexed() bool { return f.Index == nil || *f.Index }

// Sortable reports whether the field can appear in a sort expression.
// Explicit sort:true always wins; numeric fields are sortable unless
// explicitly marked sort:false; everything else needs an explicit flag.
func (f Field) Sortable() bool {
	if f.Sort != nil {
		return *f.Sort
	}
	return f.Type.IsNumeric()
}

// IsReference reports whether the field declares a join edge.
func (f Field) IsReference() bool { return f.Reference != "" }

// ReferenceTarget splits the Reference into collection and field names.
func (f Field) ReferenceTarget() (collection, field string, err error) {
	collection, field, ok := strings.Cut(f.Reference, ".")
	if !ok || collection == "" || field == "" {
		return "", "", fmt.Errorf(
			"field %q has malformed reference %q (want \"collection.field\")",
			f.Name, f.Reference,
		)
	}
	return collection, field, nil
}
