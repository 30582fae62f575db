package schema

import (
	"fmt"
	"regexp"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Collection describes a document collection: an ordered list of typed
// fields plus an optional default sorting field. Collections are
// authored declaratively (Go literals or YAML) and validated once;
// validators only ever read them.
type Collection struct {
	Name                string  `yaml:"name"`
	Fields              []Field `yaml:"fields"`
	DefaultSortingField string  `yaml:"default_sorting_field"`
}

// Validate checks the collection definition invariants.
func (c *Collection) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("collection name is required")
	}
	if len(c.Name) > 64 {
		return fmt.Errorf("collection name too long (max 64)")
	}
	if !nameRegex.MatchString(c.Name) {
		return fmt.Errorf("collection name must be alphanumeric with underscores and hyphens")
	}
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("collection %q: %w", c.Name, err)
		}
		if seen[f.Name] {
			return fmt.Errorf("collection %q: duplicate field name: %s", c.Name, f.Name)
		}
		seen[f.Name] = true
	}
	if c.DefaultSortingField != "" {
		f, ok := c.FieldByName(c.DefaultSortingField)
		if !ok {
			return fmt.Errorf(
				"collection %q: default_sorting_field %q does not exist",
				c.Name, c.DefaultSortingField,
			)
		}
		if f.Optional {
			return fmt.Errorf(
				"collection %q: default_sorting_field %q cannot be optional",
				c.Name, c.DefaultSortingField,
			)
		}
		if !f.Sortable() {
			return fmt.Errorf(
				"collection %q: default_sorting_field %q is not sortable",
				c.Name, c.DefaultSortingField,
			)
		}
	}
	return nil
}

// FieldByName looks up a field by name.
func (c *Collection) FieldByName(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasField checks if a field with the given name exists.
func (c *Collection) HasField(name string) bool {
	_, ok := c.FieldByName(name)
	return ok
}

// ReferenceFields returns the fields declaring join edges.
func (c *Collection) ReferenceFields() []Field {
	var refs []Field
	for _, f := range c.Fields {
		if f.IsReference() {
			refs = append(refs, f)
		}
	}
	return refs
}
