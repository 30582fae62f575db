package schema

import (
	"fmt"
	"sort"
)

// Registry is a read-only catalogue of collections plus a derived
// reverse index of join edges. It is built once and never mutated
// afterwards, so it may be shared across any number of concurrent
// validation calls without locking.
type Registry struct {
	collections map[string]*Collection

	// refEdges[from][to] is the name of the field in collection "from"
	// whose reference points into collection "to".
	refEdges map[string]map[string]string
}

// NewRegistry validates the given collections and builds the registry.
// A reference may point at a collection that is not registered; the
// dangling edge only matters if a join against it is ever validated.
func NewRegistry(cols ...*Collection) (*Registry, error) {
	r := &Registry{
		collections: make(map[string]*Collection, len(cols)),
		refEdges:    make(map[string]map[string]string),
	}
	for _, c := range cols {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.collections[c.Name]; dup {
			return nil, fmt.Errorf("duplicate collection name: %s", c.Name)
		}
		r.collections[c.Name] = c
	}
	for _, c := range r.collections {
		for _, f := range c.ReferenceFields() {
			target, _, err := f.ReferenceTarget()
			if err != nil {
				return nil, fmt.Errorf("collection %q: %w", c.Name, err)
			}
			if r.refEdges[c.Name] == nil {
				r.refEdges[c.Name] = make(map[string]string)
			}
			r.refEdges[c.Name][target] = f.Name
		}
	}
	return r, nil
}

// Lookup returns the collection with the given name.
func (r *Registry) Lookup(name string) (*Collection, bool) {
	c, ok := r.collections[name]
	return c, ok
}

// Has reports whether a collection with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.collections[name]
	return ok
}

// Len returns the number of registered collections.
func (r *Registry) Len() int { return len(r.collections) }

// References reports whether collection "from" declares a field whose
// reference points into collection "to". This is the check join
// validation performs: filtering collection A through $B(...) requires
// B to reference A.
func (r *Registry) References(from, to string) bool {
	_, ok := r.refEdges[from][to]
	return ok
}

// ReferenceField returns the name of the field in "from" referencing
// "to", if any.
func (r *Registry) ReferenceField(from, to string) (string, bool) {
	f, ok := r.refEdges[from][to]
	return f, ok
}

// Referencers returns the sorted names of collections declaring a
// reference into the given collection.
func (r *Registry) Referencers(to string) []string {
	var names []string
	for from, targets := range r.refEdges {
		if _, ok := targets[to]; ok {
			names = append(names, from)
		}
	}
	sort.Strings(names)
	return names
}
