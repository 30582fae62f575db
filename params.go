package docquery

import (
	"fmt"

	"github.com/docquery-io/docquery/query"
)

// SearchParams is a validated set of search request parameters. Wire
// encoding and transport belong to the layer above; on a Build error
// that layer must surface the diagnostic instead of issuing a request.
type SearchParams struct {
	Collection string
	Query      string
	QueryBy    []string
	FilterBy   string
	SortBy     string
	Page       int
	PerPage    int
}

// ParamsBuilder is a fluent builder for SearchParams.
type ParamsBuilder struct {
	p SearchParams
}

// Params starts a builder for the given collection.
func Params(collection string) *ParamsBuilder {
	return &ParamsBuilder{p: SearchParams{Collection: collection}}
}

// Query sets the full-text query string.
func (b *ParamsBuilder) Query(q string) *ParamsBuilder {
	b.p.Query = q
	return b
}

// QueryBy adds fields the query should match against.
func (b *ParamsBuilder) QueryBy(fields ...string) *ParamsBuilder {
	b.p.QueryBy = append(b.p.QueryBy, fields...)
	return b
}

// FilterBy sets the filter expression.
func (b *ParamsBuilder) FilterBy(expr string) *ParamsBuilder {
	b.p.FilterBy = expr
	return b
}

// SortBy sets the sort expression.
func (b *ParamsBuilder) SortBy(expr string) *ParamsBuilder {
	b.p.SortBy = expr
	return b
}

// Page sets the result page number (1-based).
func (b *ParamsBuilder) Page(n int) *ParamsBuilder {
	b.p.Page = n
	return b
}

// PerPage sets the number of results per page.
func (b *ParamsBuilder) PerPage(n int) *ParamsBuilder {
	b.p.PerPage = n
	return b
}

// Build validates the accumulated parameters against v's registry and
// returns the params value. The first invalid expression aborts the
// build.
func (b *ParamsBuilder) Build(v *Validator) (SearchParams, error) {
	col, ok := v.reg.Lookup(b.p.Collection)
	if !ok {
		return SearchParams{}, &query.Error{
			Kind:    query.KindSchema,
			Message: fmt.Sprintf("unknown collection '%s'", b.p.Collection),
		}
	}
	for _, name := range b.p.QueryBy {
		f, ok := col.FieldByName(name)
		if !ok {
			return SearchParams{}, &query.Error{
				Kind:    query.KindSchema,
				Message: fmt.Sprintf("unknown field '%s' in query_by", name),
			}
		}
		if !f.Indexed() {
			return SearchParams{}, &query.Error{
				Kind:    query.KindSchema,
				Message: fmt.Sprintf("field '%s' in query_by is not indexed", name),
			}
		}
	}
	if b.p.FilterBy != "" {
		if err := v.Filter(b.p.Collection, b.p.FilterBy); err != nil {
			return SearchParams{}, err
		}
	}
	if b.p.SortBy != "" {
		if err := v.Sort(b.p.Collection, b.p.SortBy); err != nil {
			return SearchParams{}, err
		}
	}
	if b.p.Page < 0 {
		return SearchParams{}, fmt.Errorf("page must not be negative, got %d", b.p.Page)
	}
	if b.p.PerPage < 0 {
		return SearchParams{}, fmt.Errorf("per_page must not be negative, got %d", b.p.PerPage)
	}
	return b.p, nil
}
