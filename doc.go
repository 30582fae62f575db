// Package docquery validates search query expressions against typed
// collection schemas before a request is ever built.
//
// Three related mini-languages are covered: filter expressions
// (boolean field comparisons with joins), sort expressions
// (multi-key field/direction lists) and eval expressions (weighted
// filter clauses for custom scoring). Each is tokenized, parsed
// against its grammar and semantically checked against a schema
// Registry, including resolution of $collection(...) join references.
//
// The validators themselves live in the query subpackage; schemas and
// the registry in the schema subpackage. This package is the facade:
// a Validator bound to a registry, with optional logging and
// Prometheus metrics, plus a fluent SearchParams builder that rejects
// invalid expressions before the transport layer sees them.
package docquery
