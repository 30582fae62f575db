package docquery

import "github.com/docquery-io/docquery/query"

// Validation diagnostics re-exported from the query package.
// Use errors.As with a *ValidationError to inspect a failure's kind.
type (
	ValidationError = query.Error
	ErrorKind       = query.ErrorKind
)

// Error kinds.
const (
	KindLex    = query.KindLex
	KindSyntax = query.KindSyntax
	KindSchema = query.KindSchema
	KindJoin   = query.KindJoin
)
