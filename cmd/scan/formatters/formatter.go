package formatters

import "github.com/LegacyCodeHQ/deadfiles/depgraph"

// RenderOptions contains optional parameters for rendering reports.
type RenderOptions struct {
	// Label is an optional title for graph reports
	Label string
}

// Formatter is the interface that all report formatters must implement.
type Formatter interface {
	// Format renders an analysis result.
	Format(r *depgraph.Result, opts RenderOptions) (string, error)
}
