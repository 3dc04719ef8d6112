package svg

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/dot"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/goccy/go-graphviz"
)

// Formatter renders analysis results as an SVG image of the DOT graph.
type Formatter struct{}

// Format converts the analysis result to SVG.
func (f *Formatter) Format(r *depgraph.Result, opts formatters.RenderOptions) (string, error) {
	view, err := formatters.NewGraphView(r)
	if err != nil {
		return "", err
	}

	svg, err := RenderSVG(dot.Render(view, opts))
	if err != nil {
		return "", err
	}
	return string(svg), nil
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG bytes.
func RenderSVG(dotSource string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dotSource))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
