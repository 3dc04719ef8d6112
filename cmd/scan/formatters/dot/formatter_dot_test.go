package dot_test

import (
	"testing"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/dot"
	"github.com/LegacyCodeHQ/deadfiles/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestFormatter_SingleExtension(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.SimpleTree())
	result := testhelpers.Analyze(t, root, "a.js")

	output, err := (&dot.Formatter{}).Format(result, formatters.RenderOptions{})
	require.NoError(t, err)

	g := testhelpers.DotGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestFormatter_MixedExtensionsWithCycleAndLabel(t *testing.T) {
	root := testhelpers.WriteTree(t, testhelpers.MixedTree())
	result := testhelpers.Analyze(t, root, "main.js")

	output, err := (&dot.Formatter{}).Format(result, formatters.RenderOptions{Label: "demo"})
	require.NoError(t, err)

	g := testhelpers.DotGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}
