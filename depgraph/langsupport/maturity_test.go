package langsupport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaturityLevel_Labels(t *testing.T) {
	assert.Equal(t, "◐", MaturityBasicTests.Symbol())
	assert.Equal(t, "Actively Tested", MaturityActivelyTested.DisplayName())
	assert.Equal(t, "?", MaturityLevel(42).Symbol())
	assert.Equal(t, "Unknown", MaturityLevel(-1).DisplayName())
}

func TestMaturityLegend(t *testing.T) {
	assert.Equal(t, "○ Untested  ◐ Basic Tests  ● Actively Tested  ✓ Stable", MaturityLegend())
}
