package langsupport

import "strings"

// MaturityLevel describes how well a module kind's reference extraction is covered.
type MaturityLevel int

const (
	MaturityUntested MaturityLevel = iota
	MaturityBasicTests
	MaturityActivelyTested
	MaturityStable
)

var maturityLabels = []struct {
	symbol string
	name   string
}{
	MaturityUntested:       {symbol: "○", name: "Untested"},
	MaturityBasicTests:     {symbol: "◐", name: "Basic Tests"},
	MaturityActivelyTested: {symbol: "●", name: "Actively Tested"},
	MaturityStable:         {symbol: "✓", name: "Stable"},
}

func (level MaturityLevel) known() bool {
	return level >= 0 && int(level) < len(maturityLabels)
}

func (level MaturityLevel) DisplayName() string {
	if !level.known() {
		return "Unknown"
	}
	return maturityLabels[level].name
}

func (level MaturityLevel) Symbol() string {
	if !level.known() {
		return "?"
	}
	return maturityLabels[level].symbol
}

// MaturityLegend explains every maturity symbol, least mature first.
func MaturityLegend() string {
	entries := make([]string, len(maturityLabels))
	for i, label := range maturityLabels {
		entries[i] = label.symbol + " " + label.name
	}
	return strings.Join(entries, "  ")
}
