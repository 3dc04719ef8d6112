package scan

import (
	"fmt"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/dot"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/json"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/mermaid"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/svg"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/text"
)

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string, verbose bool) (formatters.Formatter, error) {
	f, ok := formatters.ParseOutputFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, formatters.SupportedFormats())
	}

	switch f {
	case formatters.OutputFormatText:
		return &text.Formatter{Verbose: verbose}, nil
	case formatters.OutputFormatJSON:
		return &json.Formatter{}, nil
	case formatters.OutputFormatDOT:
		return &dot.Formatter{}, nil
	case formatters.OutputFormatMermaid:
		return &mermaid.Formatter{}, nil
	case formatters.OutputFormatSVG:
		return &svg.Formatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, formatters.SupportedFormats())
	}
}
