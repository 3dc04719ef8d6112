package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatMermaid OutputFormat = "mermaid"
	OutputFormatSVG     OutputFormat = "svg"
)

var outputFormats = []OutputFormat{
	OutputFormatText,
	OutputFormatJSON,
	OutputFormatDOT,
	OutputFormatMermaid,
	OutputFormatSVG,
}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat parses a format name, ignoring case.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	candidate := OutputFormat(strings.ToLower(strings.TrimSpace(value)))
	for _, format := range outputFormats {
		if format == candidate {
			return format, true
		}
	}
	return "", false
}

// SupportedFormats returns the valid format names as a comma-separated list.
func SupportedFormats() string {
	names := make([]string, len(outputFormats))
	for i, format := range outputFormats {
		names[i] = format.String()
	}
	return strings.Join(names, ", ")
}
