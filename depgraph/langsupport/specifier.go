package langsupport

// Origin identifies the construct a specifier was read from.
type Origin int

const (
	OriginImport Origin = iota
	OriginReExport
	OriginRequire
	OriginDynamicImport
	OriginAtImport
	OriginURL
)

func (o Origin) String() string {
	switch o {
	case OriginImport:
		return "import"
	case OriginReExport:
		return "export-from"
	case OriginRequire:
		return "require"
	case OriginDynamicImport:
		return "dynamic-import"
	case OriginAtImport:
		return "@import"
	case OriginURL:
		return "url()"
	default:
		return "unknown"
	}
}

// Specifier is the raw string written at a reference site, before resolution.
type Specifier struct {
	Value  string
	Origin Origin
	// External marks specifiers naming a package, a runtime built-in or a
	// remote resource instead of a file in the tree.
	External bool
}
