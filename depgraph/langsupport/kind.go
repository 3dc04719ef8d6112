package langsupport

// ModuleKind classifies a file by how its references are extracted.
type ModuleKind int

const (
	KindUnknown ModuleKind = iota
	KindScript
	KindStylesheet
	KindData
)

func (k ModuleKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindStylesheet:
		return "stylesheet"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// IsLeaf reports whether modules of this kind never reference other modules.
func (k ModuleKind) IsLeaf() bool {
	return k == KindData || k == KindUnknown
}
