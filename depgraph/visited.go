package depgraph

// VisitedSet records every module already claimed by a run, in claim order.
type VisitedSet struct {
	order []ModulePath
	seen  map[ModulePath]struct{}
}

func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[ModulePath]struct{})}
}

// Add inserts path and reports whether it was not present before.
func (s *VisitedSet) Add(path ModulePath) bool {
	if _, ok := s.seen[path]; ok {
		return false
	}
	s.seen[path] = struct{}{}
	s.order = append(s.order, path)
	return true
}

func (s *VisitedSet) Contains(path ModulePath) bool {
	_, ok := s.seen[path]
	return ok
}

func (s *VisitedSet) Len() int {
	return len(s.order)
}

// Paths returns the members in insertion order.
func (s *VisitedSet) Paths() []ModulePath {
	return append([]ModulePath(nil), s.order...)
}
