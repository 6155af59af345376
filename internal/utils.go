package internal

// VisitedSet records page URLs already fetched during one traversal.
// It is owned by a single goroutine.
type VisitedSet struct {
	v map[string]bool
}

func NewVisitedSet() *VisitedSet {
	return &VisitedSet{v: make(map[string]bool)}
}

// Visit marks url as visited and reports whether it had been seen before.
func (s *VisitedSet) Visit(url string) bool {
	if s.v[url] {
		return true
	}
	s.v[url] = true
	return false
}
