// Package collapse tracks which node paths render as a placeholder.
package collapse

import "sort"

// Set is a session-scoped set of collapsed paths. The zero value is ready to use.
type Set struct {
	paths map[string]struct{}
}

// New returns a Set with the given paths collapsed.
func New(paths ...string) *Set {
	s := &Set{}
	for _, p := range paths {
		s.add(p)
	}
	return s
}

// Toggle expands path if it is collapsed and collapses it otherwise.
// It returns true when path is collapsed afterwards.
func (s *Set) Toggle(path string) bool {
	if s.Collapsed(path) {
		delete(s.paths, path)
		return false
	}
	s.add(path)
	return true
}

// Collapsed reports whether path is in the set. Safe on a nil Set.
func (s *Set) Collapsed(path string) bool {
	if s == nil || s.paths == nil {
		return false
	}
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of collapsed paths.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Paths returns the collapsed paths in sorted order.
func (s *Set) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s *Set) add(path string) {
	if s.paths == nil {
		s.paths = make(map[string]struct{})
	}
	s.paths[path] = struct{}{}
}
