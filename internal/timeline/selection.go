package timeline

import "slices"

// idSet is an insertion-ordered set of identifiers.
type idSet struct {
	ids []string
}

func (s *idSet) contains(id string) bool {
	return slices.Contains(s.ids, id)
}

func (s *idSet) add(id string) bool {
	if s.contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s *idSet) remove(id string) bool {
	idx := slices.Index(s.ids, id)
	if idx < 0 {
		return false
	}
	s.ids = slices.Delete(s.ids, idx, idx+1)
	return true
}

func (s *idSet) removeFunc(fn func(string) bool) bool {
	before := len(s.ids)
	s.ids = slices.DeleteFunc(s.ids, fn)
	return len(s.ids) != before
}

func (s *idSet) clear() bool {
	if len(s.ids) == 0 {
		return false
	}
	s.ids = nil
	return true
}

func (s *idSet) list() []string {
	return slices.Clone(s.ids)
}

func (s *idSet) first() (string, bool) {
	if len(s.ids) == 0 {
		return "", false
	}
	return s.ids[0], true
}
