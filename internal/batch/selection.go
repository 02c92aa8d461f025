package batch

import "sync"

// Selection is the set of item ids a multi-item operation runs over. The
// displayed count is always the set cardinality, never cached separately.
type Selection struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
}

func NewSelection() *Selection {
	return &Selection{ids: map[string]struct{}{}}
}

// Toggle flips membership of id and reports whether it is selected
// afterwards. Toggling twice returns the set to its previous state.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// SelectAll sets membership for every known item id.
func (s *Selection) SelectAll(known []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{}, len(known))
	s.order = s.order[:0]
	for _, id := range known {
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// Clear empties the set.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = map[string]struct{}{}
	s.order = s.order[:0]
}

func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Items returns the selected ids in selection order.
func (s *Selection) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}
