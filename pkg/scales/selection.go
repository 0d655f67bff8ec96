package scales

import "tableflip.dev/uebung/pkg/model"

// Selection is the ordered set of pairs picked during a session.
type Selection struct {
	pairs []model.ScalePair
}

// NewSelection starts a selection from pairs, dropping duplicates.
func NewSelection(pairs []model.ScalePair) *Selection {
	s := &Selection{}
	for _, p := range pairs {
		s.Add(p.Key, p.Mode)
	}
	return s
}

// Add appends key/mode. Empty parts and duplicates are ignored and report
// false.
func (s *Selection) Add(key, mode string) bool {
	if key == "" || mode == "" {
		return false
	}
	p := model.ScalePair{Key: key, Mode: mode}
	for _, have := range s.pairs {
		if have == p {
			return false
		}
	}
	s.pairs = append(s.pairs, p)
	return true
}

// Remove drops the pair at index i.
func (s *Selection) Remove(i int) bool {
	if i < 0 || i >= len(s.pairs) {
		return false
	}
	s.pairs = append(s.pairs[:i:i], s.pairs[i+1:]...)
	return true
}

// Pairs returns a copy of the selected pairs.
func (s *Selection) Pairs() []model.ScalePair {
	return append([]model.ScalePair(nil), s.pairs...)
}

func (s *Selection) Len() int {
	return len(s.pairs)
}
