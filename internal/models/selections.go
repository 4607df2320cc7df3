package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Selections maps a category to the image path chosen for it.
// Keys keep their insertion order so the JSON document round-trips unchanged.
type Selections struct {
	m *orderedmap.OrderedMap[string, string]
}

func NewSelections() *Selections {
	return &Selections{m: orderedmap.New[string, string]()}
}

// Get returns the selected image path for a category
func (s *Selections) Get(category string) (string, bool) {
	return s.m.Get(category)
}

// Path returns the selected image path, or "" when the category has none
func (s *Selections) Path(category string) string {
	p, _ := s.m.Get(category)
	return p
}

// Set overwrites any prior selection for the category. A new category is appended;
// an existing one keeps its position.
func (s *Selections) Set(category, imagePath string) {
	s.m.Set(category, imagePath)
}

// Delete reports whether the category had a selection
func (s *Selections) Delete(category string) bool {
	_, present := s.m.Delete(category)
	return present
}

func (s *Selections) Len() int {
	return s.m.Len()
}

// Each visits selections in insertion order until fn returns false
func (s *Selections) Each(fn func(category, imagePath string) bool) {
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

func (s *Selections) MarshalJSON() ([]byte, error) {
	return s.m.MarshalJSON()
}

func (s *Selections) UnmarshalJSON(data []byte) error {
	if s.m == nil {
		s.m = orderedmap.New[string, string]()
	}
	return s.m.UnmarshalJSON(data)
}
