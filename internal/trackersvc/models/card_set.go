package models

// Set is one expansion of the card catalog. Cards keep insertion order;
// catalog ids are unique within a set.
type Set struct {
	Name  string
	Cards []*Card

	ids map[int]struct{}
}

// NewSet builds a set, replaying Add for each initial card so the
// uniqueness check applies uniformly.
func NewSet(name string, cards []*Card) (*Set, error) {
	s := &Set{Name: name, ids: make(map[int]struct{})}
	for _, c := range cards {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a card to the set. It fails if a card with the same
// catalog id is already present.
func (s *Set) Add(c *Card) error {
	if _, ok := s.ids[c.CatalogID]; ok {
		return &DuplicateIDError{SetName: s.Name, CatalogID: c.CatalogID}
	}
	s.Cards = append(s.Cards, c)
	s.ids[c.CatalogID] = struct{}{}
	return nil
}
