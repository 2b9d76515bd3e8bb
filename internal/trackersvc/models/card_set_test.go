package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogCard(pretty string, catalogID, setNumber int) *Card {
	return &Card{
		Name:       NormalizeCardName(pretty),
		PrettyName: pretty,
		Set:        "TST",
		SetNumber:  setNumber,
		CatalogID:  catalogID,
	}
}

func TestSetAdd(t *testing.T) {
	t.Run("rejects duplicate catalog ids", func(t *testing.T) {
		s, err := NewSet("TST", nil)
		require.NoError(t, err)

		require.NoError(t, s.Add(catalogCard("Lightning Bolt", 1001, 1)))
		require.Len(t, s.Cards, 1)

		err = s.Add(catalogCard("Lightning Bolt", 1001, 1))
		var dup *DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 1001, dup.CatalogID)
		assert.Len(t, s.Cards, 1)
	})

	t.Run("constructor replays the uniqueness check", func(t *testing.T) {
		_, err := NewSet("TST", []*Card{
			catalogCard("Lightning Bolt", 1001, 1),
			catalogCard("Lightning Strike", 1001, 2),
		})
		var dup *DuplicateIDError
		require.ErrorAs(t, err, &dup)
	})

	t.Run("count grows by one per successful add", func(t *testing.T) {
		s, err := NewSet("TST", []*Card{
			catalogCard("Lightning Bolt", 1001, 1),
			catalogCard("Lightning Strike", 1002, 2),
		})
		require.NoError(t, err)
		assert.Len(t, s.Cards, 2)
	})
}

func TestDuplicateIDErrorIsNotSentinel(t *testing.T) {
	s, _ := NewSet("TST", []*Card{catalogCard("Shock", 1003, 3)})
	err := s.Add(catalogCard("Shock", 1003, 3))
	assert.False(t, errors.Is(err, ErrNotFound))
}
