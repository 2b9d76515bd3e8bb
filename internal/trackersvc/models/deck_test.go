package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDeck() *Deck {
	d := NewDeck("Burn", "deck-123")
	d.Cards = append(d.Cards,
		gameCard("Lightning Bolt", 7, 1),
		gameCard("Lightning Bolt", 7, 1),
		gameCard("Shock", 9, 3),
	)
	return d
}

func TestDeckGenerateLibrary(t *testing.T) {
	d := sampleDeck()
	lib := d.GenerateLibrary(2)

	require.Equal(t, 3, lib.TotalCount())
	assert.Equal(t, "Burn", lib.Name)
	assert.Equal(t, "deck-123", lib.DeckID)
	assert.Equal(t, 2, lib.OwnerSeatID)

	for i, c := range lib.Cards {
		assert.Equal(t, 2, c.OwnerSeatID)
		assert.Equal(t, UnsetID, c.InstanceID)
		// disjoint copies, not moves
		assert.NotSame(t, d.Cards[i], c)
	}

	// the deck is untouched
	require.Equal(t, 3, d.TotalCount())
	for _, c := range d.Cards {
		assert.Equal(t, UnsetID, c.OwnerSeatID)
	}
}

func TestDeckToSerializable(t *testing.T) {
	t.Run("uncollapsed keeps every card in order", func(t *testing.T) {
		rec := sampleDeck().ToSerializable(false)
		require.Len(t, rec.Cards, 3)
		assert.Equal(t, "deck-123", rec.DeckID)
		assert.Equal(t, "Burn", rec.PoolName)
		assert.Equal(t, []int{7, 7, 9}, []int{
			rec.Cards[0].CatalogID, rec.Cards[1].CatalogID, rec.Cards[2].CatalogID,
		})
		assert.Zero(t, rec.Cards[0].CountInDeck)
	})

	t.Run("collapsed groups by catalog id, descending count", func(t *testing.T) {
		rec := sampleDeck().ToSerializable(true)
		require.Len(t, rec.Cards, 2)
		assert.Equal(t, 7, rec.Cards[0].CatalogID)
		assert.Equal(t, 2, rec.Cards[0].CountInDeck)
		assert.Equal(t, 9, rec.Cards[1].CatalogID)
		assert.Equal(t, 1, rec.Cards[1].CountInDeck)
	})
}

func TestDeckToMinimal(t *testing.T) {
	min := sampleDeck().ToMinimal()
	assert.Equal(t, "deck-123", min.DeckID)
	assert.Equal(t, "Burn", min.PoolName)
	assert.Equal(t, map[int]int{7: 2, 9: 1}, min.Cards)
}

func TestDeckFromRecord(t *testing.T) {
	rec := sampleDeck().ToSerializable(false)

	// through JSON, the way decks come back from storage
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	var decoded DeckRecord
	require.NoError(t, json.Unmarshal(raw, &decoded))

	d := DeckFromRecord(decoded)
	assert.Equal(t, "deck-123", d.DeckID)
	assert.Equal(t, "Burn", d.Name)
	require.Equal(t, 3, d.TotalCount())
	assert.Equal(t, 2, d.CountByID(7))
	assert.Equal(t, "lightningbolt", d.Cards[0].Name)
	assert.Equal(t, UnsetID, d.Cards[0].InstanceID)
}
