package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameCard(pretty string, catalogID, setNumber int) *GameCard {
	return NewGameCard(catalogCard(pretty, catalogID, setNumber))
}

func lightningPool(t *testing.T) (*Pool, *GameCard, *GameCard) {
	t.Helper()
	bolt := gameCard("Lightning Bolt", 1001, 1)
	strike := gameCard("Lightning Strike", 1002, 2)
	return NewPool("test_pool", []*GameCard{bolt, strike}, nil), bolt, strike
}

func TestPoolCounts(t *testing.T) {
	p, bolt, _ := lightningPool(t)
	p.Cards = append(p.Cards, gameCard("Lightning Bolt", 1001, 1))

	assert.Equal(t, 3, p.TotalCount())
	assert.Equal(t, 2, p.CountByID(1001))
	assert.Equal(t, 1, p.CountByID(1002))
	assert.Equal(t, 0, p.CountByID(9999))

	bolt.OwnerSeatID = 2
	assert.Equal(t, 1, p.CountOwnedBy(2))
	assert.Equal(t, 2, p.CountOwnedBy(UnsetID))

	// every member is countable by its own catalog id
	for _, c := range p.Cards {
		assert.GreaterOrEqual(t, p.CountByID(c.CatalogID), 1)
	}
}

func TestPoolGroupCards(t *testing.T) {
	p, _, _ := lightningPool(t)
	p.Cards = append(p.Cards, gameCard("Lightning Bolt", 1001, 1))

	assert.Equal(t, map[int]int{1001: 2, 1002: 1}, p.GroupCards())
}

func TestPoolSearch(t *testing.T) {
	t.Run("substring matches accumulate in order", func(t *testing.T) {
		p, bolt, strike := lightningPool(t)
		got := p.Search(TextKey("lightning"), false)
		require.Equal(t, []*GameCard{bolt, strike}, got)
	})

	t.Run("numeric key takes the lookup fast path", func(t *testing.T) {
		p, bolt, _ := lightningPool(t)
		got := p.Search(NumericKey(1001), false)
		require.Equal(t, []*GameCard{bolt}, got)
	})

	t.Run("numeric string behaves like a numeric key", func(t *testing.T) {
		p, _, strike := lightningPool(t)
		got := p.Search(TextKey("1002"), false)
		require.Equal(t, []*GameCard{strike}, got)
	})

	t.Run("exact name only short-circuits when asked to", func(t *testing.T) {
		p, bolt, _ := lightningPool(t)
		got := p.Search(TextKey("Lightning Bolt"), true)
		require.Equal(t, []*GameCard{bolt}, got)

		// without the flag an exact name is just another substring hit
		got = p.Search(TextKey("Lightning Bolt"), false)
		require.Equal(t, []*GameCard{bolt}, got)
	})

	t.Run("set number matches during the scan", func(t *testing.T) {
		p, _, strike := lightningPool(t)
		// 2 is below the fast-lookup threshold and unknown to the
		// lookup snapshot, so the numeric tag is dropped and the key
		// falls back to a (futile) name scan.
		assert.Empty(t, p.Search(TextKey("2"), false))

		// a known sub-threshold id keeps its numeric semantics
		q := NewPool("with_ability", p.Cards, map[int]string{2: "some ability"})
		got := q.Search(NumericKey(2), false)
		require.Equal(t, []*GameCard{strike}, got)

		text, ok := q.Ability(2)
		require.True(t, ok)
		assert.Equal(t, "some ability", text)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		p, _, _ := lightningPool(t)
		assert.Empty(t, p.Search(TextKey("fireball"), false))
	})

	t.Run("lookup is a construction-time snapshot", func(t *testing.T) {
		p, _, _ := lightningPool(t)
		shock := gameCard("Shock", 20033, 3)
		p.Cards = append(p.Cards, shock)

		// the fast path misses the late addition, the scan still finds it
		got := p.Search(NumericKey(20033), false)
		require.Equal(t, []*GameCard{shock}, got)
		assert.Equal(t, 1, p.CountByID(20033))
	})
}

func TestPoolFindOne(t *testing.T) {
	p, _, strike := lightningPool(t)

	got, err := p.FindOne(TextKey("strike"))
	require.NoError(t, err)
	assert.Same(t, strike, got)

	_, err = p.FindOne(TextKey("lightning"))
	assert.ErrorIs(t, err, ErrAmbiguousKey)

	_, err = p.FindOne(TextKey("fireball"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPoolTransferAllTo(t *testing.T) {
	a, bolt, strike := lightningPool(t)
	shock := gameCard("Shock", 1003, 3)
	b := NewPool("other", []*GameCard{shock}, nil)

	a.TransferAllTo(b)

	assert.Equal(t, 0, a.TotalCount())
	require.Equal(t, []*GameCard{shock, bolt, strike}, b.Cards)
}

func TestPoolTransferCardTo(t *testing.T) {
	t.Run("moves the sole containment", func(t *testing.T) {
		a, bolt, strike := lightningPool(t)
		b := NewPool("other", nil, nil)

		require.NoError(t, a.TransferCardTo(bolt, b))
		assert.Equal(t, []*GameCard{strike}, a.Cards)
		assert.Equal(t, []*GameCard{bolt}, b.Cards)
	})

	t.Run("fails when the card is elsewhere", func(t *testing.T) {
		a, _, _ := lightningPool(t)
		b := NewPool("other", nil, nil)
		stranger := gameCard("Shock", 1003, 3)

		err := a.TransferCardTo(stranger, b)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("resolves a search key", func(t *testing.T) {
		a, bolt, _ := lightningPool(t)
		b := NewPool("other", nil, nil)

		require.NoError(t, a.TransferMatchTo(TextKey("bolt"), b))
		assert.Equal(t, []*GameCard{bolt}, b.Cards)

		// with bolt gone "lightning" is unambiguous
		require.NoError(t, a.TransferMatchTo(TextKey("lightning"), b))
		assert.Equal(t, 0, a.TotalCount())

		err := a.TransferMatchTo(TextKey("lightning"), b)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPoolTransferCardsToPartialFailure(t *testing.T) {
	a, bolt, strike := lightningPool(t)
	b := NewPool("other", nil, nil)
	stranger := gameCard("Shock", 1003, 3)

	err := a.TransferCardsTo([]*GameCard{bolt, stranger, strike}, b)
	require.ErrorIs(t, err, ErrNotFound)

	// the first move stays committed, the rest never happened
	assert.Equal(t, []*GameCard{strike}, a.Cards)
	assert.Equal(t, []*GameCard{bolt}, b.Cards)
}

func TestPoolFromSets(t *testing.T) {
	s1, err := NewSet("AAA", []*Card{
		catalogCard("Lightning Bolt", 1001, 1),
		catalogCard("Lightning Strike", 1002, 2),
	})
	require.NoError(t, err)
	s2, err := NewSet("BBB", []*Card{catalogCard("Shock", 1003, 1)})
	require.NoError(t, err)

	p := FromSets("all_cards", []*Set{s1, s2}, nil)
	require.Equal(t, 3, p.TotalCount())

	// set order then card order, fresh in-game records
	assert.Equal(t, []int{1001, 1002, 1003}, []int{
		p.Cards[0].CatalogID, p.Cards[1].CatalogID, p.Cards[2].CatalogID,
	})
	for _, c := range p.Cards {
		assert.Equal(t, UnsetID, c.InstanceID)
		assert.Equal(t, UnsetID, c.OwnerSeatID)
	}
}
