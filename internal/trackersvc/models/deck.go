package models

import "sort"

// Deck is a saved, user-authored card list. Its cards are catalog-level
// references: no live instance id, no owner until a library is spawned.
type Deck struct {
	Pool
	DeckID string
}

// DeckRecord is the full serialized form of a deck.
type DeckRecord struct {
	DeckID   string       `json:"deck_id"`
	PoolName string       `json:"pool_name"`
	Cards    []CardRecord `json:"cards"`
}

// MinimalDeckRecord is the compact form: catalog id to copy count.
type MinimalDeckRecord struct {
	DeckID   string      `json:"deckID"`
	PoolName string      `json:"poolName"`
	Cards    map[int]int `json:"cards"`
}

func NewDeck(name, deckID string) *Deck {
	return &Deck{
		Pool:   *NewPool(name, nil, nil),
		DeckID: deckID,
	}
}

// GenerateLibrary spawns the in-game play copy of this deck for the
// given owner seat: every card becomes a fresh in-game record with the
// owner stamped and no instance id. The deck itself is untouched.
func (d *Deck) GenerateLibrary(ownerID int) *Library {
	library := NewLibrary(d.Name, d.DeckID, ownerID, UnsetID, nil)
	for _, c := range d.Cards {
		gc := NewGameCard(&c.Card)
		gc.OwnerSeatID = ownerID
		library.Cards = append(library.Cards, gc)
	}
	return library
}

// ToSerializable emits the deck record. When collapseToCounts is set,
// cards are grouped by catalog id with a count_in_deck per group and the
// groups are ordered by descending count (stable ascending sort then
// reversed, so ties come out in reverse first-seen order).
func (d *Deck) ToSerializable(collapseToCounts bool) DeckRecord {
	rec := DeckRecord{
		DeckID:   d.DeckID,
		PoolName: d.Name,
	}
	if !collapseToCounts {
		rec.Cards = make([]CardRecord, 0, len(d.Cards))
		for _, c := range d.Cards {
			rec.Cards = append(rec.Cards, c.ToRecord())
		}
		return rec
	}

	seen := make(map[int]int) // catalog id -> index into rec.Cards
	for _, c := range d.Cards {
		i, ok := seen[c.CatalogID]
		if !ok {
			i = len(rec.Cards)
			seen[c.CatalogID] = i
			rec.Cards = append(rec.Cards, c.ToRecord())
		}
		rec.Cards[i].CountInDeck++
	}
	sort.SliceStable(rec.Cards, func(i, j int) bool {
		return rec.Cards[i].CountInDeck < rec.Cards[j].CountInDeck
	})
	for i, j := 0, len(rec.Cards)-1; i < j; i, j = i+1, j-1 {
		rec.Cards[i], rec.Cards[j] = rec.Cards[j], rec.Cards[i]
	}
	return rec
}

// ToMinimal emits the deck as catalog-id copy counts.
func (d *Deck) ToMinimal() MinimalDeckRecord {
	counts := make(map[int]int)
	for _, c := range d.Cards {
		counts[c.CatalogID]++
	}
	return MinimalDeckRecord{DeckID: d.DeckID, PoolName: d.Name, Cards: counts}
}

// DeckFromRecord rebuilds a deck from its full serialized form.
func DeckFromRecord(rec DeckRecord) *Deck {
	deck := NewDeck(rec.PoolName, rec.DeckID)
	for _, cr := range rec.Cards {
		deck.Cards = append(deck.Cards, CardFromRecord(cr))
	}
	return deck
}
