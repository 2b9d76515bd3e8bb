package models

import (
	log "github.com/sirupsen/logrus"
)

// ListContainer is the deck-side capability: list/serialization over an
// authored card sequence.
type ListContainer interface {
	ToSerializable(collapseToCounts bool) DeckRecord
	ToMinimal() MinimalDeckRecord
}

// IdentityZone is the zone-side capability: reconciling instance ids
// with catalog ids as the game reveals cards.
type IdentityZone interface {
	MatchInstanceToCard(instanceID, catalogID int) error
}

// Library is the in-game zone spawned from a deck: it lists and
// serializes like a deck and resolves identities like a zone, over one
// shared card sequence, and is owned by a single seat.
type Library struct {
	Deck
	ZoneID      int
	OwnerSeatID int

	logger log.FieldLogger
}

var (
	_ ListContainer = (*Library)(nil)
	_ IdentityZone  = (*Library)(nil)
	_ ListContainer = (*Deck)(nil)
	_ IdentityZone  = (*Zone)(nil)
)

// NewLibrary builds an empty library. logger may be nil.
func NewLibrary(name, deckID string, ownerSeatID, zoneID int, logger log.FieldLogger) *Library {
	return &Library{
		Deck:        *NewDeck(name, deckID),
		ZoneID:      zoneID,
		OwnerSeatID: ownerSeatID,
		logger:      ensureLogger(logger),
	}
}

// MatchInstanceToCard applies an (instance id, catalog id) observation,
// sharing the zone reconciliation over the library's cards.
func (l *Library) MatchInstanceToCard(instanceID, catalogID int) error {
	return matchInstanceToCard(&l.Pool, l.logger, instanceID, catalogID)
}

// SetSeat assigns the owning seat and stamps it onto every card
// currently held, not just future ones.
func (l *Library) SetSeat(seatID int) {
	l.OwnerSeatID = seatID
	for _, c := range l.Cards {
		c.OwnerSeatID = seatID
	}
}
