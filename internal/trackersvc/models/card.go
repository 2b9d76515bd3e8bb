package models

import "strings"

// UnsetID is the sentinel for an identity that has not been resolved yet,
// used for both catalog ids and in-game instance ids.
const UnsetID = -1

// Card is the printed identity of a card in the game's catalog.
// Name is normalized (lowercase, underscores); PrettyName is for display.
type Card struct {
	Name          string   `json:"name"`
	PrettyName    string   `json:"pretty_name"`
	Cost          []string `json:"cost"`
	ColorIdentity []string `json:"color_identity"`
	CardType      string   `json:"card_type"`
	SubTypes      []string `json:"sub_types"`
	Set           string   `json:"set"`
	SetNumber     int      `json:"set_number"`
	CatalogID     int      `json:"catalog_id"`
}

// GameCard is a physical copy of a card inside a game instance. The
// instance id is assigned by the game once the copy enters play and may
// change; earlier ids are kept in PreviousIIDs.
type GameCard struct {
	Card
	OwnerSeatID  int   `json:"owner_seat_id"`
	InstanceID   int   `json:"instance_id"`
	PreviousIIDs []int `json:"previous_iids,omitempty"`
}

// CardRecord is the serialized form of a card, shared by catalog and
// in-game cards. CountInDeck is only set on collapsed deck exports.
type CardRecord struct {
	Name          string   `json:"name"`
	PrettyName    string   `json:"pretty_name"`
	Cost          []string `json:"cost"`
	ColorIdentity []string `json:"color_identity"`
	CardType      string   `json:"card_type"`
	SubTypes      []string `json:"sub_types"`
	Set           string   `json:"set"`
	SetNumber     int      `json:"set_number"`
	CatalogID     int      `json:"catalog_id"`
	OwnerSeatID   int      `json:"owner_seat_id,omitempty"`
	InstanceID    int      `json:"instance_id,omitempty"`
	CountInDeck   int      `json:"count_in_deck,omitempty"`
}

// NormalizeCardName lowers s and strips everything outside [0-9a-zA-Z_],
// the form card names are stored and searched in.
func NormalizeCardName(s string) string {
	return keyCleanRE.ReplaceAllString(strings.ToLower(s), "")
}

// NewGameCard wraps a catalog card as an in-game copy with no owner and
// no instance id assigned yet.
func NewGameCard(c *Card) *GameCard {
	return &GameCard{Card: *c, OwnerSeatID: UnsetID, InstanceID: UnsetID}
}

// TransformTo changes the card's catalog identity in place. The current
// instance id survives a transform; catalog-level fields other than the
// id are refreshed by the caller if it has catalog access.
func (g *GameCard) TransformTo(catalogID int) {
	g.CatalogID = catalogID
}

// AssignInstanceID sets a new instance id, remembering the old one so
// identity events referring to it still resolve to this card.
func (g *GameCard) AssignInstanceID(instanceID int) {
	if g.InstanceID != UnsetID && g.InstanceID != instanceID {
		g.PreviousIIDs = append(g.PreviousIIDs, g.InstanceID)
	}
	g.InstanceID = instanceID
}

// HasInstanceID reports whether the card currently has, or has ever had,
// the given instance id.
func (g *GameCard) HasInstanceID(instanceID int) bool {
	if g.InstanceID == instanceID {
		return true
	}
	for _, iid := range g.PreviousIIDs {
		if iid == instanceID {
			return true
		}
	}
	return false
}

// ToRecord serializes the card.
func (g *GameCard) ToRecord() CardRecord {
	return CardRecord{
		Name:          g.Name,
		PrettyName:    g.PrettyName,
		Cost:          g.Cost,
		ColorIdentity: g.ColorIdentity,
		CardType:      g.CardType,
		SubTypes:      g.SubTypes,
		Set:           g.Set,
		SetNumber:     g.SetNumber,
		CatalogID:     g.CatalogID,
		OwnerSeatID:   g.OwnerSeatID,
		InstanceID:    g.InstanceID,
	}
}

// CardFromRecord rebuilds an in-game card from its serialized form.
func CardFromRecord(rec CardRecord) *GameCard {
	g := &GameCard{
		Card: Card{
			Name:          rec.Name,
			PrettyName:    rec.PrettyName,
			Cost:          rec.Cost,
			ColorIdentity: rec.ColorIdentity,
			CardType:      rec.CardType,
			SubTypes:      rec.SubTypes,
			Set:           rec.Set,
			SetNumber:     rec.SetNumber,
			CatalogID:     rec.CatalogID,
		},
		OwnerSeatID: rec.OwnerSeatID,
		InstanceID:  rec.InstanceID,
	}
	if g.OwnerSeatID == 0 {
		g.OwnerSeatID = UnsetID
	}
	if g.InstanceID == 0 {
		g.InstanceID = UnsetID
	}
	return g
}
