package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// fastLookupThreshold: numeric keys below this value only take the O(1)
// lookup path when the id is already known to the pool. Carried over from
// the upstream client protocol, where ids under 10000 overlap set numbers.
const fastLookupThreshold = 10000

var keyCleanRE = regexp.MustCompile(`[^0-9a-zA-Z_]`)

// SearchKey is a search input resolved once at the boundary: either a
// numeric key (catalog id or set number) or free text. Text that parses
// as an integer carries the numeric tag as well.
type SearchKey struct {
	raw     string
	num     int
	numeric bool
}

// NumericKey builds a key from a catalog id or set number.
func NumericKey(id int) SearchKey {
	return SearchKey{raw: strconv.Itoa(id), num: id, numeric: true}
}

// TextKey builds a key from user text. Numeric strings keep their id
// semantics, everything else is matched against card names.
func TextKey(s string) SearchKey {
	k := SearchKey{raw: s}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		k.num = n
		k.numeric = true
	}
	return k
}

func (k SearchKey) String() string { return k.raw }

// normalized returns the key lowered and stripped to [0-9a-zA-Z_],
// the same normalization card names are stored with.
func (k SearchKey) normalized() string {
	return keyCleanRE.ReplaceAllString(strings.ToLower(k.raw), "")
}

// Pool is an ordered container of in-game card references. Cards is the
// single source of truth for membership; a card belongs to exactly one
// pool at a time and moves between pools only through the transfer
// methods.
//
// lookup is a construction-time snapshot used to accelerate Search. It is
// deliberately NOT maintained across later mutation: cards added or
// removed after construction are only visible to the linear scans.
type Pool struct {
	Name  string
	Cards []*GameCard

	abilities map[int]string
	lookup    map[int]*GameCard
}

// NewPool builds a pool seeded with the given cards and ability side
// table. Both may be nil.
func NewPool(name string, cards []*GameCard, abilities map[int]string) *Pool {
	if abilities == nil {
		abilities = make(map[int]string)
	}
	p := &Pool{
		Name:      name,
		Cards:     cards,
		abilities: abilities,
		lookup:    make(map[int]*GameCard, len(cards)),
	}
	for _, c := range cards {
		p.lookup[c.CatalogID] = c
	}
	return p
}

// FromSets concatenates every card of the given sets, in set order then
// card order, into a new pool of in-game references.
func FromSets(name string, sets []*Set, abilities map[int]string) *Pool {
	var cards []*GameCard
	for _, s := range sets {
		for _, c := range s.Cards {
			cards = append(cards, NewGameCard(c))
		}
	}
	return NewPool(name, cards, abilities)
}

func (p *Pool) TotalCount() int {
	return len(p.Cards)
}

// CountOwnedBy counts the cards whose owner seat equals seat.
func (p *Pool) CountOwnedBy(seat int) int {
	n := 0
	for _, c := range p.Cards {
		if c.OwnerSeatID == seat {
			n++
		}
	}
	return n
}

// CountByID counts copies of a catalog id. Always a linear scan so the
// answer stays correct when the lookup snapshot is stale.
func (p *Pool) CountByID(catalogID int) int {
	n := 0
	for _, c := range p.Cards {
		if c.CatalogID == catalogID {
			n++
		}
	}
	return n
}

// GroupCards returns multiplicity per catalog id, for deck-list display.
func (p *Pool) GroupCards() map[int]int {
	grouped := make(map[int]int)
	for _, c := range p.Cards {
		grouped[c.CatalogID]++
	}
	return grouped
}

// TransferAllTo moves every card to other, preserving order, leaving
// this pool empty.
func (p *Pool) TransferAllTo(other *Pool) {
	other.Cards = append(other.Cards, p.Cards...)
	p.Cards = p.Cards[:0]
}

// TransferCardsTo moves the given cards one at a time. Not transactional:
// if a removal fails, the cards before it stay moved and the error is
// returned as-is. Callers must treat partial transfer as a real outcome.
func (p *Pool) TransferCardsTo(cards []*GameCard, other *Pool) error {
	for _, c := range cards {
		if err := p.TransferCardTo(c, other); err != nil {
			return err
		}
	}
	return nil
}

// TransferCardTo removes card from this pool and appends it to other.
func (p *Pool) TransferCardTo(card *GameCard, other *Pool) error {
	for i, c := range p.Cards {
		if c == card {
			p.Cards = append(p.Cards[:i], p.Cards[i+1:]...)
			other.Cards = append(other.Cards, card)
			return nil
		}
	}
	return fmt.Errorf("pool %q does not contain card %q (catalog id %d): %w",
		p.Name, card.Name, card.CatalogID, ErrNotFound)
}

// TransferMatchTo resolves key to a single card via FindOne and moves it
// to other.
func (p *Pool) TransferMatchTo(key SearchKey, other *Pool) error {
	card, err := p.FindOne(key)
	if err != nil {
		return err
	}
	return p.TransferCardTo(card, other)
}

// FindOne resolves key to exactly one card. It fails with ErrNotFound
// when nothing matches and ErrAmbiguousKey when more than one distinct
// card does.
func (p *Pool) FindOne(key SearchKey) (*GameCard, error) {
	matches := p.Search(key, false)
	uniq := make(map[*GameCard]struct{}, len(matches))
	for _, c := range matches {
		uniq[c] = struct{}{}
	}
	switch len(uniq) {
	case 0:
		return nil, fmt.Errorf("pool %q does not contain %q: %w", p.Name, key, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("pool %q search %q matched %d cards: %w",
			p.Name, key, len(uniq), ErrAmbiguousKey)
	}
}

// Search returns the cards matching key, in this precedence:
//
//  1. a numeric key already known to the pool (or in the 10000+ range)
//     returns the lookup snapshot hit immediately;
//  2. an exact numeric match on catalog id or set number during the scan
//     returns that single card;
//  3. an exact normalized-name match returns that single card when
//     exactMatchReturnsSingle is set, otherwise it accumulates like a
//     substring hit;
//  4. substring matches on the normalized name accumulate in pool order.
//
// Zero is never treated as a numeric key.
func (p *Pool) Search(key SearchKey, exactMatchReturnsSingle bool) []*GameCard {
	useNum := key.numeric && key.num != 0
	if useNum && key.num < fastLookupThreshold && !p.knownID(key.num) {
		useNum = false
	}
	if useNum {
		if hit, ok := p.lookup[key.num]; ok {
			return []*GameCard{hit}
		}
	}

	clean := key.normalized()
	var results []*GameCard
	for _, c := range p.Cards {
		if useNum && (key.num == c.CatalogID || key.num == c.SetNumber) {
			return []*GameCard{c}
		}
		if clean == c.Name && exactMatchReturnsSingle {
			return []*GameCard{c}
		}
		if strings.Contains(c.Name, clean) {
			results = append(results, c)
		}
	}
	return results
}

// knownID reports whether id was present at construction time, either as
// a card or as an ability.
func (p *Pool) knownID(id int) bool {
	if _, ok := p.lookup[id]; ok {
		return true
	}
	_, ok := p.abilities[id]
	return ok
}

// Ability returns the ability text registered for id, if any.
func (p *Pool) Ability(id int) (string, bool) {
	text, ok := p.abilities[id]
	return text, ok
}

func (p *Pool) String() string {
	return fmt.Sprintf("<Pool %s: %d cards>", p.Name, len(p.Cards))
}
