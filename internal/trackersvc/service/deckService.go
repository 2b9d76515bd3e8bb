package service

import (
	"context"

	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/arenalog/tracker-services/internal/trackersvc/store"
	"github.com/shopspring/decimal"
)

type DeckService struct {
	deckStore  *store.DeckStore
	priceStore *store.PriceStore
}

func NewDeckService(deckStore *store.DeckStore, priceStore *store.PriceStore) *DeckService {
	return &DeckService{deckStore: deckStore, priceStore: priceStore}
}

// SaveDeck persists a deck in its full record form.
func (s *DeckService) SaveDeck(ctx context.Context, deck *models.Deck) error {
	return s.deckStore.SaveDeck(ctx, deck.ToSerializable(false))
}

// GetDeck loads a saved deck. Returns nil when unknown.
func (s *DeckService) GetDeck(ctx context.Context, deckID string) (*models.Deck, error) {
	rec, err := s.deckStore.GetDeck(ctx, deckID)
	if err != nil || rec == nil {
		return nil, err
	}
	return models.DeckFromRecord(*rec), nil
}

// ListDecks returns every saved deck in minimal form for listing UIs.
func (s *DeckService) ListDecks(ctx context.Context) ([]models.MinimalDeckRecord, error) {
	recs, err := s.deckStore.ListDecks(ctx)
	if err != nil {
		return nil, err
	}

	minimal := make([]models.MinimalDeckRecord, 0, len(recs))
	for _, rec := range recs {
		minimal = append(minimal, models.DeckFromRecord(rec).ToMinimal())
	}
	return minimal, nil
}

// DeleteDeck removes a saved deck.
func (s *DeckService) DeleteDeck(ctx context.Context, deckID string) error {
	return s.deckStore.DeleteDeck(ctx, deckID)
}

// CardPrice returns the latest known price for a single catalog id.
func (s *DeckService) CardPrice(ctx context.Context, catalogID int) (decimal.Decimal, error) {
	return s.priceStore.GetPriceByCatalogID(ctx, catalogID)
}

// DeckValue prices a deck: sum of latest price times copy count.
func (s *DeckService) DeckValue(ctx context.Context, deck *models.Deck) (decimal.Decimal, error) {
	counts := deck.GroupCards()

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}

	prices, err := s.priceStore.GetPrices(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for id, n := range counts {
		total = total.Add(prices[id].Mul(decimal.NewFromInt(int64(n))))
	}
	return total, nil
}
