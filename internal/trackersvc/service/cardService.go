package service

import (
	"context"
	"fmt"

	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/arenalog/tracker-services/internal/trackersvc/store"
	log "github.com/sirupsen/logrus"
)

// CardService owns the loaded card catalog: every set plus the all-cards
// pool built from them.
type CardService struct {
	store *store.CardStore

	sets    []*models.Set
	catalog *models.Pool
}

func NewCardService(store *store.CardStore) *CardService {
	return &CardService{store: store}
}

// LoadCatalog pulls every set and the ability table from the database
// and builds the all-cards pool. Called once at startup.
func (s *CardService) LoadCatalog(ctx context.Context) error {
	codes, err := s.store.ListSetCodes(ctx)
	if err != nil {
		return err
	}

	sets := make([]*models.Set, 0, len(codes))
	for _, code := range codes {
		set, err := s.store.GetSet(ctx, code)
		if err != nil {
			return err
		}
		sets = append(sets, set)
	}

	abilities, err := s.store.GetAbilities(ctx)
	if err != nil {
		return err
	}

	s.sets = sets
	s.catalog = models.FromSets("all_cards", sets, abilities)
	log.Infof("catalog loaded: %d sets, %d cards, %d abilities",
		len(sets), s.catalog.TotalCount(), len(abilities))

	return nil
}

// Catalog returns the all-cards pool.
func (s *CardService) Catalog() *models.Pool {
	return s.catalog
}

// FindCard resolves key to exactly one catalog card.
func (s *CardService) FindCard(key models.SearchKey) (*models.GameCard, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("catalog not loaded")
	}
	return s.catalog.FindOne(key)
}

// SearchCards returns every catalog card matching key.
func (s *CardService) SearchCards(key models.SearchKey) []*models.GameCard {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Search(key, false)
}
