package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeckStore struct {
	db *pgxpool.Pool
}

func NewDeckStore(db *pgxpool.Pool) *DeckStore {
	return &DeckStore{db: db}
}

// SaveDeck upserts a deck by deck_id, storing the full card records as
// JSONB so the deck round-trips without the catalog.
func (s *DeckStore) SaveDeck(ctx context.Context, rec models.DeckRecord) error {
	cards, err := json.Marshal(rec.Cards)
	if err != nil {
		return fmt.Errorf("failed to marshal deck cards: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO decks (deck_id, pool_name, cards, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (deck_id)
		DO UPDATE SET pool_name = EXCLUDED.pool_name, cards = EXCLUDED.cards, updated_at = NOW()
	`, rec.DeckID, rec.PoolName, cards)
	if err != nil {
		return fmt.Errorf("failed to save deck %s: %w", rec.DeckID, err)
	}

	return nil
}

// GetDeck loads one saved deck. Returns nil when the deck does not exist.
func (s *DeckStore) GetDeck(ctx context.Context, deckID string) (*models.DeckRecord, error) {
	rec := &models.DeckRecord{}
	var cards []byte

	err := s.db.QueryRow(ctx, `
		SELECT deck_id, pool_name, cards
		FROM decks
		WHERE deck_id = $1
	`, deckID).Scan(&rec.DeckID, &rec.PoolName, &cards)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // deck not found
		}
		return nil, fmt.Errorf("failed to get deck %s: %w", deckID, err)
	}

	if err := json.Unmarshal(cards, &rec.Cards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck %s cards: %w", deckID, err)
	}

	return rec, nil
}

// ListDecks returns every saved deck, most recently updated first.
func (s *DeckStore) ListDecks(ctx context.Context) ([]models.DeckRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT deck_id, pool_name, cards
		FROM decks
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []models.DeckRecord
	for rows.Next() {
		rec := models.DeckRecord{}
		var cards []byte
		if err := rows.Scan(&rec.DeckID, &rec.PoolName, &cards); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		if err := json.Unmarshal(cards, &rec.Cards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deck %s cards: %w", rec.DeckID, err)
		}
		decks = append(decks, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decks: %w", err)
	}

	return decks, nil
}

// DeleteDeck removes a saved deck.
func (s *DeckStore) DeleteDeck(ctx context.Context, deckID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM decks WHERE deck_id = $1`, deckID)
	if err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", deckID, err)
	}
	return nil
}
