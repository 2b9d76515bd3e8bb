package store

import (
	"context"
	"fmt"

	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

// ListSetCodes returns the catalog's set codes in release order.
func (s *CardStore) ListSetCodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT set_code
		FROM card_sets
		ORDER BY released_at, set_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list set codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan set code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read set codes: %w", err)
	}

	return codes, nil
}

// GetSet loads one expansion, cards in set-number order. The set's
// duplicate-id invariant is enforced while loading.
func (s *CardStore) GetSet(ctx context.Context, setCode string) (*models.Set, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, pretty_name, cost, color_identity, card_type, sub_types, set_code, set_number, catalog_id
		FROM cards
		WHERE set_code = $1
		ORDER BY set_number
	`, setCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get set %s: %w", setCode, err)
	}
	defer rows.Close()

	set, err := models.NewSet(setCode, nil)
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		card := &models.Card{}
		err := rows.Scan(
			&card.Name,
			&card.PrettyName,
			&card.Cost,
			&card.ColorIdentity,
			&card.CardType,
			&card.SubTypes,
			&card.Set,
			&card.SetNumber,
			&card.CatalogID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card in set %s: %w", setCode, err)
		}
		if err := set.Add(card); err != nil {
			return nil, fmt.Errorf("corrupt catalog for set %s: %w", setCode, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read set %s: %w", setCode, err)
	}

	return set, nil
}

// GetAbilities loads the ability text side table.
func (s *CardStore) GetAbilities(ctx context.Context) (map[int]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ability_id, text
		FROM abilities
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get abilities: %w", err)
	}
	defer rows.Close()

	abilities := make(map[int]string)
	for rows.Next() {
		var id int
		var text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("failed to scan ability: %w", err)
		}
		abilities[id] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read abilities: %w", err)
	}

	return abilities, nil
}
