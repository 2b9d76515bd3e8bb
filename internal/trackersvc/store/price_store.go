package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PriceStore struct {
	db *pgxpool.Pool
}

func NewPriceStore(db *pgxpool.Pool) *PriceStore {
	return &PriceStore{db: db}
}

// GetPriceByCatalogID returns the latest known price for a catalog id.
// Unknown cards price at zero.
func (s *PriceStore) GetPriceByCatalogID(ctx context.Context, catalogID int) (decimal.Decimal, error) {
	var price decimal.Decimal

	err := s.db.QueryRow(ctx, `
        SELECT usd
        FROM card_prices
        WHERE catalog_id = $1
        ORDER BY quoted_at DESC
        LIMIT 1
    `, catalogID).Scan(&price)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get price for catalog id %d: %w", catalogID, err)
	}

	return price, nil
}

// GetPrices returns the latest price per catalog id for a batch of ids.
func (s *PriceStore) GetPrices(ctx context.Context, catalogIDs []int) (map[int]decimal.Decimal, error) {
	rows, err := s.db.Query(ctx, `
        SELECT DISTINCT ON (catalog_id) catalog_id, usd
        FROM card_prices
        WHERE catalog_id = ANY($1)
        ORDER BY catalog_id, quoted_at DESC
    `, catalogIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[int]decimal.Decimal, len(catalogIDs))
	for rows.Next() {
		var id int
		var usd decimal.Decimal
		if err := rows.Scan(&id, &usd); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices[id] = usd
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prices: %w", err)
	}

	return prices, nil
}
