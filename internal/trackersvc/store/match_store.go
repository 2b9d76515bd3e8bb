package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arenalog/tracker-services/internal/comm"
)

const matchCollection = "match_snapshots"

// MatchSnapshot is the archived final state of a tracked match, expiring
// via the collection's TTL index.
type MatchSnapshot struct {
	MatchID   string            `bson:"match_id"`
	SeatID    int               `bson:"seat_id"`
	Zones     []comm.ZoneUpdate `bson:"zones"`
	EndedAt   time.Time         `bson:"ended_at"`
	ExpiresAt time.Time         `bson:"expires_at"`
}

type MatchStore struct {
	db        *mongo.Database
	retention time.Duration
}

func NewMatchStore(db *mongo.Database, retention time.Duration) *MatchStore {
	return &MatchStore{db: db, retention: retention}
}

// SaveSnapshot archives a finished match.
func (s *MatchStore) SaveSnapshot(ctx context.Context, snap MatchSnapshot) error {
	snap.EndedAt = time.Now()
	snap.ExpiresAt = snap.EndedAt.Add(s.retention)

	_, err := s.db.Collection(matchCollection).InsertOne(ctx, snap)
	if err != nil {
		return fmt.Errorf("failed to save match snapshot %s: %w", snap.MatchID, err)
	}

	return nil
}

// GetSnapshot returns a match snapshot, or nil when expired or unknown.
func (s *MatchStore) GetSnapshot(ctx context.Context, matchID string) (*MatchSnapshot, error) {
	snap := &MatchSnapshot{}

	err := s.db.Collection(matchCollection).
		FindOne(ctx, bson.M{"match_id": matchID}, options.FindOne().SetSort(bson.M{"ended_at": -1})).
		Decode(snap)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match snapshot %s: %w", matchID, err)
	}

	return snap, nil
}
