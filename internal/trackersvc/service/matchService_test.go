package service

import (
	"context"
	"testing"

	"github.com/arenalog/tracker-services/internal/comm"
	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	zoneHand        = 31
	zoneBattlefield = 28
)

func deckRecord() models.DeckRecord {
	card := func(pretty string, catalogID int) models.CardRecord {
		return models.CardRecord{
			Name:       models.NormalizeCardName(pretty),
			PrettyName: pretty,
			Set:        "TST",
			CatalogID:  catalogID,
		}
	}
	return models.DeckRecord{
		DeckID:   "deck-123",
		PoolName: "Burn",
		Cards: []models.CardRecord{
			card("Lightning Bolt", 68480),
			card("Lightning Bolt", 68480),
			card("Shock", 68481),
		},
	}
}

func startedMatch(t *testing.T) *MatchService {
	t.Helper()
	s := NewMatchService(nil, nil)
	s.StartMatch("match-1", 1)
	require.NoError(t, s.SubmitDeck("match-1", 1, deckRecord()))
	return s
}

func TestMatchServiceUntrackedMatch(t *testing.T) {
	s := NewMatchService(nil, nil)
	_, err := s.HandleGameObject(comm.GameObject{MatchID: "nope"})
	assert.Error(t, err)
	assert.Error(t, s.SubmitDeck("nope", 1, deckRecord()))
}

func TestMatchServiceGameObjectDrawsFromLibrary(t *testing.T) {
	s := startedMatch(t)

	// a bolt leaves the library for the hand
	update, err := s.HandleGameObject(comm.GameObject{
		MatchID:     "match-1",
		ZoneID:      zoneHand,
		InstanceID:  201,
		CatalogID:   68480,
		OwnerSeatID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, update.Total)
	assert.Equal(t, map[int]int{68480: 1}, update.Counts)

	// library shrank by exactly the drawn copy
	m := s.matches["match-1"]
	assert.Equal(t, 2, m.Libraries[1].TotalCount())
	assert.Equal(t, 1, m.Libraries[1].CountByID(68480))
}

func TestMatchServiceGameObjectUnknownCard(t *testing.T) {
	s := startedMatch(t)

	// opponent card, no library to draw from
	update, err := s.HandleGameObject(comm.GameObject{
		MatchID:     "match-1",
		ZoneID:      zoneBattlefield,
		InstanceID:  301,
		CatalogID:   70000,
		OwnerSeatID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{70000: 1}, update.Counts)
}

func TestMatchServiceIdentityConflictSurfaces(t *testing.T) {
	s := startedMatch(t)

	_, err := s.HandleGameObject(comm.GameObject{
		MatchID: "match-1", ZoneID: zoneBattlefield,
		InstanceID: 301, CatalogID: 70000, OwnerSeatID: 2,
	})
	require.NoError(t, err)

	_, err = s.HandleGameObject(comm.GameObject{
		MatchID: "match-1", ZoneID: zoneBattlefield,
		InstanceID: 301, CatalogID: 70001, OwnerSeatID: 2,
	})
	var conflict *models.IdentityConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestMatchServiceZoneTransfer(t *testing.T) {
	s := startedMatch(t)

	_, err := s.HandleGameObject(comm.GameObject{
		MatchID: "match-1", ZoneID: zoneHand,
		InstanceID: 201, CatalogID: 68480, OwnerSeatID: 1,
	})
	require.NoError(t, err)

	update, err := s.HandleZoneTransfer(comm.ZoneTransfer{
		MatchID:    "match-1",
		InstanceID: 201,
		FromZoneID: zoneHand,
		ToZoneID:   zoneBattlefield,
	})
	require.NoError(t, err)
	assert.Equal(t, zoneBattlefield, update.ZoneID)
	assert.Equal(t, 1, update.Total)

	hand, err := s.ZoneState("match-1", zoneHand)
	require.NoError(t, err)
	assert.Equal(t, 0, hand.Total)

	_, err = s.HandleZoneTransfer(comm.ZoneTransfer{
		MatchID: "match-1", InstanceID: 999,
		FromZoneID: zoneHand, ToZoneID: zoneBattlefield,
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMatchServiceEndMatchForgets(t *testing.T) {
	s := startedMatch(t)
	require.NoError(t, s.EndMatch(context.Background(), "match-1"))

	_, err := s.HandleGameObject(comm.GameObject{MatchID: "match-1"})
	assert.Error(t, err)
}

func TestMatchServiceSnapshotWithoutStore(t *testing.T) {
	s := startedMatch(t)
	require.NoError(t, s.EndMatch(context.Background(), "match-1"))

	snap, err := s.Snapshot(context.Background(), "match-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}
