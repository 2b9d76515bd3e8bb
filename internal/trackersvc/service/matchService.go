package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/arenalog/tracker-services/internal/comm"
	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/arenalog/tracker-services/internal/trackersvc/store"
	log "github.com/sirupsen/logrus"
)

// TrackedMatch is the live state of one game instance: zones by zone id
// plus the play libraries spawned from submitted decks, by owner seat.
type TrackedMatch struct {
	MatchID   string
	SeatID    int
	Zones     map[int]*models.Zone
	Libraries map[int]*models.Library
}

// MatchService applies the game-event stream to live matches. The card
// containers themselves are single-threaded; all mutual exclusion lives
// here, one mutex over all tracked matches.
type MatchService struct {
	mu      sync.Mutex
	matches map[string]*TrackedMatch

	matchStore *store.MatchStore
	logger     log.FieldLogger
}

func NewMatchService(matchStore *store.MatchStore, logger log.FieldLogger) *MatchService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &MatchService{
		matches:    make(map[string]*TrackedMatch),
		matchStore: matchStore,
		logger:     logger,
	}
}

// StartMatch begins tracking a match. Starting an already-tracked match
// resets it.
func (s *MatchService) StartMatch(matchID string, seatID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches[matchID] = &TrackedMatch{
		MatchID:   matchID,
		SeatID:    seatID,
		Zones:     make(map[int]*models.Zone),
		Libraries: make(map[int]*models.Library),
	}
	s.logger.Infof("tracking match %s for seat %d", matchID, seatID)
}

// SubmitDeck spawns the play library for a seat's submitted deck.
func (s *MatchService) SubmitDeck(matchID string, seatID int, rec models.DeckRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s is not tracked", matchID)
	}

	library := models.DeckFromRecord(rec).GenerateLibrary(seatID)
	library.SetSeat(seatID)
	m.Libraries[seatID] = library
	s.logger.Infof("match %s: seat %d submitted deck %s (%d cards)",
		matchID, seatID, library.DeckID, library.TotalCount())

	return nil
}

// HandleGameObject applies one (instance id, catalog id) observation:
// the card is located by instance id across the match's containers,
// moved into the observed zone if needed, and identity-matched there.
// A card never seen before enters the zone as a fresh unknown record.
func (s *MatchService) HandleGameObject(ev comm.GameObject) (comm.ZoneUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[ev.MatchID]
	if !ok {
		return comm.ZoneUpdate{}, fmt.Errorf("match %s is not tracked", ev.MatchID)
	}

	zone := s.ensureZone(m, ev.ZoneID)

	pool, card := s.findByInstance(m, ev.InstanceID)
	switch {
	case pool == &zone.Pool:
		// already where the game says it is
	case card != nil:
		if err := pool.TransferCardTo(card, &zone.Pool); err != nil {
			return comm.ZoneUpdate{}, err
		}
	default:
		if lib, ok := m.Libraries[ev.OwnerSeatID]; ok {
			// drawing from the library resolves the identity there first
			if err := lib.MatchInstanceToCard(ev.InstanceID, ev.CatalogID); err != nil {
				return comm.ZoneUpdate{}, err
			}
			if p, c := s.findByInstance(m, ev.InstanceID); c != nil {
				if p != &zone.Pool {
					if err := p.TransferCardTo(c, &zone.Pool); err != nil {
						return comm.ZoneUpdate{}, err
					}
				}
				break
			}
		}
		fresh := &models.GameCard{
			Card:        models.Card{CatalogID: models.UnsetID},
			OwnerSeatID: ev.OwnerSeatID,
			InstanceID:  ev.InstanceID,
		}
		zone.Cards = append(zone.Cards, fresh)
	}

	if err := zone.MatchInstanceToCard(ev.InstanceID, ev.CatalogID); err != nil {
		return comm.ZoneUpdate{}, err
	}

	return zoneUpdate(ev.MatchID, ev.ZoneID, &zone.Pool), nil
}

// HandleZoneTransfer moves a card between zones by instance id.
func (s *MatchService) HandleZoneTransfer(ev comm.ZoneTransfer) (comm.ZoneUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[ev.MatchID]
	if !ok {
		return comm.ZoneUpdate{}, fmt.Errorf("match %s is not tracked", ev.MatchID)
	}

	to := s.ensureZone(m, ev.ToZoneID)
	pool, card := s.findByInstance(m, ev.InstanceID)
	if card == nil {
		return comm.ZoneUpdate{}, fmt.Errorf("match %s has no card with instance id %d: %w",
			ev.MatchID, ev.InstanceID, models.ErrNotFound)
	}

	if pool != &to.Pool {
		if err := pool.TransferCardTo(card, &to.Pool); err != nil {
			return comm.ZoneUpdate{}, err
		}
	}

	return zoneUpdate(ev.MatchID, ev.ToZoneID, &to.Pool), nil
}

// AssignSeat sets the tracked player's seat once the game reveals it,
// stamping the seat's library cards.
func (s *MatchService) AssignSeat(matchID string, seatID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s is not tracked", matchID)
	}

	m.SeatID = seatID
	if lib, ok := m.Libraries[seatID]; ok {
		lib.SetSeat(seatID)
	}
	return nil
}

// EndMatch archives the final zone state and forgets the match.
func (s *MatchService) EndMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	m, ok := s.matches[matchID]
	if ok {
		delete(s.matches, matchID)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("match %s is not tracked", matchID)
	}

	snap := store.MatchSnapshot{
		MatchID: matchID,
		SeatID:  m.SeatID,
	}
	for id, z := range m.Zones {
		snap.Zones = append(snap.Zones, zoneUpdate(matchID, id, &z.Pool))
	}
	for _, lib := range m.Libraries {
		snap.Zones = append(snap.Zones, zoneUpdate(matchID, lib.ZoneID, &lib.Pool))
	}

	if s.matchStore == nil {
		return nil
	}
	return s.matchStore.SaveSnapshot(ctx, snap)
}

// Snapshot returns the stored snapshot of a finished match, or nil when
// none exists (match unknown, still live, or past retention).
func (s *MatchService) Snapshot(ctx context.Context, matchID string) (*store.MatchSnapshot, error) {
	if s.matchStore == nil {
		return nil, nil
	}
	return s.matchStore.GetSnapshot(ctx, matchID)
}

// ZoneState returns the current update payload for one zone.
func (s *MatchService) ZoneState(matchID string, zoneID int) (comm.ZoneUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return comm.ZoneUpdate{}, fmt.Errorf("match %s is not tracked", matchID)
	}
	z, ok := m.Zones[zoneID]
	if !ok {
		return comm.ZoneUpdate{}, fmt.Errorf("match %s has no zone %d: %w",
			matchID, zoneID, models.ErrNotFound)
	}
	return zoneUpdate(matchID, zoneID, &z.Pool), nil
}

func (s *MatchService) ensureZone(m *TrackedMatch, zoneID int) *models.Zone {
	if z, ok := m.Zones[zoneID]; ok {
		return z
	}
	z := models.NewZone(fmt.Sprintf("zone_%d", zoneID), zoneID, s.logger)
	m.Zones[zoneID] = z
	return z
}

// findByInstance locates a card across every container of the match.
func (s *MatchService) findByInstance(m *TrackedMatch, instanceID int) (*models.Pool, *models.GameCard) {
	for _, z := range m.Zones {
		for _, c := range z.Cards {
			if c.HasInstanceID(instanceID) {
				return &z.Pool, c
			}
		}
	}
	for _, lib := range m.Libraries {
		for _, c := range lib.Cards {
			if c.HasInstanceID(instanceID) {
				return &lib.Pool, c
			}
		}
	}
	return nil, nil
}

func zoneUpdate(matchID string, zoneID int, p *models.Pool) comm.ZoneUpdate {
	return comm.ZoneUpdate{
		MatchID: matchID,
		ZoneID:  zoneID,
		Name:    p.Name,
		Counts:  p.GroupCards(),
		Total:   p.TotalCount(),
	}
}
