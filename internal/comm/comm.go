package comm

import (
	"encoding/json"

	"github.com/arenalog/tracker-services/internal/trackersvc/models"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "match-started", "game-object"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// MatchStart announces a new game instance seen by the log-parser client.
type MatchStart struct {
	MatchID string `json:"match_id"`
	SeatID  int    `json:"seat_id"` // the tracked player's seat
}

// GameObject is one (instance id, catalog id) observation from the
// game-event stream.
type GameObject struct {
	MatchID     string `json:"match_id"`
	ZoneID      int    `json:"zone_id"`
	InstanceID  int    `json:"instance_id"`
	CatalogID   int    `json:"catalog_id"`
	OwnerSeatID int    `json:"owner_seat_id"`
}

// ZoneTransfer reports a card moving between zones.
type ZoneTransfer struct {
	MatchID    string `json:"match_id"`
	InstanceID int    `json:"instance_id"`
	FromZoneID int    `json:"from_zone_id"`
	ToZoneID   int    `json:"to_zone_id"`
}

// DeckSubmission carries the deck a seat brought into a match.
type DeckSubmission struct {
	MatchID string            `json:"match_id"`
	SeatID  int               `json:"seat_id"`
	Deck    models.DeckRecord `json:"deck"`
}

// MatchEnd closes a match; the tracker snapshots and forgets it.
type MatchEnd struct {
	MatchID string `json:"match_id"`
}

// ZoneUpdate is pushed to overlay clients after an event changed a zone.
type ZoneUpdate struct {
	MatchID string      `json:"match_id"`
	ZoneID  int         `json:"zone_id"`
	Name    string      `json:"name"`
	Counts  map[int]int `json:"counts"` // catalog id -> copies in zone
	Total   int         `json:"total"`
}

// DeckData is the deck payload returned to clients.
type DeckData struct {
	Deck  models.DeckRecord `json:"deck"`
	Value string            `json:"value,omitempty"` // estimated price, fixed 2 decimals
}
