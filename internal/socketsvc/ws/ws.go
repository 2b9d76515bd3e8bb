package ws

import (
	"encoding/json"
	"sync"

	"github.com/arenalog/tracker-services/internal/comm"
	"github.com/arenalog/tracker-services/internal/socketsvc/broker"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Ws struct {
	connMap  sync.Map // to keep track of socket connection with socketId
	matchMap sync.Map // to keep track of matchId with socketId
	Broker   *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from clients: overlay UIs join a match room,
// log-parser clients stream game events that go on to the tracker service.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "join-match":
		s.handleJoinMatch(socketId, message)
	case "match-started", "deck-submission", "game-object", "zone-transfer",
		"seat-assigned", "match-ended", "get-deck", "find-card":
		s.forwardToTracker(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) handleJoinMatch(socketId string, msg *comm.WSMessage) {
	var payload struct {
		MatchID string `json:"match_id"`
	}

	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_join_data Malformed join payload %s", err)
		return
	}

	if payload.MatchID == "" {
		log.Error("Invalid join payload: missing match id")
		return
	}

	s.StoreMatch(socketId, payload.MatchID)
	log.Infof("socket %s joined match %s", socketId, payload.MatchID)
}

// forwardToTracker publishes a client event to the tracker service.
func (s *Ws) forwardToTracker(socketId string, msg *comm.WSMessage) {
	msg.SocketId = socketId

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	topic := "socket.service"
	if err := s.Broker.Publish(topic, bytes); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", topic, err)
		return
	}

	log.Debugf("forwarded %s from socket %s to topic %s", msg.Type, socketId, topic)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) StoreMatch(socketId string, matchId string) {
	s.matchMap.Store(socketId, matchId)
}

func (s *Ws) GetMatch(socketId string) (string, bool) {
	match, ok := s.matchMap.Load(socketId)
	if !ok {
		return "", false
	}
	return match.(string), true
}

// GetMatchSockets returns every socket watching a match.
func (s *Ws) GetMatchSockets(matchId string) ([]string, bool) {
	var sockets []string
	found := false

	s.matchMap.Range(func(key, value interface{}) bool {
		if value.(string) == matchId {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.matchMap.Delete(socketId)
}
