package broker

import (
	"encoding/json"

	"github.com/arenalog/tracker-services/internal/comm"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn            *nats.Conn
	GetConnection   func(string) (*websocket.Conn, bool)
	GetMatchSockets func(string) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool),
	fncGetMatchSockets func(string) ([]string, bool)) *Broker {
	return &Broker{
		Conn:            conn,
		GetConnection:   fncGetConnection,
		GetMatchSockets: fncGetMatchSockets,
	}
}

// consume messages from the tracker service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// publish message to the tracker service
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// handleMessages receives messages from the tracker service
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "zone-update":
		b.broadcastToMatch(message)
	case "deck-response", "card-response":
		b.sendMessage(message)
	default:
		log.Error("Unknown message")
		return
	}
}

// broadcastToMatch fans a zone update out to every socket watching the
// match, falling back to the originating socket when nobody joined yet.
func (b *Broker) broadcastToMatch(m *comm.WSMessage) {
	update := comm.ZoneUpdate{}
	if err := json.Unmarshal(m.Data, &update); err != nil {
		log.Errorf("Error malformed zone update %s", err)
		return
	}

	sockets, ok := b.GetMatchSockets(update.MatchID)
	if !ok {
		b.sendMessage(m)
		return
	}

	for _, socketId := range sockets {
		if conn, ok := b.GetConnection(socketId); ok {
			if err := conn.WriteJSON(m); err != nil {
				log.Println(err)
			}
		}
	}
}

// send socket message to one web client
func (b *Broker) sendMessage(m *comm.WSMessage) {
	socketId := m.SocketId
	if conn, ok := b.GetConnection(socketId); ok {
		if err := conn.WriteJSON(m); err != nil {
			log.Println(err)
		}
	}
}
