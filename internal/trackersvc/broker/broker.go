package broker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/arenalog/tracker-services/internal/comm"
	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/arenalog/tracker-services/internal/trackersvc/service"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// topic the socket service listens on for pushes to overlay clients
const socketTopic = "tracker.service"

type Broker struct {
	Conn         *nats.Conn
	CardService  *service.CardService
	DeckService  *service.DeckService
	MatchService *service.MatchService
}

func NewBroker(nc *nats.Conn, cardService *service.CardService,
	deckService *service.DeckService, matchService *service.MatchService) *Broker {
	return &Broker{
		Conn:         nc,
		CardService:  cardService,
		DeckService:  deckService,
		MatchService: matchService,
	}
}

// SubscribeSocketService consumes the event stream forwarded by the
// socket service from log-parser clients.
func (b *Broker) SubscribeSocketService(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handles message coming from socket
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	err := json.Unmarshal(msgNat.Data, &msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case "match-started":
		start := comm.MatchStart{}
		if err := json.Unmarshal(msg.Data, &start); err != nil {
			log.Errorf("Error %s", err)
			return
		}
		b.MatchService.StartMatch(start.MatchID, start.SeatID)

	case "deck-submission":
		sub := comm.DeckSubmission{}
		if err := json.Unmarshal(msg.Data, &sub); err != nil {
			log.Errorf("Error %s", err)
			return
		}
		if err := b.MatchService.SubmitDeck(sub.MatchID, sub.SeatID, sub.Deck); err != nil {
			log.Errorf("Error [MatchService.SubmitDeck] %s", err)
		}

	case "game-object":
		ev := comm.GameObject{}
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Errorf("Error %s", err)
			return
		}
		update, err := b.MatchService.HandleGameObject(ev)
		if err != nil {
			var conflict *models.IdentityConflictError
			if errors.As(err, &conflict) {
				// upstream protocol violation, drop the event loudly
				log.Errorf("Error identity conflict in match %s: %s", ev.MatchID, err)
				return
			}
			log.Errorf("Error [MatchService.HandleGameObject] %s", err)
			return
		}
		b.PublishZoneUpdate(update, msg.SocketId)

	case "zone-transfer":
		ev := comm.ZoneTransfer{}
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Errorf("Error %s", err)
			return
		}
		update, err := b.MatchService.HandleZoneTransfer(ev)
		if err != nil {
			log.Errorf("Error [MatchService.HandleZoneTransfer] %s", err)
			return
		}
		b.PublishZoneUpdate(update, msg.SocketId)

	case "seat-assigned":
		var request struct {
			MatchID string `json:"match_id"`
			SeatID  int    `json:"seat_id"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error %s", err)
			return
		}
		if err := b.MatchService.AssignSeat(request.MatchID, request.SeatID); err != nil {
			log.Errorf("Error [MatchService.AssignSeat] %s", err)
		}

	case "match-ended":
		end := comm.MatchEnd{}
		if err := json.Unmarshal(msg.Data, &end); err != nil {
			log.Errorf("Error %s", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := b.MatchService.EndMatch(ctx, end.MatchID); err != nil {
			log.Errorf("Error [MatchService.EndMatch] %s", err)
		}

	case "get-deck":
		var request struct {
			DeckID string `json:"deck_id"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		deck, err := b.DeckService.GetDeck(ctx, request.DeckID)
		if err != nil {
			log.Errorf("Error [DeckService.GetDeck] %s", err)
			return
		}
		if deck == nil {
			log.Warnf("deck %s not found", request.DeckID)
			return
		}
		b.PublishDeckResponse(comm.DeckData{Deck: deck.ToSerializable(true)}, msg.SocketId)

	case "find-card":
		var request struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error %s", err)
			return
		}

		card, err := b.CardService.FindCard(models.TextKey(request.Query))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrAmbiguousKey) {
				log.Warnf("find-card %q: %s", request.Query, err)
				return
			}
			log.Errorf("Error [CardService.FindCard] %s", err)
			return
		}
		b.PublishCardResponse(card.ToRecord(), msg.SocketId)

	default:
		log.Warnf("unknown event received: %s", msg.Type)
	}
}

func (b *Broker) PublishZoneUpdate(update comm.ZoneUpdate, socketId string) {
	b.publish("zone-update", update, socketId)
}

func (b *Broker) PublishDeckResponse(deck comm.DeckData, socketId string) {
	b.publish("deck-response", deck, socketId)
}

func (b *Broker) PublishCardResponse(card models.CardRecord, socketId string) {
	b.publish("card-response", card, socketId)
}

func (b *Broker) publish(msgType string, payload interface{}, socketId string) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Error marshaling %s payload %s", msgType, err)
		return
	}

	msg := comm.WSMessage{
		Type:     msgType,
		Data:     data,
		SocketId: socketId,
	}

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error marshaling %s message %s", msgType, err)
		return
	}

	if err := b.Conn.Publish(socketTopic, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", socketTopic, err)
	}
}
