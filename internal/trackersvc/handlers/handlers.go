package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/arenalog/tracker-services/internal/comm"
	"github.com/arenalog/tracker-services/internal/trackersvc/models"
	"github.com/arenalog/tracker-services/internal/trackersvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth    *jwtauth.JWTAuth
	cardService  *service.CardService
	deckService  *service.DeckService
	matchService *service.MatchService
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func NewHandler(cardService *service.CardService, deckService *service.DeckService,
	matchService *service.MatchService) *Handler {
	return &Handler{
		cardService:  cardService,
		deckService:  deckService,
		matchService: matchService,
	}
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "tracker service is running at port " + os.Getenv("TRACKER_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}

// ListDecksHandler returns every saved deck in minimal form.
func (h *Handler) ListDecksHandler(w http.ResponseWriter, r *http.Request) {
	decks, err := h.deckService.ListDecks(r.Context())
	if err != nil {
		log.Errorf("Error [DeckService.ListDecks] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to list decks"})
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: decks})
}

// GetDeckHandler returns one saved deck, collapsed to counted groups
// when ?counted=true.
func (h *Handler) GetDeckHandler(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	deck, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		log.Errorf("Error [DeckService.GetDeck] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to get deck"})
		return
	}
	if deck == nil {
		h.CreateResponse(w, Response{Code: 404, Error: "deck not found"})
		return
	}

	counted := r.URL.Query().Get("counted") == "true"
	h.CreateResponse(w, Response{Code: 200, Data: deck.ToSerializable(counted)})
}

// ImportDeckHandler saves a deck posted in full record form.
func (h *Handler) ImportDeckHandler(w http.ResponseWriter, r *http.Request) {
	var rec models.DeckRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.CreateResponse(w, Response{Code: 400, Error: "invalid deck record"})
		return
	}
	if rec.DeckID == "" {
		h.CreateResponse(w, Response{Code: 400, Error: "deck_id is required"})
		return
	}

	deck := models.DeckFromRecord(rec)
	if err := h.deckService.SaveDeck(r.Context(), deck); err != nil {
		log.Errorf("Error [DeckService.SaveDeck] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to save deck"})
		return
	}

	h.CreateResponse(w, Response{Code: 201, Data: deck.ToMinimal()})
}

// DeleteDeckHandler removes a saved deck.
func (h *Handler) DeleteDeckHandler(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	if err := h.deckService.DeleteDeck(r.Context(), deckID); err != nil {
		log.Errorf("Error [DeckService.DeleteDeck] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to delete deck"})
		return
	}

	h.CreateResponse(w, Response{Code: 200, Message: "deck deleted"})
}

// DeckValueHandler prices a saved deck.
func (h *Handler) DeckValueHandler(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	deck, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		log.Errorf("Error [DeckService.GetDeck] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to get deck"})
		return
	}
	if deck == nil {
		h.CreateResponse(w, Response{Code: 404, Error: "deck not found"})
		return
	}

	value, err := h.deckService.DeckValue(r.Context(), deck)
	if err != nil {
		log.Errorf("Error [DeckService.DeckValue] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to price deck"})
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: comm.DeckData{
		Deck:  deck.ToSerializable(true),
		Value: value.StringFixed(2),
	}})
}

// CardPriceHandler returns the latest price for one catalog id.
func (h *Handler) CardPriceHandler(w http.ResponseWriter, r *http.Request) {
	catalogID, err := strconv.Atoi(chi.URLParam(r, "catalogID"))
	if err != nil {
		h.CreateResponse(w, Response{Code: 400, Error: "invalid catalog id"})
		return
	}

	price, err := h.deckService.CardPrice(r.Context(), catalogID)
	if err != nil {
		log.Errorf("Error [DeckService.CardPrice] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to price card"})
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: price.StringFixed(2)})
}

// MatchSnapshotHandler returns the retained snapshot of a finished match.
func (h *Handler) MatchSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	snap, err := h.matchService.Snapshot(r.Context(), matchID)
	if err != nil {
		log.Errorf("Error [MatchService.Snapshot] %s", err)
		h.CreateResponse(w, Response{Code: 500, Error: "failed to get match"})
		return
	}
	if snap == nil {
		h.CreateResponse(w, Response{Code: 404, Error: "match not found"})
		return
	}

	h.CreateResponse(w, Response{Code: 200, Data: snap})
}

// SearchCardsHandler resolves ?q= against the loaded catalog.
func (h *Handler) SearchCardsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.CreateResponse(w, Response{Code: 400, Error: "q is required"})
		return
	}

	cards := h.cardService.SearchCards(models.TextKey(q))
	records := make([]models.CardRecord, 0, len(cards))
	for _, c := range cards {
		records = append(records, c.ToRecord())
	}

	h.CreateResponse(w, Response{Code: 200, Data: records})
}
