package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/arenalog/tracker-services/configs"
	mongodb "github.com/arenalog/tracker-services/internal/db"
	nats "github.com/arenalog/tracker-services/internal/nats"
	"github.com/arenalog/tracker-services/internal/trackersvc/broker"
	svcconfig "github.com/arenalog/tracker-services/internal/trackersvc/config"
	"github.com/arenalog/tracker-services/internal/trackersvc/db"
	handlers "github.com/arenalog/tracker-services/internal/trackersvc/handlers"
	"github.com/arenalog/tracker-services/internal/trackersvc/service"
	"github.com/arenalog/tracker-services/internal/trackersvc/store"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "tracker"

// finished matches are kept around for a week
const matchRetention = 7 * 24 * time.Hour

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// mongo for match snapshots
	mdb, cancelMongo, err := mongodb.ConnectToDB(svcconfig.Load().MongoUrl)
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer cancelMongo()
	mongodb.CreateTTLIndexForCollection(mdb, "match_snapshots")
	log.Printf("mongo connection established successfully")

	cardStore := store.NewCardStore(dbpool)
	cardService := service.NewCardService(cardStore)

	deckStore := store.NewDeckStore(dbpool)
	priceStore := store.NewPriceStore(dbpool)
	deckService := service.NewDeckService(deckStore, priceStore)

	matchStore := store.NewMatchStore(mdb, matchRetention)
	matchService := service.NewMatchService(matchStore, log.StandardLogger())

	// the catalog has to be in memory before any event arrives
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 60*time.Second)
	if err := cardService.LoadCatalog(loadCtx); err != nil {
		cancelLoad()
		log.Fatalf("Failed to load card catalog: %v", err)
	}
	cancelLoad()

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// init peer message broker
	broker := broker.NewBroker(n.Conn, cardService, deckService, matchService)

	// subscribe to socket service
	topic := "socket.service"
	sub, err := broker.SubscribeSocketService(topic)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, deckService, matchService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("TRACKER_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
