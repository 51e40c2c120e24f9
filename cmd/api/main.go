package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"guestlist/internal/auth"
	authapi "guestlist/internal/auth/api"
	"guestlist/internal/config"
	"guestlist/internal/database"
	"guestlist/internal/database/migrations"
	eventsapi "guestlist/internal/events/api"
	eventsdb "guestlist/internal/events/db"
	events "guestlist/internal/events/service"
	guestsapi "guestlist/internal/guests/api"
	guestsdb "guestlist/internal/guests/db"
	guests "guestlist/internal/guests/service"
	"guestlist/internal/kafka"
	"guestlist/internal/logger"
	"guestlist/internal/pagination"
	ticketsapi "guestlist/internal/tickets/api"
	ticketsdb "guestlist/internal/tickets/db"
	"guestlist/internal/tickets/qr"
	tickets "guestlist/internal/tickets/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.NewWithFile()
	if err != nil {
		log = logger.New()
		log.Warn("LOGGER", "file sink unavailable: "+err.Error())
	}
	defer log.Close()

	bunDB, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()
	log.Info("DATABASE", "postgres connection successful")

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, cfg.Database.MigrationsDir, log)
		if err := runner.Up(); err != nil {
			log.Fatal("MIGRATE", err.Error())
		}
	}

	pager := pagination.New(cfg.PerPage)

	eventDB := &eventsdb.DB{Bun: bunDB}
	guestDB := &guestsdb.DB{Bun: bunDB}
	ticketDB := &ticketsdb.DB{Bun: bunDB}

	eventService := events.NewService(eventDB, pager)
	guestService := guests.NewService(guestDB, pager)
	ticketService := tickets.NewService(ticketDB, eventDB, guestDB, pager)

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		defer producer.Close()
		ticketService.Audit = producer
		log.Info("KAFKA", "audit producer enabled")
	}

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	denylist := auth.NewDenylist(cfg.Redis.Addr)
	authService := auth.NewService(&auth.UserDB{Bun: bunDB}, issuer, denylist)

	authHandler := authapi.NewHandler(authService, cfg, log)
	eventHandler := eventsapi.NewHandler(eventService, log)
	guestHandler := guestsapi.NewHandler(guestService, log)
	ticketHandler := ticketsapi.NewHandler(ticketService, qr.NewGenerator(256), log)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(issuer, denylist))

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.List)
				r.Post("/", eventHandler.Create)
				r.Get("/{eventID}", eventHandler.Get)
				r.Put("/{eventID}", eventHandler.Update)
				r.Delete("/{eventID}", eventHandler.Delete)

				r.Get("/{eventID}/tickets", ticketHandler.List)
				r.Post("/{eventID}/guests/{guestID}/tickets", ticketHandler.Issue)
				r.Get("/{eventID}/tickets/{ticketID}", ticketHandler.Get)
				r.Get("/{eventID}/tickets/{ticketID}/qr", ticketHandler.GetQR)
				r.Put("/{eventID}/tickets/{ticketID}", ticketHandler.Update)
				r.Delete("/{eventID}/tickets/{ticketID}", ticketHandler.Delete)
			})

			r.Route("/guests", func(r chi.Router) {
				r.Get("/", guestHandler.List)
				r.Post("/", guestHandler.Create)
				r.Get("/{guestID}", guestHandler.Get)
				r.Put("/{guestID}", guestHandler.Update)
				r.Delete("/{guestID}", guestHandler.Delete)
			})
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "guestlist API on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "shutdown complete")
}
