// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/config"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/database"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/handler"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/registration"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/service"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	events := store.NewEventStore(pool)
	users := store.NewUserStore(pool)
	registrations := store.NewRegistrationStore(pool)
	engine := registration.NewEngine(events, users, registrations)
	eventSvc := service.NewEventService(events, users, registrations, engine)
	userSvc := service.NewUserService(users, events, registrations, engine)
	eventHandler := handler.NewEventHandler(eventSvc)
	userHandler := handler.NewUserHandler(userSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Logger)
	r.Use(handler.CORS(cfg.AllowedOrigins))

	r.Get("/", handler.Root)
	r.Get("/health", handler.HealthCheck)

	r.Route("/events", func(r chi.Router) {
		r.Post("/", eventHandler.CreateEvent)
		r.Get("/", eventHandler.ListEvents)
		r.Get("/{id}", eventHandler.GetEvent)
		r.Put("/{id}", eventHandler.UpdateEvent)
		r.Delete("/{id}", eventHandler.DeleteEvent)
		r.Post("/{id}/registrations", eventHandler.Register)
		r.Get("/{id}/registrations", eventHandler.ListRegistrations)
		r.Delete("/{id}/registrations/{userId}", eventHandler.Unregister)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
		r.Get("/{id}/registrations", userHandler.ListRegistrations)
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
