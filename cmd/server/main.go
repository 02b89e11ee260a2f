package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/quizzy-dock/backend/internal/auth"
	"github.com/quizzy-dock/backend/internal/catalog"
	"github.com/quizzy-dock/backend/internal/database"
	"github.com/quizzy-dock/backend/internal/ingest"
	"github.com/quizzy-dock/backend/internal/middleware"
	"github.com/quizzy-dock/backend/internal/promo"
	"github.com/quizzy-dock/backend/internal/tests"
)

func main() {
	// Initialize database
	client, db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)

	catalogService := catalog.NewService(catalog.NewStore(db))
	catalogHandler := catalog.NewHandler(catalogService)

	ingestService := ingest.NewService(ingest.NewStore(db), catalogService)
	ingestHandler := ingest.NewHandler(ingestService)

	testService := tests.NewService(tests.NewStore(db))
	testHandler := tests.NewHandler(testService, promo.NewGenerator())

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/subjects", catalogHandler.ListSubjects).Methods("GET")
	api.HandleFunc("/subjects/meta", catalogHandler.ListMetadata).Methods("GET")
	api.HandleFunc("/questions/{type}", ingestHandler.List).Methods("GET")
	api.HandleFunc("/tests", testHandler.ListTests).Methods("GET")
	api.HandleFunc("/tests/{testId}", testHandler.GetTest).Methods("GET")

	// Protected routes (operator admin)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/subjects", catalogHandler.UpsertSubject).Methods("POST")
	protected.HandleFunc("/questions/{type}", ingestHandler.Submit).Methods("POST")
	protected.HandleFunc("/tests/{testId}/social", testHandler.UpdateSocial).Methods("PATCH")
	protected.HandleFunc("/tests/{testId}/social/generate", testHandler.GenerateSocial).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
