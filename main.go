package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	gorilla "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"taskboard/handlers"
	"taskboard/store"
	"taskboard/utils"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment:", os.Getenv("APP_ENV"))

	// Initialize the database connection pool
	dbPool, err := utils.OpenDB(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := store.InitSchema(context.Background(), dbPool); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	redisClient := utils.OpenRedisPool(os.Getenv("REDIS_URL"))
	defer redisClient.Close()

	gate := &utils.SessionGate{Client: redisClient}
	taskStore := store.NewPostgresTaskStore(dbPool)

	taskHandler := handlers.NewTaskHandler(taskStore)
	authHandler := handlers.NewAuthHandler(dbPool, gate)

	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Task Manager API is running!"}`))
	}).Methods(http.MethodGet)

	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	authed := router.PathPrefix("/api/auth").Subrouter()
	authed.Use(handlers.RequireUser(gate))
	authed.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	tasks := router.PathPrefix("/api/tasks").Subrouter()
	tasks.Use(handlers.RequireUser(gate))
	tasks.HandleFunc("", taskHandler.List).Methods(http.MethodGet)
	tasks.HandleFunc("", taskHandler.Create).Methods(http.MethodPost)
	tasks.HandleFunc("/{id}", taskHandler.Update).Methods(http.MethodPut)
	tasks.HandleFunc("/{id}", taskHandler.Delete).Methods(http.MethodDelete)

	cors := gorilla.CORS(
		gorilla.AllowedOrigins(allowedOrigins()),
		gorilla.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilla.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilla.AllowCredentials(),
	)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Println("Starting server on", addr)
	log.Fatal(http.ListenAndServe(addr, cors(router)))
}

func allowedOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173"}
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
