// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/gathrhq/gathr-backend/internal/activities"
	"github.com/gathrhq/gathr-backend/internal/common/database"
	"github.com/gathrhq/gathr-backend/internal/config"
	"github.com/gathrhq/gathr-backend/internal/matching"
	"github.com/gathrhq/gathr-backend/internal/recommend"
	"github.com/gathrhq/gathr-backend/internal/users"
)

func main() {
	// Enable detailed logging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Gathr Social Activity API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without caching", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Printf("❌ Migration error: %v", err)
		log.Fatal("Failed to run migrations")
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize users module
	log.Println("\n👤 Step 7: Initializing users module...")
	var usersRepo users.Repository = users.NewPostgresRepository(db)
	if redisClient != nil {
		usersRepo = users.NewCachedRepository(usersRepo, redisClient, cfg.UserCacheTTL)
		log.Println("   ✅ User cache enabled")
	}
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(usersService)
	log.Println("✅ Users module ready")

	// 8. Initialize activities module
	log.Println("\n📅 Step 8: Initializing activities module...")
	activitiesRepo := activities.NewPostgresRepository(db)
	activitiesService := activities.NewService(activitiesRepo)
	activitiesHandler := activities.NewHandler(activitiesService)
	log.Println("✅ Activities module ready")

	// 9. Initialize recommendation module
	log.Println("\n🎯 Step 9: Initializing recommendation engine...")
	recommendService := recommend.NewService(usersRepo, activitiesRepo)

	recommendDefaults := matching.DefaultRecommendOptions()
	recommendDefaults.Limit = cfg.RecommendDefaultLimit
	recommendDefaults.MinScore = cfg.RecommendMinScore
	matchDefaults := matching.DefaultMatchOptions()
	matchDefaults.Limit = cfg.MatchDefaultLimit

	recommendHandler := recommend.NewHandler(recommendService, recommendDefaults, matchDefaults)
	log.Println("✅ Recommendation engine ready")

	// 10. Set up routes
	log.Println("\n🛣️  Step 10: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/api", apiInfo).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	users.RegisterRoutes(router, usersHandler)
	activities.RegisterRoutes(router, activitiesHandler)
	recommend.RegisterRoutes(router, recommendHandler)

	// Add middleware. Production allows only the configured origin;
	// anything else keeps the permissive wildcard for local clients.
	corsOrigin := "*"
	if cfg.IsProduction() {
		corsOrigin = cfg.BaseURL
	}
	if cfg.IsDevelopment() {
		log.Println("   ⚠️  Development mode: CORS open to all origins")
	}

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware(corsOrigin))
	log.Println("✅ Routes configured")

	// 11. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	// Graceful server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

var startTime = time.Now()

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// apiInfo returns API information
func apiInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{
        "name": "Gathr Social Activity API",
        "version": "1.0.0",
        "status": "running",
        "endpoints": {
            "health": "GET /health",
            "metrics": "GET /metrics",
            "users": {
                "create": "POST /api/v1/users",
                "get": "GET /api/v1/users/{id}",
                "updateProfile": "PUT /api/v1/users/{id}/profile",
                "questionnaire": "PUT /api/v1/users/{id}/questionnaire"
            },
            "activities": {
                "get": "GET /api/v1/activities/{id}",
                "create": "POST /api/v1/users/{userId}/activities",
                "list": "GET /api/v1/users/{userId}/activities",
                "stats": "GET /api/v1/users/{userId}/activities/stats",
                "update": "PUT /api/v1/users/{userId}/activities/{id}",
                "delete": "DELETE /api/v1/users/{userId}/activities/{id}",
                "join": "POST /api/v1/users/{userId}/activities/{id}/join",
                "leave": "POST /api/v1/users/{userId}/activities/{id}/leave"
            },
            "recommendations": {
                "activities": "GET /api/v1/users/{id}/recommendations/activities",
                "users": "GET /api/v1/users/{id}/recommendations/users",
                "score": "GET /api/v1/users/{id}/activities/{activityId}/score",
                "explanation": "GET /api/v1/users/{id}/matches/{otherId}/explanation"
            }
        }
    }`))
}

// Middleware functions

// requestIDMiddleware tags each request so log lines can be correlated
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS for the given allowed origin
func corsMiddleware(allowedOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	log.Println("   - Creating/updating tables...")

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            username VARCHAR(30) UNIQUE NOT NULL,
            email VARCHAR(255) UNIQUE NOT NULL,
            display_name VARCHAR(100) NOT NULL,
            bio VARCHAR(500),
            latitude DOUBLE PRECISION,
            longitude DOUBLE PRECISION,
            interests TEXT[] NOT NULL DEFAULT '{}',
            preferences JSONB,
            questionnaire_completed BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,

		`CREATE TABLE IF NOT EXISTS activities (
            id BIGSERIAL PRIMARY KEY,
            title VARCHAR(100) NOT NULL,
            description VARCHAR(1000) NOT NULL,
            category VARCHAR(50) NOT NULL,
            interests TEXT[] NOT NULL DEFAULT '{}',
            date TIMESTAMPTZ NOT NULL,
            latitude DOUBLE PRECISION,
            longitude DOUBLE PRECISION,
            max_participants INT NOT NULL DEFAULT 20,
            creator_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            status VARCHAR(20) NOT NULL DEFAULT 'upcoming',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,

		`CREATE TABLE IF NOT EXISTS activity_participants (
            activity_id BIGINT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (activity_id, user_id)
        )`,

		`CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_creator ON activities(creator_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_user ON activity_participants(user_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
