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
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
	"github.com/yogeshsaini7172/flingzz-backend/internal/chat"
	"github.com/yogeshsaini7172/flingzz-backend/internal/common/database"
	"github.com/yogeshsaini7172/flingzz-backend/internal/config"
	"github.com/yogeshsaini7172/flingzz-backend/internal/events"
	"github.com/yogeshsaini7172/flingzz-backend/internal/feed"
	"github.com/yogeshsaini7172/flingzz-backend/internal/matching"
	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
	"github.com/yogeshsaini7172/flingzz-backend/internal/scoring"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting FlingzZ Campus Dating API")
	log.Println("========================================")

	// 1. Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found (%v), using environment variables", err)
	}

	// 2. Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration loaded")

	// 3. Connect to PostgreSQL
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without cache and quota", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 5. Run database migrations
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations:", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Auth
	verifier := auth.NewVerifier(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(verifier)

	// 7. Event bus
	bus := events.NewBus()

	// 8. Profile module
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, cfg.MaxInterests)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile module initialized")

	// 9. Scoring module
	engine := scoring.NewEngine(scoring.ConstantBehavioral{})
	scoringRepo := scoring.NewPostgresRepository(db)
	scoringService := scoring.NewService(engine, scoringRepo, profileRepo, redisClient, cfg.QCSCacheTTL)
	scoringHandler := scoring.NewHandler(scoringService)

	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if cfg.EnableBatchScoring {
		scheduler := scoring.NewScheduler(scoringService, cfg.QCSBatchInterval)
		go scheduler.Start(schedulerCtx)
		log.Printf("✅ Batch scoring scheduler started (every %v)", cfg.QCSBatchInterval)
	}
	log.Println("✅ Scoring module initialized")

	// 10. Feed module
	feedRepo := feed.NewPostgresRepository(db)
	ranker := feed.NewRanker(engine)
	feedService := feed.NewService(feedRepo, profileRepo, ranker, cfg.FeedPageSize, cfg.MaxFeedPageSize)
	feedHandler := feed.NewHandler(feedService)
	log.Println("✅ Feed module initialized")

	// 11. Matching module
	matchingRepo := matching.NewPostgresRepository(db)
	quota := matching.NewQuota(redisClient, cfg.DailySwipeLimit)
	matchingService := matching.NewService(matchingRepo, profileRepo, quota, bus)
	matchingHandler := matching.NewHandler(matchingService)
	log.Println("✅ Matching module initialized")

	// 12. Chat relay
	hub := chat.NewHub(matchingService, chat.HubConfig{
		MaxMessageSize: cfg.WSMaxMessageSize,
		WriteTimeout:   cfg.WSWriteTimeout,
	})
	go hub.Run()

	hubEventsCtx, hubEventsCancel := context.WithCancel(context.Background())
	defer hubEventsCancel()
	go hub.ListenEvents(hubEventsCtx, bus)

	chatHandler := chat.NewHandler(hub, strings.Split(cfg.AllowedOrigins, ","))
	log.Println("✅ Chat relay initialized")

	// 13. Routes
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	scoring.RegisterRoutes(router, scoringHandler, authMiddleware)
	feed.RegisterRoutes(router, feedHandler, authMiddleware)
	matching.RegisterRoutes(router, matchingHandler, authMiddleware)
	chat.RegisterRoutes(router, chatHandler, authMiddleware)
	log.Println("✅ Routes registered")

	// The middleware chain wraps the router itself so that OPTIONS
	// preflights are answered even for paths registered with other
	// methods, which mux middleware would never see.
	handler := loggingMiddleware(corsMiddleware(router))

	// 14. Start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⚠️  Shutdown signal received...")

	hubEventsCancel()
	hub.Shutdown()
	schedulerCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

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

// Middleware functions

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

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

// corsMiddleware handles CORS. Preflight requests are answered before
// any handler runs.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id VARCHAR(64) PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			date_of_birth DATE NOT NULL,
			gender VARCHAR(20) NOT NULL,
			university VARCHAR(255),
			field_of_study VARCHAR(255),
			year_of_study INTEGER,
			height_cm INTEGER,
			body_type VARCHAR(50),
			skin_tone VARCHAR(50),
			personality_type VARCHAR(50),
			core_values VARCHAR(255),
			mindset VARCHAR(255),
			interests TEXT[] DEFAULT '{}',
			relationship_goals TEXT[] DEFAULT '{}',
			bio TEXT,
			images TEXT[] DEFAULT '{}',
			total_qcs INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT TRUE,
			is_public BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS partner_preferences (
			user_id VARCHAR(64) PRIMARY KEY REFERENCES profiles(user_id) ON DELETE CASCADE,
			preferred_genders TEXT[] DEFAULT '{}',
			age_min INTEGER NOT NULL DEFAULT 18,
			age_max INTEGER NOT NULL DEFAULT 100,
			preferred_goals TEXT[] DEFAULT '{}',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS swipes (
			swiper_id VARCHAR(64) NOT NULL,
			target_id VARCHAR(64) NOT NULL,
			direction VARCHAR(10) NOT NULL CHECK (direction IN ('left', 'right')),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (swiper_id, target_id)
		)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			user_a VARCHAR(64) NOT NULL,
			user_b VARCHAR(64) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			acked_a BOOLEAN DEFAULT FALSE,
			acked_b BOOLEAN DEFAULT FALSE,
			matched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CHECK (user_a < user_b),
			UNIQUE (user_a, user_b)
		)`,

		`CREATE TABLE IF NOT EXISTS chat_rooms (
			id UUID PRIMARY KEY,
			match_id BIGINT NOT NULL UNIQUE REFERENCES matches(id) ON DELETE CASCADE,
			user_a VARCHAR(64) NOT NULL,
			user_b VARCHAR(64) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS blocks (
			blocker_id VARCHAR(64) NOT NULL,
			blocked_id VARCHAR(64) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (blocker_id, blocked_id)
		)`,

		`CREATE TABLE IF NOT EXISTS qcs_scores (
			user_id VARCHAR(64) PRIMARY KEY REFERENCES profiles(user_id) ON DELETE CASCADE,
			completeness INTEGER NOT NULL,
			affiliation INTEGER NOT NULL,
			psych_depth INTEGER NOT NULL,
			behavioral INTEGER NOT NULL,
			total INTEGER NOT NULL,
			computed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_gender ON profiles(gender)`,
		`CREATE INDEX IF NOT EXISTS idx_swipes_target ON swipes(target_id, swiper_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user_a ON matches(user_a)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user_b ON matches(user_b)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_blocked ON blocks(blocked_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
