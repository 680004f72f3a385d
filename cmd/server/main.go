package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/config"
	"github.com/AnshRaj112/ytsummary-backend/internal/database"
	"github.com/AnshRaj112/ytsummary-backend/internal/exporter"
	"github.com/AnshRaj112/ytsummary-backend/internal/generator"
	"github.com/AnshRaj112/ytsummary-backend/internal/handlers"
	"github.com/AnshRaj112/ytsummary-backend/internal/metrics"
	"github.com/AnshRaj112/ytsummary-backend/internal/middleware"
	"github.com/AnshRaj112/ytsummary-backend/internal/routes"
	"github.com/AnshRaj112/ytsummary-backend/internal/services"
	"github.com/AnshRaj112/ytsummary-backend/internal/session"
	"github.com/AnshRaj112/ytsummary-backend/internal/store/mongostore"
	"github.com/AnshRaj112/ytsummary-backend/internal/transcript"
	"github.com/AnshRaj112/ytsummary-backend/internal/translator"
	"github.com/AnshRaj112/ytsummary-backend/pkg/logger"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), zap.String("env", cfg.Environment)); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	lg := logger.Log
	defer lg.Sync()

	// Missing required settings abort startup before any connection is made.
	if err := cfg.Validate(); err != nil {
		lg.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	lg.Info("MongoDB URI", zap.String("uri", cfg.MaskedMongoURI()))
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDatabase, lg)
	if err != nil {
		lg.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Disconnect()

	accounts := mongostore.New(db, lg)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		lg.Warn("failed to ensure MongoDB indexes", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(cfg.RedisURI, lg)
	if err != nil {
		lg.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer database.DisconnectRedis()

	cache := services.NewCacheService(rdb, lg)
	sessions := services.NewSessionService(rdb, cfg.SessionTTL, lg)

	gemini, err := generator.NewGeminiBackend(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
	if err != nil {
		lg.Fatal("failed to create Gemini client", zap.Error(err))
	}

	googleTranslate, err := translator.NewGoogleBackend(ctx, cfg.TranslateAPIKey)
	if err != nil {
		lg.Fatal("failed to create Translate client", zap.Error(err))
	}
	defer googleTranslate.Close()

	deps := session.Deps{
		Fetcher:            transcript.NewFetcher(transcript.NewYouTubeSource(nil), lg, transcript.WithCache(cache)),
		Generator:          generator.New(gemini, lg),
		Translator:         translator.New(googleTranslate, lg),
		Exporter:           exporter.New(),
		Accounts:           accounts,
		Admin:              session.AdminCredentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
		TranscriptLanguage: cfg.TranscriptLanguage,
		Logger:             lg,
	}

	if cfg.CloudinaryEnabled() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			lg.Warn("Cloudinary unavailable, PDF archiving disabled", zap.Error(err))
		} else {
			deps.Archiver = cld
			lg.Info("Cloudinary service initialized")
		}
	} else {
		lg.Info("Cloudinary credentials not found, PDF archiving disabled")
	}

	h := handlers.New(session.NewOrchestrator(deps), sessions, lg, cfg.IsProduction(), cfg.SessionTTL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(lg))
	r.Use(metrics.Middleware)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: in-process token buckets; otherwise the shared Redis window.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		lg.Info("production security enabled")
	} else {
		r.Use(middleware.RedisRateLimit(rdb, lg))
	}

	routes.SetupRoutes(r, h)

	srv := newServer(cfg.Port, r)

	go func() {
		lg.Info("ytsummary backend running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
	lg.Info("server stopped")
}

// newServer sets no WriteTimeout: backend calls block until they return or fail.
func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
