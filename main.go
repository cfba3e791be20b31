package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	_ "github.com/tabeth/reelreviews/docs"

	"github.com/tabeth/reelreviews/auth"
	"github.com/tabeth/reelreviews/config"
	"github.com/tabeth/reelreviews/service"
	"github.com/tabeth/reelreviews/store"
	"github.com/tabeth/reelreviews/translate"
)

// @title Reel Reviews API
// @version 1.0
// @description A movie review service with ownership-checked updates and cached machine translations.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.NewConfig()
	setupLogger(cfg.LogLevel)

	seedFile := flag.String("seed", "", "JSON file of reviews to batch-load at startup")
	warmLanguages := flag.String("warm-languages", "", "comma-separated language codes to pre-translate seeded reviews into")
	checkStore := flag.Bool("check-store", false, "ping the store and exit")
	flag.Parse()

	ctx := context.Background()

	st, err := newStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize store", slog.String("backend", cfg.StoreBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *checkStore {
		if err := st.Ping(ctx); err != nil {
			slog.Error("store is unreachable", slog.String("backend", cfg.StoreBackend), slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("store is reachable", slog.String("backend", cfg.StoreBackend))
		return
	}

	translator, err := newTranslator(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize translator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	verifier, minter, err := newVerifier(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize token verifier", slog.String("mode", cfg.AuthMode), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *seedFile != "" {
		if err := seedReviews(ctx, st, *seedFile, splitLanguages(*warmLanguages), translator, cfg.TranslationTTL); err != nil {
			slog.Error("seeding failed", slog.String("file", *seedFile), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	app := &App{
		Reviews:      service.NewReviewService(st),
		Translations: service.NewTranslationService(st, translator, cfg.TranslationTTL),
		Store:        st,
		Verifier:     verifier,
		Minter:       minter,
		AdminAPIKey:  cfg.AdminAPIKey,
		StoreName:    cfg.StoreBackend,
	}

	// Create a new Chi router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(TimeoutMiddleware)

	app.RegisterReviewHandlers(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,

		// Protects against slow clients holding connections open.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("starting server",
		slog.String("addr", addr),
		slog.String("store", cfg.StoreBackend),
		slog.String("authMode", cfg.AuthMode))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupLogger installs a JSON slog handler as the default logger.
func setupLogger(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(level)})
	slog.SetDefault(slog.New(handler).With(slog.String("app", "reelreviews")))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newStore builds the storage backend named by the configuration.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendDynamo:
		return store.NewDynamoStore(ctx, cfg.DynamoTable, cfg.AWSRegion, cfg.DynamoEndpoint)
	case config.BackendFDB:
		return store.NewFDBStore(cfg.FDBClusterFile)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// newTranslator builds the translation client, rate limited when the
// deployment has a provider quota to respect.
func newTranslator(ctx context.Context, cfg *config.Config) (translate.Translator, error) {
	translator, err := translate.NewAWSTranslator(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	if cfg.TranslateRPMLimit > 0 {
		limit := translate.RateLimitConfig{RequestsPerMinute: cfg.TranslateRPMLimit}
		return translate.NewRateLimitedTranslator(translator, limit), nil
	}
	return translator, nil
}

// newVerifier builds the token verifier for the configured auth mode. The
// minter is non-nil only in static mode, where this service signs its own
// development tokens.
func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, *auth.StaticVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeStatic:
		v := auth.NewStaticVerifier(cfg.JWTSecret)
		return v, v, nil
	case config.AuthModeCognito:
		issuer := auth.CognitoIssuerURL(cfg.AuthRegion, cfg.AuthUserPoolID)
		v, err := auth.NewIssuerVerifier(ctx, issuer)
		if err != nil {
			return nil, nil, err
		}
		return v, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

func splitLanguages(s string) []string {
	if s == "" {
		return nil
	}
	var langs []string
	for _, lang := range strings.Split(s, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}
