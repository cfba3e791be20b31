package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tabeth/reelreviews/models"
	"github.com/tabeth/reelreviews/service"
	"github.com/tabeth/reelreviews/store"
	"github.com/tabeth/reelreviews/translate"
)

// seedReviews loads a JSON array of reviews into the store, then optionally
// pre-computes translations for each seeded review. Seeding is offline
// tooling, so the warm-up translator retries transient provider failures;
// request-path translation never does.
func seedReviews(ctx context.Context, st store.Store, file string, warmLanguages []string, translator translate.Translator, ttl time.Duration) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var reviews []models.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}
	if len(reviews) == 0 {
		slog.Warn("seed file contains no reviews", slog.String("file", file))
		return nil
	}

	if err := st.BatchPutReviews(ctx, reviews); err != nil {
		return fmt.Errorf("loading reviews: %w", err)
	}
	slog.Info("seeded reviews", slog.Int("count", len(reviews)), slog.String("file", file))

	if len(warmLanguages) == 0 {
		return nil
	}

	// Warm-up failures are logged and skipped; the cache fills in lazily on
	// first request for anything missed here.
	retrying := translate.NewRetryingTranslator(translator, translate.DefaultRetryConfig())
	warming := service.NewTranslationService(st, retrying, ttl)
	warmed := 0
	for _, review := range reviews {
		for _, lang := range warmLanguages {
			if _, err := warming.GetTranslation(ctx, review.MovieID, review.ReviewID, lang); err != nil {
				slog.Warn("cache warm-up failed",
					slog.Int("movieId", review.MovieID),
					slog.Int("reviewId", review.ReviewID),
					slog.String("language", lang),
					slog.String("error", err.Error()))
				continue
			}
			warmed++
		}
	}
	slog.Info("warmed translation cache", slog.Int("entries", warmed), slog.Int("languages", len(warmLanguages)))
	return nil
}
