package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/tabeth/reelreviews/models"
	"github.com/tabeth/reelreviews/store"
	"github.com/tabeth/reelreviews/translate"
)

// languageRegexp accepts a lowercase two-letter code with an optional
// uppercase region suffix, e.g. "fr" or "pt-BR".
var languageRegexp = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// TranslationServicer defines the interface for translation operations.
type TranslationServicer interface {
	GetTranslation(ctx context.Context, movieID, reviewID int, language string) (*models.TranslationResponse, error)
}

// TranslationService serves review translations through a per-review,
// per-language cache stored on the review item itself. Expiry is lazy: a
// stale entry is only noticed, refetched and overwritten when it is asked
// for.
type TranslationService struct {
	store      store.Store
	translator translate.Translator
	ttl        time.Duration

	// now is replaceable so tests can sit on either side of an entry's TTL.
	now func() time.Time
}

// NewTranslationService creates a new TranslationService. Fresh cache
// entries expire ttl after they are written.
func NewTranslationService(store store.Store, translator translate.Translator, ttl time.Duration) *TranslationService {
	return &TranslationService{
		store:      store,
		translator: translator,
		ttl:        ttl,
		now:        time.Now,
	}
}

// GetTranslation returns the review's content in the requested language,
// from cache when a fresh entry exists and from the translator otherwise. A
// cache miss makes exactly one translator call; if persisting the new entry
// afterwards fails the translation is still returned and the failure is only
// logged, so the next request simply misses again.
func (s *TranslationService) GetTranslation(ctx context.Context, movieID, reviewID int, language string) (*models.TranslationResponse, error) {
	if !languageRegexp.MatchString(language) {
		return nil, models.New(models.ErrTypeValidation, fmt.Sprintf("Invalid language code: %q.", language))
	}

	review, err := s.store.GetReview(ctx, movieID, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, models.New(models.ErrTypeReviewNotFound, "The specified review does not exist.")
		}
		return nil, models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to load review: %v", err))
	}
	if review.Content == "" {
		return nil, models.New(models.ErrTypeValidation, "The review has no content to translate.")
	}

	now := s.now()
	if entry, ok := review.Translations[language]; ok && entry.Fresh(now) {
		return &models.TranslationResponse{
			MovieID:           movieID,
			ReviewID:          reviewID,
			Language:          language,
			TranslatedContent: entry.Content,
			LastUpdated:       entry.LastUpdated,
		}, nil
	}

	translated, err := s.translator.Translate(ctx, review.Content, language)
	if err != nil {
		return nil, models.New(models.ErrTypeTranslationFailure, fmt.Sprintf("translation failed: %v", err))
	}

	entry := models.TranslationEntry{
		Content:     translated,
		LastUpdated: now.UTC().Format(time.RFC3339),
		TTL:         now.Add(s.ttl).Unix(),
	}
	if err := s.store.PutTranslation(ctx, movieID, reviewID, language, entry); err != nil {
		// Best effort. The caller still gets the translation; the cache
		// just stays cold for this language.
		slog.Warn("failed to persist translation",
			slog.Int("movieId", movieID),
			slog.Int("reviewId", reviewID),
			slog.String("language", language),
			slog.String("error", err.Error()))
	}

	return &models.TranslationResponse{
		MovieID:           movieID,
		ReviewID:          reviewID,
		Language:          language,
		TranslatedContent: translated,
		LastUpdated:       entry.LastUpdated,
	}, nil
}
