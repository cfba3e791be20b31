package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tabeth/reelreviews/models"
	st "github.com/tabeth/reelreviews/store"
)

type mockTranslator struct {
	TranslateFunc func(ctx context.Context, text, targetLanguage string) (string, error)
	calls         int
}

func (m *mockTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	m.calls++
	return m.TranslateFunc(ctx, text, targetLanguage)
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTranslationService(store *mockStore, translator *mockTranslator) *TranslationService {
	svc := NewTranslationService(store, translator, time.Hour)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func reviewWithEntry(entry *models.TranslationEntry) *models.Review {
	review := &models.Review{
		MovieID:    7,
		ReviewID:   2,
		ReviewerID: "alice",
		Content:    "A masterpiece.",
	}
	if entry != nil {
		review.Translations = map[string]models.TranslationEntry{"fr": *entry}
	}
	return review
}

func TestTranslationService_InvalidLanguage(t *testing.T) {
	service := newTranslationService(&mockStore{}, &mockTranslator{}) // neither gets called

	for _, lang := range []string{"french", "FR", "f", "fr-br", "", "12"} {
		_, err := service.GetTranslation(context.Background(), 7, 2, lang)
		assertAPIError(t, err, models.ErrTypeValidation)
	}
}

func TestTranslationService_ReviewNotFound(t *testing.T) {
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return nil, st.ErrReviewNotFound
		},
	}
	service := newTranslationService(mock, &mockTranslator{})

	_, err := service.GetTranslation(context.Background(), 7, 99, "fr")

	assertAPIError(t, err, models.ErrTypeReviewNotFound)
}

func TestTranslationService_EmptyContent(t *testing.T) {
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return &models.Review{MovieID: 7, ReviewID: 2, ReviewerID: "alice"}, nil
		},
	}
	service := newTranslationService(mock, &mockTranslator{})

	_, err := service.GetTranslation(context.Background(), 7, 2, "fr")

	assertAPIError(t, err, models.ErrTypeValidation)
}

func TestTranslationService_CacheHit(t *testing.T) {
	entry := &models.TranslationEntry{
		Content:     "Un chef-d'oeuvre.",
		LastUpdated: "2025-06-01T11:00:00Z",
		TTL:         fixedNow.Unix() + 60,
	}
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return reviewWithEntry(entry), nil
		},
	}
	translator := &mockTranslator{}
	service := newTranslationService(mock, translator)

	resp, err := service.GetTranslation(context.Background(), 7, 2, "fr")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if translator.calls != 0 {
		t.Errorf("expected no translator calls on a fresh cache hit, got %d", translator.calls)
	}
	if resp.TranslatedContent != entry.Content {
		t.Errorf("expected cached content %q, got %q", entry.Content, resp.TranslatedContent)
	}
	if resp.LastUpdated != entry.LastUpdated {
		t.Errorf("expected cached timestamp %q, got %q", entry.LastUpdated, resp.LastUpdated)
	}
}

func TestTranslationService_CacheMissTranslatesAndStores(t *testing.T) {
	var storedLang string
	var storedEntry models.TranslationEntry
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return reviewWithEntry(nil), nil
		},
		PutTranslationFunc: func(ctx context.Context, movieID, reviewID int, language string, entry models.TranslationEntry) error {
			storedLang, storedEntry = language, entry
			return nil
		},
	}
	translator := &mockTranslator{
		TranslateFunc: func(ctx context.Context, text, targetLanguage string) (string, error) {
			if text != "A masterpiece." {
				t.Errorf("expected the review content to be translated, got %q", text)
			}
			return "Un chef-d'oeuvre.", nil
		},
	}
	service := newTranslationService(mock, translator)

	resp, err := service.GetTranslation(context.Background(), 7, 2, "fr")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if translator.calls != 1 {
		t.Errorf("expected exactly one translator call, got %d", translator.calls)
	}
	if resp.TranslatedContent != "Un chef-d'oeuvre." {
		t.Errorf("unexpected translation: %q", resp.TranslatedContent)
	}
	if storedLang != "fr" {
		t.Errorf("expected the fr entry to be stored, got %q", storedLang)
	}
	if storedEntry.Content != "Un chef-d'oeuvre." {
		t.Errorf("unexpected stored content: %q", storedEntry.Content)
	}
	if want := fixedNow.Add(time.Hour).Unix(); storedEntry.TTL != want {
		t.Errorf("expected TTL %d, got %d", want, storedEntry.TTL)
	}
	if want := fixedNow.UTC().Format(time.RFC3339); storedEntry.LastUpdated != want {
		t.Errorf("expected lastUpdated %q, got %q", want, storedEntry.LastUpdated)
	}
	if resp.LastUpdated != storedEntry.LastUpdated {
		t.Errorf("response timestamp %q should match the stored entry %q", resp.LastUpdated, storedEntry.LastUpdated)
	}
}

func TestTranslationService_ExpiredEntryRefetched(t *testing.T) {
	// An entry whose TTL equals the current time is already expired.
	entry := &models.TranslationEntry{
		Content:     "stale",
		LastUpdated: "2025-05-01T00:00:00Z",
		TTL:         fixedNow.Unix(),
	}
	overwritten := false
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return reviewWithEntry(entry), nil
		},
		PutTranslationFunc: func(ctx context.Context, movieID, reviewID int, language string, e models.TranslationEntry) error {
			overwritten = true
			return nil
		},
	}
	translator := &mockTranslator{
		TranslateFunc: func(ctx context.Context, text, targetLanguage string) (string, error) {
			return "fresh", nil
		},
	}
	service := newTranslationService(mock, translator)

	resp, err := service.GetTranslation(context.Background(), 7, 2, "fr")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if translator.calls != 1 {
		t.Errorf("expected the expired entry to trigger one translator call, got %d", translator.calls)
	}
	if resp.TranslatedContent != "fresh" {
		t.Errorf("expected the refetched translation, got %q", resp.TranslatedContent)
	}
	if !overwritten {
		t.Error("expected the stale entry to be overwritten")
	}
}

func TestTranslationService_TranslatorFailure(t *testing.T) {
	stored := false
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return reviewWithEntry(nil), nil
		},
		PutTranslationFunc: func(ctx context.Context, movieID, reviewID int, language string, e models.TranslationEntry) error {
			stored = true
			return nil
		},
	}
	translator := &mockTranslator{
		TranslateFunc: func(ctx context.Context, text, targetLanguage string) (string, error) {
			return "", errors.New("throttled")
		},
	}
	service := newTranslationService(mock, translator)

	_, err := service.GetTranslation(context.Background(), 7, 2, "fr")

	assertAPIError(t, err, models.ErrTypeTranslationFailure)
	if stored {
		t.Error("nothing must be cached when translation fails")
	}
}

func TestTranslationService_PersistFailureStillReturnsTranslation(t *testing.T) {
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return reviewWithEntry(nil), nil
		},
		PutTranslationFunc: func(ctx context.Context, movieID, reviewID int, language string, e models.TranslationEntry) error {
			return errors.New("conditional check failed")
		},
	}
	translator := &mockTranslator{
		TranslateFunc: func(ctx context.Context, text, targetLanguage string) (string, error) {
			return "Un chef-d'oeuvre.", nil
		},
	}
	service := newTranslationService(mock, translator)

	resp, err := service.GetTranslation(context.Background(), 7, 2, "fr")
	if err != nil {
		t.Fatalf("a cache write failure must not fail the request, got %v", err)
	}
	if resp.TranslatedContent != "Un chef-d'oeuvre." {
		t.Errorf("expected the translation despite the write failure, got %q", resp.TranslatedContent)
	}
}

func TestTranslationService_FreshUntilTTL(t *testing.T) {
	entry := &models.TranslationEntry{
		Content:     "cached",
		LastUpdated: "2025-06-01T11:00:00Z",
		TTL:         fixedNow.Unix() + 1,
	}
	mock := &mockStore{
		GetReviewFunc: func(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
			return reviewWithEntry(entry), nil
		},
	}
	translator := &mockTranslator{}
	service := newTranslationService(mock, translator)

	resp, err := service.GetTranslation(context.Background(), 7, 2, "fr")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if translator.calls != 0 {
		t.Errorf("an entry one second before its TTL is still fresh, got %d calls", translator.calls)
	}
	if resp.TranslatedContent != "cached" {
		t.Errorf("expected the cached content, got %q", resp.TranslatedContent)
	}
}
