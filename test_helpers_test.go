package main

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tabeth/reelreviews/auth"
	"github.com/tabeth/reelreviews/service"
	"github.com/tabeth/reelreviews/translate"
)

const testAdminKey = "test-admin-key"

var testVerifier = auth.NewStaticVerifier("test-signing-secret")

// newTestRouter wires an App around the given store mock the same way main
// does, with a static verifier so tests can mint their own tokens. Tests that
// never hit the translation endpoint pass a nil translator.
func newTestRouter(ms *MockStore, translator translate.Translator) *chi.Mux {
	app := &App{
		Reviews:      service.NewReviewService(ms),
		Translations: service.NewTranslationService(ms, translator, time.Hour),
		Store:        ms,
		Verifier:     testVerifier,
		Minter:       testVerifier,
		AdminAPIKey:  testAdminKey,
		StoreName:    "mock",
	}
	r := chi.NewRouter()
	app.RegisterReviewHandlers(r)
	return r
}

// generateTestToken creates a signed token for testing.
func generateTestToken(subject string) string {
	token, _ := testVerifier.Mint(subject, time.Hour)
	return token
}
