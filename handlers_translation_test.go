package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tabeth/reelreviews/models"
	"github.com/tabeth/reelreviews/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTranslator is a mock implementation of the Translator interface.
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	args := m.Called(ctx, text, targetLanguage)
	return args.String(0), args.Error(1)
}

func TestTranslateReviewHandler(t *testing.T) {
	t.Run("Served From Cache", func(t *testing.T) {
		review := aliceReview()
		review.Translations = map[string]models.TranslationEntry{
			"fr": {
				Content:     "Un chef-d'oeuvre.",
				LastUpdated: "2025-06-01T12:00:00Z",
				TTL:         time.Now().Add(time.Hour).Unix(),
			},
		}
		mockStore := new(MockStore)
		mockStore.On("GetReview", mock.Anything, 7, 1).Return(review, nil)
		// No expectations on the translator: a fresh cache entry must be
		// served without a provider call.
		mockTranslator := new(MockTranslator)
		r := newTestRouter(mockStore, mockTranslator)

		req, _ := http.NewRequest("GET", "/movies/7/reviews/1/translation?language=fr", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{
			"movieId": 7,
			"reviewId": 1,
			"language": "fr",
			"translatedContent": "Un chef-d'oeuvre.",
			"lastUpdated": "2025-06-01T12:00:00Z"
		}`, rr.Body.String())
		mockStore.AssertExpectations(t)
		mockTranslator.AssertExpectations(t)
	})

	t.Run("Cache Miss Calls Translator Once", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("GetReview", mock.Anything, 7, 1).Return(aliceReview(), nil)
		mockStore.On("PutTranslation", mock.Anything, 7, 1, "fr", mock.MatchedBy(func(e models.TranslationEntry) bool {
			return e.Content == "Un chef-d'oeuvre." && e.TTL > time.Now().Unix()
		})).Return(nil)
		mockTranslator := new(MockTranslator)
		mockTranslator.On("Translate", mock.Anything, "A masterpiece.", "fr").Return("Un chef-d'oeuvre.", nil).Once()
		r := newTestRouter(mockStore, mockTranslator)

		req, _ := http.NewRequest("GET", "/movies/7/reviews/1/translation?language=fr", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.TranslationResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.MovieID)
		assert.Equal(t, 1, resp.ReviewID)
		assert.Equal(t, "fr", resp.Language)
		assert.Equal(t, "Un chef-d'oeuvre.", resp.TranslatedContent)
		assert.NotEmpty(t, resp.LastUpdated)
		mockStore.AssertExpectations(t)
		mockTranslator.AssertExpectations(t)
	})

	t.Run("Expired Entry Refetched", func(t *testing.T) {
		review := aliceReview()
		review.Translations = map[string]models.TranslationEntry{
			"fr": {
				Content:     "Une traduction fatiguee.",
				LastUpdated: "2020-01-01T00:00:00Z",
				TTL:         time.Now().Add(-time.Minute).Unix(),
			},
		}
		mockStore := new(MockStore)
		mockStore.On("GetReview", mock.Anything, 7, 1).Return(review, nil)
		mockStore.On("PutTranslation", mock.Anything, 7, 1, "fr", mock.Anything).Return(nil)
		mockTranslator := new(MockTranslator)
		mockTranslator.On("Translate", mock.Anything, "A masterpiece.", "fr").Return("Un chef-d'oeuvre.", nil).Once()
		r := newTestRouter(mockStore, mockTranslator)

		req, _ := http.NewRequest("GET", "/movies/7/reviews/1/translation?language=fr", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.TranslationResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Un chef-d'oeuvre.", resp.TranslatedContent)
		mockStore.AssertExpectations(t)
		mockTranslator.AssertExpectations(t)
	})

	errorTests := []struct {
		name               string
		url                string
		mockSetup          func(*MockStore, *MockTranslator)
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:               "Missing Language Parameter",
			url:                "/movies/7/reviews/1/translation",
			mockSetup:          func(ms *MockStore, mt *MockTranslator) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       `{"__type":"ValidationException", "message":"The language query parameter is required."}`,
		},
		{
			name:               "Invalid Language Code",
			url:                "/movies/7/reviews/1/translation?language=francais",
			mockSetup:          func(ms *MockStore, mt *MockTranslator) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       `{"__type":"ValidationException", "message":"Invalid language code: \"francais\"."}`,
		},
		{
			name: "Review Does Not Exist",
			url:  "/movies/7/reviews/99/translation?language=fr",
			mockSetup: func(ms *MockStore, mt *MockTranslator) {
				ms.On("GetReview", mock.Anything, 7, 99).Return(nil, store.ErrReviewNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedBody:       `{"__type":"ReviewNotFoundException", "message":"The specified review does not exist."}`,
		},
		{
			name: "Translator Failure",
			url:  "/movies/7/reviews/1/translation?language=fr",
			mockSetup: func(ms *MockStore, mt *MockTranslator) {
				ms.On("GetReview", mock.Anything, 7, 1).Return(aliceReview(), nil)
				mt.On("Translate", mock.Anything, "A masterpiece.", "fr").Return("", errors.New("provider timeout"))
			},
			expectedStatusCode: http.StatusBadGateway,
			expectedBody:       `{"__type":"TranslationServiceException", "message":"translation failed: provider timeout"}`,
		},
	}

	for _, tc := range errorTests {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := new(MockStore)
			mockTranslator := new(MockTranslator)
			tc.mockSetup(mockStore, mockTranslator)
			r := newTestRouter(mockStore, mockTranslator)

			req, _ := http.NewRequest("GET", tc.url, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			checkJSONResponse(t, rr, tc.expectedStatusCode, tc.expectedBody)
			mockStore.AssertExpectations(t)
			mockTranslator.AssertExpectations(t)
		})
	}
}
