package main

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tabeth/reelreviews/models"
	"github.com/tabeth/reelreviews/store"
)

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	mock.Mock
}

var _ store.Store = (*MockStore)(nil)

func (m *MockStore) PutReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockStore) GetReview(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
	args := m.Called(ctx, movieID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockStore) UpdateReviewContent(ctx context.Context, movieID, reviewID int, content, reviewDate string) error {
	args := m.Called(ctx, movieID, reviewID, content, reviewDate)
	return args.Error(0)
}

func (m *MockStore) DeleteReview(ctx context.Context, movieID, reviewID int) error {
	args := m.Called(ctx, movieID, reviewID)
	return args.Error(0)
}

func (m *MockStore) ListReviews(ctx context.Context, reviewerID string) ([]models.Review, error) {
	args := m.Called(ctx, reviewerID)
	var reviews []models.Review
	if args.Get(0) != nil {
		reviews = args.Get(0).([]models.Review)
	}
	return reviews, args.Error(1)
}

func (m *MockStore) ListMovieReviews(ctx context.Context, movieID int, reviewerID string) ([]models.Review, error) {
	args := m.Called(ctx, movieID, reviewerID)
	var reviews []models.Review
	if args.Get(0) != nil {
		reviews = args.Get(0).([]models.Review)
	}
	return reviews, args.Error(1)
}

func (m *MockStore) MaxReviewID(ctx context.Context, movieID int) (int, error) {
	args := m.Called(ctx, movieID)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) PutTranslation(ctx context.Context, movieID, reviewID int, language string, entry models.TranslationEntry) error {
	args := m.Called(ctx, movieID, reviewID, language, entry)
	return args.Error(0)
}

func (m *MockStore) BatchPutReviews(ctx context.Context, reviews []models.Review) error {
	args := m.Called(ctx, reviews)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
