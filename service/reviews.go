// Package service contains the business logic of the review API: CRUD with
// ownership enforcement, and the lazily-expiring translation cache. Storage
// and translator failures are translated here into *models.APIError values
// the HTTP layer can render directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tabeth/reelreviews/models"
	"github.com/tabeth/reelreviews/store"
)

// ReviewServicer defines the interface for review operations.
// The API layer depends on this interface.
type ReviewServicer interface {
	ListReviews(ctx context.Context, reviewerID string) ([]models.Review, error)
	ListMovieReviews(ctx context.Context, movieID int, reviewerID string) ([]models.Review, error)
	GetReview(ctx context.Context, movieID, reviewID int) (*models.Review, error)
	AddReview(ctx context.Context, movieID int, subject string, req *models.AddReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, movieID, reviewID int, subject string, req *models.UpdateReviewRequest) error
	DeleteReview(ctx context.Context, movieID, reviewID int, subject string) error
}

// ReviewService contains the business logic for review operations.
type ReviewService struct {
	store store.Store
}

// NewReviewService creates a new ReviewService.
func NewReviewService(store store.Store) *ReviewService {
	return &ReviewService{store: store}
}

// ListReviews returns all reviews, optionally filtered to one author. An
// empty result is reported as not-found rather than as an empty array.
func (s *ReviewService) ListReviews(ctx context.Context, reviewerID string) ([]models.Review, error) {
	reviews, err := s.store.ListReviews(ctx, reviewerID)
	if err != nil {
		return nil, models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to list reviews: %v", err))
	}
	if len(reviews) == 0 {
		return nil, models.New(models.ErrTypeReviewNotFound, "No reviews found.")
	}
	return reviews, nil
}

// ListMovieReviews returns one movie's reviews, optionally filtered to one
// author, with the same empty-means-not-found contract as ListReviews.
func (s *ReviewService) ListMovieReviews(ctx context.Context, movieID int, reviewerID string) ([]models.Review, error) {
	reviews, err := s.store.ListMovieReviews(ctx, movieID, reviewerID)
	if err != nil {
		return nil, models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to list reviews: %v", err))
	}
	if len(reviews) == 0 {
		return nil, models.New(models.ErrTypeReviewNotFound, fmt.Sprintf("No reviews found for movie %d.", movieID))
	}
	return reviews, nil
}

// GetReview returns a single review.
func (s *ReviewService) GetReview(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
	review, err := s.store.GetReview(ctx, movieID, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, models.New(models.ErrTypeReviewNotFound, "The specified review does not exist.")
		}
		return nil, models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to load review: %v", err))
	}
	return review, nil
}

// AddReview creates a review authored by the token subject. The review ID is
// assigned server-side as one past the movie's current highest ID. Two
// concurrent creations can draw the same ID; the conditional put makes the
// loser fail instead of silently overwriting the winner.
func (s *ReviewService) AddReview(ctx context.Context, movieID int, subject string, req *models.AddReviewRequest) (*models.Review, error) {
	if req.ReviewerID == "" {
		return nil, models.New(models.ErrTypeValidation, "reviewerId is required.")
	}
	if req.Content == "" {
		return nil, models.New(models.ErrTypeValidation, "content is required.")
	}
	if err := validateReviewDate(req.ReviewDate); err != nil {
		return nil, err
	}
	if req.ReviewerID != subject {
		return nil, models.New(models.ErrTypeAccessDenied, "reviewerId does not match the authenticated identity.")
	}

	maxID, err := s.store.MaxReviewID(ctx, movieID)
	if err != nil {
		return nil, models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to assign review id: %v", err))
	}

	review := &models.Review{
		MovieID:    movieID,
		ReviewID:   maxID + 1,
		ReviewerID: req.ReviewerID,
		ReviewDate: req.ReviewDate,
		Content:    req.Content,
	}

	if err := s.store.PutReview(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewAlreadyExists) {
			return nil, models.New(models.ErrTypeInternalFailure, "a concurrent write claimed this review id; please retry")
		}
		return nil, models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to persist review: %v", err))
	}
	return review, nil
}

// UpdateReview overwrites the content and reviewDate of an existing review
// after enforcing ownership: the token subject and the body-supplied
// reviewerId must both name the stored author. Replaying the same update is
// harmless; the write is a plain overwrite of the two mutable fields.
func (s *ReviewService) UpdateReview(ctx context.Context, movieID, reviewID int, subject string, req *models.UpdateReviewRequest) error {
	if req.Content == "" {
		return models.New(models.ErrTypeValidation, "content is required.")
	}
	if err := validateReviewDate(req.ReviewDate); err != nil {
		return err
	}

	review, err := s.store.GetReview(ctx, movieID, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return models.New(models.ErrTypeReviewNotFound, "The specified review does not exist.")
		}
		return models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to load review: %v", err))
	}

	// Any mismatch leaves the stored review untouched. The body-supplied
	// reviewerId is checked as well as the verified subject, so a caller
	// cannot act on someone else's review by claiming their identity.
	if review.ReviewerID != subject || review.ReviewerID != req.ReviewerID {
		return models.New(models.ErrTypeAccessDenied, "You do not own this review.")
	}

	if err := s.store.UpdateReviewContent(ctx, movieID, reviewID, req.Content, req.ReviewDate); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return models.New(models.ErrTypeReviewNotFound, "The specified review does not exist.")
		}
		return models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to update review: %v", err))
	}
	return nil
}

// DeleteReview removes a review after the same ownership check as update.
func (s *ReviewService) DeleteReview(ctx context.Context, movieID, reviewID int, subject string) error {
	review, err := s.store.GetReview(ctx, movieID, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return models.New(models.ErrTypeReviewNotFound, "The specified review does not exist.")
		}
		return models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to load review: %v", err))
	}

	if review.ReviewerID != subject {
		return models.New(models.ErrTypeAccessDenied, "You do not own this review.")
	}

	if err := s.store.DeleteReview(ctx, movieID, reviewID); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return models.New(models.ErrTypeReviewNotFound, "The specified review does not exist.")
		}
		return models.New(models.ErrTypeInternalFailure, fmt.Sprintf("failed to delete review: %v", err))
	}
	return nil
}

// validateReviewDate accepts an empty date or a calendar date in ISO-8601
// form (e.g. 2024-05-01).
func validateReviewDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return models.New(models.ErrTypeValidation, "reviewDate must be an ISO-8601 date (YYYY-MM-DD).")
	}
	return nil
}
