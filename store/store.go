package store

import (
	"context"
	"errors"

	"github.com/tabeth/reelreviews/models"
)

var (
	// ErrReviewNotFound is returned when trying to operate on a review that does not exist.
	ErrReviewNotFound = errors.New("review does not exist")
	// ErrReviewAlreadyExists is returned when trying to create a review whose
	// (movieId, reviewId) key is already taken.
	ErrReviewAlreadyExists = errors.New("review already exists")
)

// Store is the interface for the underlying storage system.
// It defines all the data operations required by the review API. Two
// implementations exist: DynamoDB (managed) and FoundationDB (self-hosted).
type Store interface {
	// Review lifecycle
	PutReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, movieID, reviewID int) (*models.Review, error)
	// UpdateReviewContent overwrites content and reviewDate of an existing
	// review. It never touches reviewerId, identifiers, or translations.
	// An empty reviewDate clears the stored date.
	UpdateReviewContent(ctx context.Context, movieID, reviewID int, content, reviewDate string) error
	DeleteReview(ctx context.Context, movieID, reviewID int) error

	// Listings. An empty reviewerID means no author filter. Implementations
	// return the reviews in (movieId, reviewId) order.
	ListReviews(ctx context.Context, reviewerID string) ([]models.Review, error)
	ListMovieReviews(ctx context.Context, movieID int, reviewerID string) ([]models.Review, error)

	// MaxReviewID returns the highest review ID currently assigned within a
	// movie, or 0 when the movie has no reviews. Used for server-side ID
	// assignment.
	MaxReviewID(ctx context.Context, movieID int) (int, error)

	// PutTranslation writes one language's cached translation on an existing
	// review without disturbing sibling languages or any other field.
	PutTranslation(ctx context.Context, movieID, reviewID int, language string, entry models.TranslationEntry) error

	// BatchPutReviews bulk-loads reviews, overwriting existing keys. Used by
	// the seed loader, never by the request path.
	BatchPutReviews(ctx context.Context, reviews []models.Review) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
