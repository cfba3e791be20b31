package store

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"testing"
	"time"

	"github.com/apple/foundationdb/bindings/go/src/fdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabeth/reelreviews/models"
)

var (
	fdbAvailable bool
	fdbCheckOnce sync.Once
)

// skipIfFDBUnavailable skips the test when no FoundationDB cluster is
// reachable, so the suite stays green on machines without one.
func skipIfFDBUnavailable(t testing.TB) {
	t.Helper()
	fdbCheckOnce.Do(func() {
		fdb.MustAPIVersion(730)
		db, err := fdb.OpenDefault()
		if err != nil {
			return
		}

		done := make(chan bool, 1)
		go func() {
			_, err := db.ReadTransact(func(rtr fdb.ReadTransaction) (interface{}, error) {
				return rtr.Get(fdb.Key("availability_check")).Get()
			})
			done <- err == nil
		}()

		select {
		case ok := <-done:
			fdbAvailable = ok
		case <-time.After(2 * time.Second):
		}
	})
	if !fdbAvailable {
		t.Skip("Skipping test because FoundationDB is not available")
	}
}

// newTestFDBStore opens a store in a throwaway directory and tears it down
// with the test.
func newTestFDBStore(t *testing.T) *FDBStore {
	t.Helper()
	skipIfFDBUnavailable(t)

	buf := make([]byte, 8)
	_, err := rand.Read(buf)
	require.NoError(t, err)

	s, err := NewFDBStoreAtPath("", "reelreviews_test_"+hex.EncodeToString(buf))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Destroy()
	})
	return s
}

func testReview(movieID, reviewID int, reviewerID, content string) *models.Review {
	return &models.Review{
		MovieID:    movieID,
		ReviewID:   reviewID,
		ReviewerID: reviewerID,
		ReviewDate: "2024-05-01",
		Content:    content,
	}
}

func TestFDBStore_PutGetRoundtrip(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	want := testReview(1, 1, "alice", "Loved it.")
	require.NoError(t, s.PutReview(ctx, want))

	got, err := s.GetReview(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, want.MovieID, got.MovieID)
	assert.Equal(t, want.ReviewID, got.ReviewID)
	assert.Equal(t, want.ReviewerID, got.ReviewerID)
	assert.Equal(t, want.ReviewDate, got.ReviewDate)
	assert.Equal(t, want.Content, got.Content)
	assert.NotNil(t, got.Translations)
}

func TestFDBStore_PutReviewRejectsDuplicateKey(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "First.")))

	err := s.PutReview(ctx, testReview(1, 1, "bob", "Second."))
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)

	// The original must have survived.
	got, err := s.GetReview(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.ReviewerID)
}

func TestFDBStore_GetReviewNotFound(t *testing.T) {
	s := newTestFDBStore(t)

	_, err := s.GetReview(t.Context(), 99, 99)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestFDBStore_UpdateReviewContent(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	review := testReview(1, 1, "alice", "Loved it.")
	require.NoError(t, s.PutReview(ctx, review))
	require.NoError(t, s.PutTranslation(ctx, 1, 1, "fr", models.TranslationEntry{
		Content: "Je l'ai adore.", LastUpdated: "2024-05-01T00:00:00Z", TTL: 1,
	}))

	require.NoError(t, s.UpdateReviewContent(ctx, 1, 1, "Changed my mind.", "2024-06-01"))

	got, err := s.GetReview(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Changed my mind.", got.Content)
	assert.Equal(t, "2024-06-01", got.ReviewDate)
	// Authorship and cached translations survive the rewrite.
	assert.Equal(t, "alice", got.ReviewerID)
	assert.Contains(t, got.Translations, "fr")
}

func TestFDBStore_UpdateClearsDateWhenEmpty(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "Loved it.")))
	require.NoError(t, s.UpdateReviewContent(ctx, 1, 1, "Still do.", ""))

	got, err := s.GetReview(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, got.ReviewDate)
}

func TestFDBStore_UpdateMissingReview(t *testing.T) {
	s := newTestFDBStore(t)

	err := s.UpdateReviewContent(t.Context(), 1, 99, "content", "")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestFDBStore_DeleteReviewDropsAuthorIndex(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "Loved it.")))
	require.NoError(t, s.PutReview(ctx, testReview(2, 1, "alice", "This one too.")))

	require.NoError(t, s.DeleteReview(ctx, 1, 1))

	_, err := s.GetReview(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	// The author listing must not resurrect the deleted review.
	reviews, err := s.ListReviews(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 2, reviews[0].MovieID)

	err = s.DeleteReview(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestFDBStore_ListReviewsOrdering(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	// Inserted out of order on purpose.
	require.NoError(t, s.PutReview(ctx, testReview(2, 1, "bob", "b")))
	require.NoError(t, s.PutReview(ctx, testReview(1, 2, "alice", "a2")))
	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "a1")))

	reviews, err := s.ListReviews(ctx, "")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, []int{1, 1, 2}, []int{reviews[0].MovieID, reviews[1].MovieID, reviews[2].MovieID})
	assert.Equal(t, []int{1, 2, 1}, []int{reviews[0].ReviewID, reviews[1].ReviewID, reviews[2].ReviewID})
}

func TestFDBStore_ListReviewsByAuthor(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "a")))
	require.NoError(t, s.PutReview(ctx, testReview(1, 2, "bob", "b")))
	require.NoError(t, s.PutReview(ctx, testReview(3, 1, "alice", "c")))

	reviews, err := s.ListReviews(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, review := range reviews {
		assert.Equal(t, "alice", review.ReviewerID)
	}

	reviews, err = s.ListReviews(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestFDBStore_ListMovieReviews(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "a")))
	require.NoError(t, s.PutReview(ctx, testReview(1, 2, "bob", "b")))
	require.NoError(t, s.PutReview(ctx, testReview(2, 1, "alice", "c")))

	reviews, err := s.ListMovieReviews(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 1, reviews[0].ReviewID)
	assert.Equal(t, 2, reviews[1].ReviewID)

	reviews, err = s.ListMovieReviews(ctx, 1, "bob")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "bob", reviews[0].ReviewerID)
}

func TestFDBStore_MaxReviewID(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	max, err := s.MaxReviewID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	require.NoError(t, s.PutReview(ctx, testReview(1, 3, "alice", "a")))
	require.NoError(t, s.PutReview(ctx, testReview(1, 7, "bob", "b")))
	require.NoError(t, s.PutReview(ctx, testReview(2, 50, "carol", "c")))

	max, err = s.MaxReviewID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, max)
}

func TestFDBStore_PutTranslationKeepsSiblings(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "Loved it.")))

	fr := models.TranslationEntry{Content: "fr text", LastUpdated: "2024-05-01T00:00:00Z", TTL: 100}
	de := models.TranslationEntry{Content: "de text", LastUpdated: "2024-05-02T00:00:00Z", TTL: 200}
	require.NoError(t, s.PutTranslation(ctx, 1, 1, "fr", fr))
	require.NoError(t, s.PutTranslation(ctx, 1, 1, "de", de))

	got, err := s.GetReview(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, fr, got.Translations["fr"])
	assert.Equal(t, de, got.Translations["de"])

	// Overwriting one language leaves the other alone.
	fr2 := models.TranslationEntry{Content: "fr text v2", LastUpdated: "2024-05-03T00:00:00Z", TTL: 300}
	require.NoError(t, s.PutTranslation(ctx, 1, 1, "fr", fr2))

	got, err = s.GetReview(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, fr2, got.Translations["fr"])
	assert.Equal(t, de, got.Translations["de"])
}

func TestFDBStore_PutTranslationMissingReview(t *testing.T) {
	s := newTestFDBStore(t)

	err := s.PutTranslation(t.Context(), 1, 99, "fr", models.TranslationEntry{Content: "x"})
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestFDBStore_BatchPutReviews(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	// More than one transaction's worth, to cover the chunked path.
	reviews := make([]models.Review, 0, fdbBatchSize+5)
	for i := 1; i <= fdbBatchSize+5; i++ {
		reviews = append(reviews, *testReview(1, i, "alice", "seeded"))
	}
	require.NoError(t, s.BatchPutReviews(ctx, reviews))

	listed, err := s.ListMovieReviews(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, listed, fdbBatchSize+5)

	max, err := s.MaxReviewID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, fdbBatchSize+5, max)
}

func TestFDBStore_BatchPutOverwriteReassignsAuthor(t *testing.T) {
	s := newTestFDBStore(t)
	ctx := t.Context()

	require.NoError(t, s.PutReview(ctx, testReview(1, 1, "alice", "original")))

	// Re-seeding the same key under a new author must move the index entry.
	require.NoError(t, s.BatchPutReviews(ctx, []models.Review{*testReview(1, 1, "bob", "replacement")}))

	got, err := s.GetReview(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.ReviewerID)

	aliceReviews, err := s.ListReviews(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, aliceReviews)

	bobReviews, err := s.ListReviews(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobReviews, 1)
}

func TestFDBStore_Ping(t *testing.T) {
	s := newTestFDBStore(t)
	assert.NoError(t, s.Ping(t.Context()))
}
