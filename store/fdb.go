package store

import (
	"context"
	"encoding/json"

	"github.com/apple/foundationdb/bindings/go/src/fdb"
	"github.com/apple/foundationdb/bindings/go/src/fdb/directory"
	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"

	"github.com/tabeth/reelreviews/models"
)

// fdbBatchSize caps how many reviews a single seed transaction writes.
// FoundationDB transactions are limited to 10MB and five seconds.
const fdbBatchSize = 100

// FDBStore is a FoundationDB implementation of the Store interface.
//
// Layout, two directories under "reelreviews":
//
//	reviews:   (movieId, reviewId)             -> review JSON
//	reviewers: (reviewerId, movieId, reviewId) -> empty (author index)
//
// Tuple encoding keeps integer keys ordered, so range reads come back in
// (movieId, reviewId) order without sorting.
type FDBStore struct {
	db          fdb.Database
	reviewDir   directory.DirectorySubspace
	reviewerDir directory.DirectorySubspace
}

// NewFDBStore creates a new FDBStore. An empty clusterFile uses the
// platform default cluster file.
func NewFDBStore(clusterFile string) (*FDBStore, error) {
	return NewFDBStoreAtPath(clusterFile, "reelreviews")
}

// NewFDBStoreAtPath creates a store rooted at the given directory instead of
// the default one. Tests use this to work in a throwaway keyspace.
func NewFDBStoreAtPath(clusterFile, root string) (*FDBStore, error) {
	fdb.MustAPIVersion(730)

	var db fdb.Database
	var err error
	if clusterFile != "" {
		db, err = fdb.OpenDatabase(clusterFile)
	} else {
		db, err = fdb.OpenDefault()
	}
	if err != nil {
		return nil, err
	}

	reviewDir, err := directory.CreateOrOpen(db, []string{root, "reviews"}, nil)
	if err != nil {
		return nil, err
	}
	reviewerDir, err := directory.CreateOrOpen(db, []string{root, "reviewers"}, nil)
	if err != nil {
		return nil, err
	}

	return &FDBStore{db: db, reviewDir: reviewDir, reviewerDir: reviewerDir}, nil
}

// Destroy removes the store's entire directory tree. Test cleanup only.
func (s *FDBStore) Destroy() error {
	_, err := s.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
		tr.ClearRange(s.reviewDir)
		tr.ClearRange(s.reviewerDir)
		return nil, nil
	})
	return err
}

func (s *FDBStore) reviewKey(movieID, reviewID int) fdb.Key {
	return s.reviewDir.Pack(tuple.Tuple{movieID, reviewID})
}

func (s *FDBStore) reviewerKey(reviewerID string, movieID, reviewID int) fdb.Key {
	return s.reviewerDir.Pack(tuple.Tuple{reviewerID, movieID, reviewID})
}

// PutReview creates a review and its author-index entry in one transaction.
func (s *FDBStore) PutReview(ctx context.Context, review *models.Review) error {
	r := *review
	if r.Translations == nil {
		r.Translations = map[string]models.TranslationEntry{}
	}
	data, err := json.Marshal(&r)
	if err != nil {
		return err
	}

	_, err = s.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
		key := s.reviewKey(r.MovieID, r.ReviewID)
		existing, err := tr.Get(key).Get()
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrReviewAlreadyExists
		}

		tr.Set(key, data)
		tr.Set(s.reviewerKey(r.ReviewerID, r.MovieID, r.ReviewID), []byte{})
		return nil, nil
	})
	return err
}

// GetReview fetches one review by key.
func (s *FDBStore) GetReview(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
	val, err := s.db.ReadTransact(func(rtr fdb.ReadTransaction) (interface{}, error) {
		data, err := rtr.Get(s.reviewKey(movieID, reviewID)).Get()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, ErrReviewNotFound
		}

		review := &models.Review{}
		if err := json.Unmarshal(data, review); err != nil {
			return nil, err
		}
		return review, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*models.Review), nil
}

// UpdateReviewContent rewrites content and reviewDate inside a transaction,
// leaving authorship and cached translations as stored.
func (s *FDBStore) UpdateReviewContent(ctx context.Context, movieID, reviewID int, content, reviewDate string) error {
	_, err := s.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
		key := s.reviewKey(movieID, reviewID)
		data, err := tr.Get(key).Get()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, ErrReviewNotFound
		}

		review := &models.Review{}
		if err := json.Unmarshal(data, review); err != nil {
			return nil, err
		}
		review.Content = content
		review.ReviewDate = reviewDate

		updated, err := json.Marshal(review)
		if err != nil {
			return nil, err
		}
		tr.Set(key, updated)
		return nil, nil
	})
	return err
}

// DeleteReview removes a review and its author-index entry.
func (s *FDBStore) DeleteReview(ctx context.Context, movieID, reviewID int) error {
	_, err := s.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
		key := s.reviewKey(movieID, reviewID)
		data, err := tr.Get(key).Get()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, ErrReviewNotFound
		}

		review := &models.Review{}
		if err := json.Unmarshal(data, review); err != nil {
			return nil, err
		}

		tr.Clear(key)
		tr.Clear(s.reviewerKey(review.ReviewerID, movieID, reviewID))
		return nil, nil
	})
	return err
}

// ListReviews returns every review, optionally filtered to one author. The
// filtered form walks the author index and point-reads each review.
func (s *FDBStore) ListReviews(ctx context.Context, reviewerID string) ([]models.Review, error) {
	val, err := s.db.ReadTransact(func(rtr fdb.ReadTransaction) (interface{}, error) {
		if reviewerID == "" {
			pr, err := fdb.PrefixRange(s.reviewDir.Pack(tuple.Tuple{}))
			if err != nil {
				return nil, err
			}
			return readReviewRange(rtr, pr)
		}

		pr, err := fdb.PrefixRange(s.reviewerDir.Pack(tuple.Tuple{reviewerID}))
		if err != nil {
			return nil, err
		}

		var reviews []models.Review
		iter := rtr.GetRange(pr, fdb.RangeOptions{}).Iterator()
		for iter.Advance() {
			kv, err := iter.Get()
			if err != nil {
				return nil, err
			}

			// Index keys are (reviewerId, movieId, reviewId).
			t, err := s.reviewerDir.Unpack(kv.Key)
			if err != nil || len(t) != 3 {
				continue
			}
			movieID, ok1 := t[1].(int64)
			reviewID, ok2 := t[2].(int64)
			if !ok1 || !ok2 {
				continue
			}

			data, err := rtr.Get(s.reviewKey(int(movieID), int(reviewID))).Get()
			if err != nil {
				return nil, err
			}
			if data == nil {
				// Dangling index entry; skip rather than fail the listing.
				continue
			}

			var review models.Review
			if err := json.Unmarshal(data, &review); err != nil {
				return nil, err
			}
			reviews = append(reviews, review)
		}
		return reviews, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]models.Review), nil
}

// ListMovieReviews returns one movie's reviews in reviewId order,
// optionally filtered to one author.
func (s *FDBStore) ListMovieReviews(ctx context.Context, movieID int, reviewerID string) ([]models.Review, error) {
	val, err := s.db.ReadTransact(func(rtr fdb.ReadTransaction) (interface{}, error) {
		pr, err := fdb.PrefixRange(s.reviewDir.Pack(tuple.Tuple{movieID}))
		if err != nil {
			return nil, err
		}
		reviews, err := readReviewRange(rtr, pr)
		if err != nil {
			return nil, err
		}
		if reviewerID == "" {
			return reviews, nil
		}

		filtered := make([]models.Review, 0, len(reviews))
		for _, review := range reviews {
			if review.ReviewerID == reviewerID {
				filtered = append(filtered, review)
			}
		}
		return filtered, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]models.Review), nil
}

// MaxReviewID reads the movie's highest review key with a reverse range.
func (s *FDBStore) MaxReviewID(ctx context.Context, movieID int) (int, error) {
	val, err := s.db.ReadTransact(func(rtr fdb.ReadTransaction) (interface{}, error) {
		pr, err := fdb.PrefixRange(s.reviewDir.Pack(tuple.Tuple{movieID}))
		if err != nil {
			return nil, err
		}

		iter := rtr.GetRange(pr, fdb.RangeOptions{Limit: 1, Reverse: true}).Iterator()
		if !iter.Advance() {
			return 0, nil
		}
		kv, err := iter.Get()
		if err != nil {
			return nil, err
		}

		var review models.Review
		if err := json.Unmarshal(kv.Value, &review); err != nil {
			return nil, err
		}
		return review.ReviewID, nil
	})
	if err != nil {
		return 0, err
	}
	return val.(int), nil
}

// PutTranslation stores one language's cache entry. The serializable
// transaction means concurrent writers to sibling languages cannot clobber
// each other, matching the targeted update the DynamoDB backend uses.
func (s *FDBStore) PutTranslation(ctx context.Context, movieID, reviewID int, language string, entry models.TranslationEntry) error {
	_, err := s.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
		key := s.reviewKey(movieID, reviewID)
		data, err := tr.Get(key).Get()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, ErrReviewNotFound
		}

		review := &models.Review{}
		if err := json.Unmarshal(data, review); err != nil {
			return nil, err
		}
		if review.Translations == nil {
			review.Translations = map[string]models.TranslationEntry{}
		}
		review.Translations[language] = entry

		updated, err := json.Marshal(review)
		if err != nil {
			return nil, err
		}
		tr.Set(key, updated)
		return nil, nil
	})
	return err
}

// BatchPutReviews bulk-loads reviews, overwriting existing keys. Writes are
// chunked so no single transaction outgrows FoundationDB's limits.
func (s *FDBStore) BatchPutReviews(ctx context.Context, reviews []models.Review) error {
	for start := 0; start < len(reviews); start += fdbBatchSize {
		end := start + fdbBatchSize
		if end > len(reviews) {
			end = len(reviews)
		}
		chunk := reviews[start:end]

		_, err := s.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
			for _, review := range chunk {
				r := review
				if r.Translations == nil {
					r.Translations = map[string]models.TranslationEntry{}
				}
				data, err := json.Marshal(&r)
				if err != nil {
					return nil, err
				}

				key := s.reviewKey(r.MovieID, r.ReviewID)
				existing, err := tr.Get(key).Get()
				if err != nil {
					return nil, err
				}
				if existing != nil {
					// Overwrite: drop the old author-index entry in case
					// the seed data reassigns the review.
					old := &models.Review{}
					if err := json.Unmarshal(existing, old); err == nil && old.ReviewerID != r.ReviewerID {
						tr.Clear(s.reviewerKey(old.ReviewerID, r.MovieID, r.ReviewID))
					}
				}

				tr.Set(key, data)
				tr.Set(s.reviewerKey(r.ReviewerID, r.MovieID, r.ReviewID), []byte{})
			}
			return nil, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Ping verifies the cluster is reachable with a single read.
func (s *FDBStore) Ping(ctx context.Context) error {
	_, err := s.db.ReadTransact(func(rtr fdb.ReadTransaction) (interface{}, error) {
		return rtr.Get(s.reviewDir.Pack(tuple.Tuple{})).Get()
	})
	return err
}

// readReviewRange collects every review JSON value in the given range.
func readReviewRange(rtr fdb.ReadTransaction, r fdb.Range) ([]models.Review, error) {
	var reviews []models.Review
	iter := rtr.GetRange(r, fdb.RangeOptions{}).Iterator()
	for iter.Advance() {
		kv, err := iter.Get()
		if err != nil {
			return nil, err
		}

		var review models.Review
		if err := json.Unmarshal(kv.Value, &review); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}
