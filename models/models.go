// Package models contains the data structures used throughout the application.
// These structures define the shape of API requests and responses, as well as the
// internal representation of reviews as they are persisted. The same Review struct
// is used for both JSON serialization at the HTTP boundary and attribute-value
// marshaling in the DynamoDB store, so it carries both sets of tags.
package models

import "time"

// Review is the internal and wire representation of a single movie review.
// A review is uniquely identified by the (MovieID, ReviewID) pair; both are
// assigned at creation time and never change afterwards.
type Review struct {
	// MovieID identifies the movie this review belongs to.
	MovieID int `json:"movieId" dynamodbav:"movieId"`
	// ReviewID identifies the review within its movie.
	ReviewID int `json:"reviewId" dynamodbav:"reviewId"`
	// ReviewerID is the identity of the review's author. It is recorded once
	// at creation and is never overwritten by updates.
	ReviewerID string `json:"reviewerId" dynamodbav:"reviewerId"`
	// ReviewDate is the date the review was written, in ISO-8601 form. Optional.
	ReviewDate string `json:"reviewDate,omitempty" dynamodbav:"reviewDate,omitempty"`
	// Content is the review text in its original language.
	Content string `json:"content" dynamodbav:"content"`
	// Translations caches machine translations of Content, keyed by language
	// code. Entries expire lazily: they stay stored after their TTL passes and
	// are re-validated on every read.
	Translations map[string]TranslationEntry `json:"translations,omitempty" dynamodbav:"translations"`
}

// TranslationEntry is one cached translation of a review's content.
type TranslationEntry struct {
	// Content is the translated text.
	Content string `json:"content" dynamodbav:"content"`
	// LastUpdated records when the translation was produced, in RFC 3339 form.
	LastUpdated string `json:"lastUpdated" dynamodbav:"lastUpdated"`
	// TTL is the absolute expiry instant in Unix seconds. The entry is served
	// from cache only while the request time is strictly before this instant.
	TTL int64 `json:"ttl" dynamodbav:"ttl"`
}

// Fresh reports whether the entry may still be served at the given instant.
func (e TranslationEntry) Fresh(now time.Time) bool {
	return now.Unix() < e.TTL
}

// AddReviewRequest is the body of POST /movies/{movieId}/reviews.
type AddReviewRequest struct {
	// ReviewerID is the identity of the author. It must match the subject of
	// the caller's token.
	ReviewerID string `json:"reviewerId"`
	// ReviewDate is the date the review was written, in ISO-8601 form. Optional.
	ReviewDate string `json:"reviewDate,omitempty"`
	// Content is the review text.
	Content string `json:"content"`
}

// AddReviewResponse confirms a successful creation and reports the identifiers
// assigned to the new review.
type AddReviewResponse struct {
	// MovieID is the movie the review was attached to.
	MovieID int `json:"movieId"`
	// ReviewID is the identifier assigned to the new review.
	ReviewID int `json:"reviewId"`
	// Message is a human-readable confirmation.
	Message string `json:"message"`
}

// UpdateReviewRequest is the body of PUT /movies/{movieId}/reviews/{reviewId}.
// Only Content and ReviewDate are writable; authorship and identifiers are
// immutable once the review exists.
type UpdateReviewRequest struct {
	// ReviewerID is the caller's claimed identity. It must match both the
	// token subject and the stored author of the review.
	ReviewerID string `json:"reviewerId"`
	// ReviewDate is the new review date, in ISO-8601 form. An empty value
	// clears the stored date.
	ReviewDate string `json:"reviewDate,omitempty"`
	// Content is the new review text.
	Content string `json:"content"`
}

// UpdateReviewResponse confirms a successful update.
type UpdateReviewResponse struct {
	// Message is a human-readable confirmation.
	Message string `json:"message"`
}

// DeleteReviewResponse confirms a successful deletion.
type DeleteReviewResponse struct {
	// Message is a human-readable confirmation.
	Message string `json:"message"`
}

// TranslationResponse is the body of a successful translation request,
// whether the text came from the cache or from the translation service.
type TranslationResponse struct {
	// MovieID is the movie the review belongs to.
	MovieID int `json:"movieId"`
	// ReviewID is the review that was translated.
	ReviewID int `json:"reviewId"`
	// Language is the target language code.
	Language string `json:"language"`
	// TranslatedContent is the review text in the target language.
	TranslatedContent string `json:"translatedContent"`
	// LastUpdated records when this translation was produced, in RFC 3339 form.
	LastUpdated string `json:"lastUpdated"`
}

type CreateTokenRequest struct {
	ReviewerID string `json:"reviewerId"`
}

type CreateTokenResponse struct {
	Token string `json:"token"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	// Status is "ok" when the service is able to reach its store.
	Status string `json:"status"`
	// Store names the active storage backend.
	Store string `json:"store"`
}

// ErrorResponse defines the standard AWS JSON error response format.
// This ensures that clients interacting with this service can parse errors in a familiar way.
type ErrorResponse struct {
	// Type is the error code (e.g., "ValidationException").
	Type string `json:"__type"`
	// Message is the descriptive error message.
	Message string `json:"message"`
	// RequestID echoes the request identifier so failures can be correlated
	// with server logs.
	RequestID string `json:"requestId,omitempty"`
}
