package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/tabeth/reelreviews/auth"
	"github.com/tabeth/reelreviews/models"
	"github.com/tabeth/reelreviews/service"
	"github.com/tabeth/reelreviews/store"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// App encapsulates the application's dependencies: the review and translation
// services, the storage interface for health checks, and token verification.
// This struct is used as the receiver for our HTTP handlers, which is a common
// pattern for dependency injection in Go web services.
type App struct {
	Reviews      service.ReviewServicer
	Translations service.TranslationServicer
	Store        store.Store
	Verifier     auth.Verifier

	// Minter is set only in static auth mode; it backs the local token
	// mint endpoint. AdminAPIKey guards that endpoint and disables it
	// when empty.
	Minter      *auth.StaticVerifier
	AdminAPIKey string

	// StoreName is reported by the health endpoint.
	StoreName string
}

// sendErrorResponse is a convenience helper function to format and send error
// responses in the AWS JSON error shape, with the request ID echoed so a
// failure can be matched against server logs.
func (app *App) sendErrorResponse(w http.ResponseWriter, r *http.Request, errorType string, message string, statusCode int) {
	errResp := models.ErrorResponse{
		Type:      errorType,
		Message:   message,
		RequestID: requestIDFromContext(r.Context()),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errResp)
}

// sendAPIError renders a service-layer error. Anything that is not a typed
// *models.APIError is masked as an internal failure.
func (app *App) sendAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		app.sendErrorResponse(w, r, apiErr.Type, apiErr.Message, models.StatusFor(apiErr.Type))
		return
	}
	app.sendErrorResponse(w, r, models.ErrTypeInternalFailure, err.Error(), http.StatusInternalServerError)
}

func (app *App) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// RegisterReviewHandlers registers all API endpoint handlers with the Chi
// router. Reads and translations are public; mutations sit behind the token
// middleware so an unauthenticated update is rejected before any store read.
func (app *App) RegisterReviewHandlers(r *chi.Mux) {
	r.Get("/health", app.HealthHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/auth/token", app.CreateTokenHandler)

	r.Get("/reviews", app.ListAllReviewsHandler)
	r.Get("/movies/{movieId}/reviews", app.ListMovieReviewsHandler)
	r.Get("/movies/{movieId}/reviews/{reviewId}", app.GetReviewHandler)
	r.Get("/movies/{movieId}/reviews/{reviewId}/translation", app.TranslateReviewHandler)

	r.Group(func(r chi.Router) {
		r.Use(app.AuthMiddleware)
		r.Post("/movies/{movieId}/reviews", app.AddReviewHandler)
		r.Put("/movies/{movieId}/reviews/{reviewId}", app.UpdateReviewHandler)
		r.Delete("/movies/{movieId}/reviews/{reviewId}", app.DeleteReviewHandler)
	})
}

// pathInt extracts an integer URL parameter.
func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// --- Review Handlers ---

// ListAllReviewsHandler handles requests to list every review in the store.
//
// @Summary List all reviews
// @Description Returns every review, optionally filtered to a single reviewer.
// @Tags reviews
// @Produce json
// @Param reviewerId query string false "only reviews by this reviewer"
// @Success 200 {array} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /reviews [get]
func (app *App) ListAllReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := app.Reviews.ListReviews(r.Context(), r.URL.Query().Get("reviewerId"))
	if err != nil {
		app.sendAPIError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, reviews)
}

// ListMovieReviewsHandler handles requests to list the reviews of one movie.
//
// @Summary List reviews for a movie
// @Tags reviews
// @Produce json
// @Param movieId path int true "movie identifier"
// @Param reviewerId query string false "only reviews by this reviewer"
// @Success 200 {array} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /movies/{movieId}/reviews [get]
func (app *App) ListMovieReviewsHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathInt(r, "movieId")
	if err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "movieId must be an integer.", http.StatusBadRequest)
		return
	}

	reviews, err := app.Reviews.ListMovieReviews(r.Context(), movieID, r.URL.Query().Get("reviewerId"))
	if err != nil {
		app.sendAPIError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, reviews)
}

// GetReviewHandler handles requests for a single review.
//
// @Summary Get one review
// @Tags reviews
// @Produce json
// @Param movieId path int true "movie identifier"
// @Param reviewId path int true "review identifier"
// @Success 200 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /movies/{movieId}/reviews/{reviewId} [get]
func (app *App) GetReviewHandler(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.reviewKeyParams(w, r)
	if !ok {
		return
	}

	review, err := app.Reviews.GetReview(r.Context(), movieID, reviewID)
	if err != nil {
		app.sendAPIError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, review)
}

// AddReviewHandler handles requests to create a review. The review is
// attributed to the token subject; the server assigns the review ID.
//
// @Summary Add a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param movieId path int true "movie identifier"
// @Param body body models.AddReviewRequest true "review to create"
// @Success 201 {object} models.AddReviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /movies/{movieId}/reviews [post]
func (app *App) AddReviewHandler(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathInt(r, "movieId")
	if err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "movieId must be an integer.", http.StatusBadRequest)
		return
	}

	subject, ok := subjectFromContext(r.Context())
	if !ok {
		app.sendErrorResponse(w, r, models.ErrTypeAccessDenied, "Access to the resource is denied. Missing authentication.", http.StatusForbidden)
		return
	}

	var req models.AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "Invalid request body", http.StatusBadRequest)
		return
	}

	review, err := app.Reviews.AddReview(r.Context(), movieID, subject, &req)
	if err != nil {
		app.sendAPIError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, models.AddReviewResponse{
		MovieID:  review.MovieID,
		ReviewID: review.ReviewID,
		Message:  "Review added successfully.",
	})
}

// UpdateReviewHandler handles requests to overwrite a review's content and
// date. Only the review's author may update it.
//
// @Summary Update a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param movieId path int true "movie identifier"
// @Param reviewId path int true "review identifier"
// @Param body body models.UpdateReviewRequest true "new content"
// @Success 200 {object} models.UpdateReviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /movies/{movieId}/reviews/{reviewId} [put]
func (app *App) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.reviewKeyParams(w, r)
	if !ok {
		return
	}

	subject, ok := subjectFromContext(r.Context())
	if !ok {
		app.sendErrorResponse(w, r, models.ErrTypeAccessDenied, "Access to the resource is denied. Missing authentication.", http.StatusForbidden)
		return
	}

	var req models.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := app.Reviews.UpdateReview(r.Context(), movieID, reviewID, subject, &req); err != nil {
		app.sendAPIError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, models.UpdateReviewResponse{Message: "Review updated successfully."})
}

// DeleteReviewHandler handles requests to delete a review. Only the review's
// author may delete it.
//
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Param movieId path int true "movie identifier"
// @Param reviewId path int true "review identifier"
// @Success 200 {object} models.DeleteReviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /movies/{movieId}/reviews/{reviewId} [delete]
func (app *App) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.reviewKeyParams(w, r)
	if !ok {
		return
	}

	subject, ok := subjectFromContext(r.Context())
	if !ok {
		app.sendErrorResponse(w, r, models.ErrTypeAccessDenied, "Access to the resource is denied. Missing authentication.", http.StatusForbidden)
		return
	}

	if err := app.Reviews.DeleteReview(r.Context(), movieID, reviewID, subject); err != nil {
		app.sendAPIError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, models.DeleteReviewResponse{Message: "Review deleted successfully."})
}

// --- Translation Handler ---

// TranslateReviewHandler handles requests to read a review in another
// language. Fresh cached translations are served without contacting the
// translation service.
//
// @Summary Translate a review
// @Tags translations
// @Produce json
// @Param movieId path int true "movie identifier"
// @Param reviewId path int true "review identifier"
// @Param language query string true "target language code, e.g. fr or pt-BR"
// @Success 200 {object} models.TranslationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /movies/{movieId}/reviews/{reviewId}/translation [get]
func (app *App) TranslateReviewHandler(w http.ResponseWriter, r *http.Request) {
	movieID, reviewID, ok := app.reviewKeyParams(w, r)
	if !ok {
		return
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "The language query parameter is required.", http.StatusBadRequest)
		return
	}

	translation, err := app.Translations.GetTranslation(r.Context(), movieID, reviewID, language)
	if err != nil {
		app.sendAPIError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, translation)
}

// --- Health ---

// HealthHandler reports whether the service can reach its store.
//
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /health [get]
func (app *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Store.Ping(r.Context()); err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeInternalFailure, "Store is unreachable.", http.StatusServiceUnavailable)
		return
	}
	app.writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Store: app.StoreName})
}

// reviewKeyParams parses the movieId and reviewId URL parameters, writing a
// validation error itself when either is malformed.
func (app *App) reviewKeyParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	movieID, err := pathInt(r, "movieId")
	if err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "movieId must be an integer.", http.StatusBadRequest)
		return 0, 0, false
	}
	reviewID, err := pathInt(r, "reviewId")
	if err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "reviewId must be an integer.", http.StatusBadRequest)
		return 0, 0, false
	}
	return movieID, reviewID, true
}
