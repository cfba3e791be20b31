package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tabeth/reelreviews/models"
)

// mintTokenTTL bounds how long a locally minted token stays valid.
const mintTokenTTL = 24 * time.Hour

// CreateTokenHandler handles requests to generate a new JWT for local
// development. It requires a valid Admin API Key and is only available in
// static auth mode; with a real identity provider, tokens come from the
// provider, not from this service.
func (app *App) CreateTokenHandler(w http.ResponseWriter, r *http.Request) {
	if app.Minter == nil || app.AdminAPIKey == "" {
		app.sendErrorResponse(w, r, models.ErrTypeAccessDenied, "Token minting is not enabled", http.StatusForbidden)
		return
	}

	if r.Header.Get("X-Admin-Key") != app.AdminAPIKey {
		app.sendErrorResponse(w, r, models.ErrTypeAccessDenied, "Invalid or missing Admin API Key", http.StatusForbidden)
		return
	}

	var req models.CreateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.ReviewerID == "" {
		app.sendErrorResponse(w, r, models.ErrTypeValidation, "reviewerId is required", http.StatusBadRequest)
		return
	}

	token, err := app.Minter.Mint(req.ReviewerID, mintTokenTTL)
	if err != nil {
		app.sendErrorResponse(w, r, models.ErrTypeInternalFailure, "Failed to sign token", http.StatusInternalServerError)
		return
	}

	app.writeJSON(w, http.StatusOK, models.CreateTokenResponse{Token: token})
}
