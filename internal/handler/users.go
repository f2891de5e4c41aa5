package handler

import (
	"net/http"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/economy"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/user"
)

// RegisterUserRequest is the body of POST /users/register
type RegisterUserRequest struct {
	ID        string `json:"id" validate:"required,max=64,excludesall=/ "`
	Username  string `json:"username" validate:"max=64"`
	FirstName string `json:"first_name" validate:"max=128"`
}

// RegisterUserResponse wraps the account with whether it was just created
type RegisterUserResponse struct {
	User    *domain.User `json:"user"`
	Created bool         `json:"created"`
}

// BalanceResponse is returned by GET /users/{id}/balance
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// ItemsResponse is returned by GET /users/{id}/items
type ItemsResponse struct {
	UserID string        `json:"user_id"`
	Count  int           `json:"count"`
	Items  []domain.Item `json:"items"`
}

// HandleRegisterUser creates or refreshes an account
func HandleRegisterUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		u, created, err := svc.Register(r.Context(), req.ID, req.Username, req.FirstName)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
			logger.FromContext(r.Context()).Info("User registered", "user_id", u.ID)
		}
		respondJSON(w, status, RegisterUserResponse{User: u, Created: created})
	}
}

// HandleGetProfile returns the account overview
func HandleGetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.Profile(r.Context(), userIDParam(r))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleGetBalance returns the points balance
func HandleGetBalance(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := userIDParam(r)
		balance, err := svc.Balance(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, BalanceResponse{UserID: id, Balance: balance})
	}
}

// HandleListItems returns the user's phones, optionally filtered by ?rarity=
func HandleListItems(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rarity, ok := optionalRarityQuery(w, r)
		if !ok {
			return
		}

		id := userIDParam(r)
		items, err := svc.ListItems(r.Context(), id, rarity)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if items == nil {
			items = []domain.Item{}
		}
		respondJSON(w, http.StatusOK, ItemsResponse{UserID: id, Count: len(items), Items: items})
	}
}
