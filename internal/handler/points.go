package handler

import (
	"net/http"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/economy"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// TransferRequest is the body of POST /users/{id}/transfer. Recipient is a
// username, @mention or user id.
type TransferRequest struct {
	Recipient string `json:"recipient" validate:"required,max=64"`
	Amount    int64  `json:"amount" validate:"gt=0"`
}

// WagerRequest is the body of POST /users/{id}/wager
type WagerRequest struct {
	Stake int64 `json:"stake" validate:"gt=0"`
}

// BuyPerkRequest is the body of POST /users/{id}/perks
type BuyPerkRequest struct {
	Perk string `json:"perk" validate:"required,perk"`
}

// LeaderboardResponse wraps the ranked entries
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// HandleTransfer moves points to another user
func HandleTransfer(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
			return
		}

		result, err := svc.Transfer(r.Context(), userIDParam(r), req.Recipient, req.Amount)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("Points transferred",
			"sender_id", result.SenderID,
			"recipient_id", result.RecipientID,
			"amount", result.Amount)

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleWager spins the roulette for one of the allowed stakes
func HandleWager(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WagerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Wager"); err != nil {
			return
		}

		result, err := svc.Wager(r.Context(), userIDParam(r), req.Stake)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleClaimDaily credits the daily reward
func HandleClaimDaily(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ClaimDaily(r.Context(), userIDParam(r))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCollectFarm credits the accumulated farm income
func HandleCollectFarm(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.CollectFarm(r.Context(), userIDParam(r))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleBuyPerk buys a perk and returns the updated account
func HandleBuyPerk(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyPerkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy perk"); err != nil {
			return
		}

		u, err := svc.BuyPerk(r.Context(), userIDParam(r), domain.Perk(req.Perk))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

// HandleLeaderboard returns the richest users. ?limit= is clamped by the
// service.
func HandleLeaderboard(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := limitQuery(w, r)
		if !ok {
			return
		}

		entries, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
