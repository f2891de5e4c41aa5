package handler

import (
	"net/http"

	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/reward"
	"github.com/osse101/PhonesBot_Go/internal/upgrade"
)

// HandleDrawCard draws one phone for the user
func HandleDrawCard(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.DrawCard(r.Context(), userIDParam(r))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("Card drawn",
			"user_id", result.Item.UserID,
			"item", result.Item.Name,
			"rarity", result.Item.Rarity)

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleUpgradeItem attempts to upgrade one owned phone. A failed roll is
// still a 200: the result reports Success=false and the destroyed item.
func HandleUpgradeItem(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}

		result, err := svc.Upgrade(r.Context(), userIDParam(r), itemID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("Upgrade attempted",
			"item_id", itemID,
			"success", result.Success,
			"delta", result.Delta)

		respondJSON(w, http.StatusOK, result)
	}
}
