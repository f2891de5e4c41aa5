package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/economy"
)

// BuyItemRequest is the body of POST /users/{id}/buy
type BuyItemRequest struct {
	Rarity int    `json:"rarity" validate:"rarity"`
	Name   string `json:"name" validate:"required,max=128"`
}

// SellAllRequest is the body of POST /users/{id}/sell-all
type SellAllRequest struct {
	Rarity int `json:"rarity" validate:"rarity"`
}

// ShopResponse lists the phones on sale for one tier
type ShopResponse struct {
	Rarity  domain.Rarity   `json:"rarity"`
	Entries []catalog.Entry `json:"entries"`
}

// CatalogTier is one tier of the public catalog
type CatalogTier struct {
	catalog.Tier
	Entries []catalog.Entry `json:"entries"`
}

// HandleBuyItem buys a catalog phone at its face value
func HandleBuyItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		item, err := svc.Buy(r.Context(), userIDParam(r), domain.CatalogRef{
			Rarity: domain.Rarity(req.Rarity),
			Name:   req.Name,
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, item)
	}
}

// HandleSellItem sells one owned phone back
func HandleSellItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}

		result, err := svc.Sell(r.Context(), userIDParam(r), itemID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleSellAll sells every owned phone of one tier
func HandleSellAll(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellAllRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell all"); err != nil {
			return
		}

		result, err := svc.SellAll(r.Context(), userIDParam(r), domain.Rarity(req.Rarity))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleShopListing lists the phones on sale for {rarity}, dearest first
func HandleShopListing(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rarity, ok := parseRarity(chi.URLParam(r, ParamRarity))
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRarityParam)
			return
		}

		entries, err := svc.ShopListing(r.Context(), rarity)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, ShopResponse{Rarity: rarity, Entries: entries})
	}
}

// HandleGetCatalog returns every tier with its weight, upgrade chance and
// phones. The table is immutable, so the response is built once.
func HandleGetCatalog(table *catalog.Table) http.HandlerFunc {
	tiers := make([]CatalogTier, 0, len(table.Tiers()))
	for _, tier := range table.Tiers() {
		tiers = append(tiers, CatalogTier{Tier: tier, Entries: table.Entries(tier.Rarity)})
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, tiers)
	}
}
