package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body into req and
// validates its tags. On error the response has already been written and
// the handler should return.
//
// Example usage:
//
//	var req TransferRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Debug(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// userIDParam returns the {id} path parameter
func userIDParam(r *http.Request) string {
	return chi.URLParam(r, ParamUserID)
}

// itemIDParam parses the {itemID} path parameter, writing a 400 on failure
func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, ParamItemID), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidItemID)
		return 0, false
	}
	return id, true
}

// parseRarity parses a tier number within the storable range. Services
// reject tiers the loaded catalog does not define.
func parseRarity(raw string) (domain.Rarity, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	r := domain.Rarity(n)
	return r, r.Valid()
}

// optionalRarityQuery reads ?rarity=. A missing parameter yields nil.
func optionalRarityQuery(w http.ResponseWriter, r *http.Request) (*domain.Rarity, bool) {
	raw := r.URL.Query().Get(ParamRarity)
	if raw == "" {
		return nil, true
	}
	rarity, ok := parseRarity(raw)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRarityParam)
		return nil, false
	}
	return &rarity, true
}

// limitQuery reads ?limit=. A missing parameter yields 0, letting the
// service apply its default.
func limitQuery(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get(ParamLimit)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return n, true
}
