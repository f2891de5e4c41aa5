package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error             string `json:"error"`
	RetryAfterSeconds int64  `json:"retry_after_seconds,omitempty"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceError converts a service error to an HTTP status and a
// user-facing message. Unknown errors become a generic 500.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrRecipientNotFound):
		return http.StatusNotFound, ErrMsgRecipientNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrCatalogEntryNotFound):
		return http.StatusNotFound, ErrMsgCatalogEntryError

	case errors.Is(err, domain.ErrOnCooldown):
		return http.StatusTooManyRequests, ErrMsgOnCooldownError
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrEmptyRarityPool):
		return http.StatusInternalServerError, ErrMsgEmptyPoolError

	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusConflict, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict, ErrMsgNotEnoughPointsError
	case errors.Is(err, domain.ErrAlreadyMaxRarity):
		return http.StatusConflict, ErrMsgMaxRarityError
	case errors.Is(err, domain.ErrPerkAlreadyOwned):
		return http.StatusConflict, ErrMsgPerkOwnedError
	case errors.Is(err, domain.ErrNoneOwned):
		return http.StatusConflict, ErrMsgNoneOwnedError

	case errors.Is(err, domain.ErrNotBuyable):
		return http.StatusBadRequest, ErrMsgNotBuyableError
	case errors.Is(err, domain.ErrSelfTransfer):
		return http.StatusBadRequest, ErrMsgSelfTransferError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidStake):
		return http.StatusBadRequest, ErrMsgInvalidStakeError
	case errors.Is(err, domain.ErrInvalidRarity):
		return http.StatusBadRequest, ErrMsgInvalidRarityError
	case errors.Is(err, domain.ErrUnknownPerk):
		return http.StatusBadRequest, ErrMsgUnknownPerkError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError writes the mapped error response. Cooldowns carry the
// remaining wait in the body and in Retry-After; store outages advertise a
// short Retry-After. Server errors are logged at error level, the rest at
// debug.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	status, msg := mapServiceError(err)

	resp := ErrorResponse{Error: msg}
	switch status {
	case http.StatusTooManyRequests:
		var cd cooldown.ErrOnCooldown
		if errors.As(err, &cd) {
			resp.RetryAfterSeconds = int64(math.Ceil(cd.Remaining.Seconds()))
			w.Header().Set(HeaderRetryAfter, strconv.FormatInt(resp.RetryAfterSeconds, 10))
		}
	case http.StatusServiceUnavailable:
		w.Header().Set(HeaderRetryAfter, strconv.Itoa(storeRetryAfterSeconds))
	}

	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServerError, "path", r.URL.Path, "status", status, "error", err)
	} else {
		log.Debug(LogMsgServiceError, "path", r.URL.Path, "status", status, "error", err)
	}
	respondJSON(w, status, resp)
}
