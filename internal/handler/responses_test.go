package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/domain"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.ErrUserNotFound, http.StatusNotFound, ErrMsgUserNotFoundError},
		{domain.ErrRecipientNotFound, http.StatusNotFound, ErrMsgRecipientNotFoundError},
		{domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{domain.ErrCatalogEntryNotFound, http.StatusNotFound, ErrMsgCatalogEntryError},
		{domain.ErrInsufficientBalance, http.StatusConflict, ErrMsgNotEnoughPointsError},
		{domain.ErrAlreadyMaxRarity, http.StatusConflict, ErrMsgMaxRarityError},
		{domain.ErrNotOwned, http.StatusConflict, ErrMsgNotOwnedError},
		{domain.ErrNoneOwned, http.StatusConflict, ErrMsgNoneOwnedError},
		{domain.ErrPerkAlreadyOwned, http.StatusConflict, ErrMsgPerkOwnedError},
		{domain.ErrSelfTransfer, http.StatusBadRequest, ErrMsgSelfTransferError},
		{domain.ErrInvalidAmount, http.StatusBadRequest, ErrMsgInvalidAmountError},
		{domain.ErrInvalidStake, http.StatusBadRequest, ErrMsgInvalidStakeError},
		{domain.ErrInvalidRarity, http.StatusBadRequest, ErrMsgInvalidRarityError},
		{domain.ErrNotBuyable, http.StatusBadRequest, ErrMsgNotBuyableError},
		{domain.ErrUnknownPerk, http.StatusBadRequest, ErrMsgUnknownPerkError},
		{domain.ErrOnCooldown, http.StatusTooManyRequests, ErrMsgOnCooldownError},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{domain.ErrEmptyRarityPool, http.StatusInternalServerError, ErrMsgEmptyPoolError},
		{errors.New("pq: relation does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("operation failed: %w", tt.err)
			status, msg := mapServiceError(wrapped)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestRespondServiceError_CooldownCarriesRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/1/draw", nil)

	err := fmt.Errorf("draw: %w", cooldown.ErrOnCooldown{Action: domain.ActionDraw, Remaining: 90*time.Second + 300*time.Millisecond})
	respondServiceError(rec, req, err)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "91", rec.Header().Get(HeaderRetryAfter))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(91), body.RetryAfterSeconds)
	assert.Equal(t, ErrMsgOnCooldownError, body.Error)
}

func TestRespondServiceError_StoreUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)

	respondServiceError(rec, req, domain.ErrStoreUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(HeaderRetryAfter))
	assert.JSONEq(t, `{"error":"`+ErrMsgUnavailableError+`"}`, rec.Body.String())
}
