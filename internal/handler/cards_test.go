package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/domain"
)

type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) DrawCard(ctx context.Context, userID string) (*domain.DrawResult, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.(*domain.DrawResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUpgradeService struct {
	mock.Mock
}

func (m *MockUpgradeService) Upgrade(ctx context.Context, userID string, itemID int64) (*domain.UpgradeResult, error) {
	args := m.Called(ctx, userID, itemID)
	if res := args.Get(0); res != nil {
		return res.(*domain.UpgradeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandleDrawCard(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockRewardService)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "Success",
			mockSetup: func(m *MockRewardService) {
				m.On("DrawCard", mock.Anything, "42").Return(&domain.DrawResult{
					Item:      domain.Item{ID: 7, UserID: "42", Name: "Apple iPhone 4", Rarity: 0, Price: 900},
					DrawCount: 1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var res domain.DrawResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
				assert.Equal(t, "Apple iPhone 4", res.Item.Name)
				assert.Equal(t, 1, res.DrawCount)
			},
		},
		{
			name: "On cooldown",
			mockSetup: func(m *MockRewardService) {
				m.On("DrawCard", mock.Anything, "42").
					Return(nil, cooldown.ErrOnCooldown{Action: domain.ActionDraw, Remaining: 2 * time.Hour})
			},
			expectedStatus: http.StatusTooManyRequests,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "7200", rec.Header().Get(HeaderRetryAfter))
				assert.Contains(t, rec.Body.String(), `"retry_after_seconds":7200`)
			},
		},
		{
			name: "Unknown user",
			mockSetup: func(m *MockRewardService) {
				m.On("DrawCard", mock.Anything, "42").Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Empty pool",
			mockSetup: func(m *MockRewardService) {
				m.On("DrawCard", mock.Anything, "42").Return(nil, domain.ErrEmptyRarityPool)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRewardService)
			tt.mockSetup(svc)

			r := chi.NewRouter()
			r.Post("/users/{id}/draw", HandleDrawCard(svc))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/42/draw", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleUpgradeItem(t *testing.T) {
	newItem := domain.Item{ID: 9, UserID: "42", Name: "Apple iPhone 5", Rarity: 1, Price: 3000}

	tests := []struct {
		name           string
		path           string
		mockSetup      func(*MockUpgradeService)
		expectedStatus int
	}{
		{
			name: "Success",
			path: "/users/42/items/7/upgrade",
			mockSetup: func(m *MockUpgradeService) {
				m.On("Upgrade", mock.Anything, "42", int64(7)).Return(&domain.UpgradeResult{
					Success: true,
					OldItem: domain.Item{ID: 7, Price: 800},
					NewItem: &newItem,
					Delta:   2200,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Failed roll is not an error",
			path: "/users/42/items/7/upgrade",
			mockSetup: func(m *MockUpgradeService) {
				m.On("Upgrade", mock.Anything, "42", int64(7)).Return(&domain.UpgradeResult{
					OldItem: domain.Item{ID: 7, Price: 800},
					Delta:   -800,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not owned",
			path: "/users/42/items/7/upgrade",
			mockSetup: func(m *MockUpgradeService) {
				m.On("Upgrade", mock.Anything, "42", int64(7)).Return(nil, domain.ErrNotOwned)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Bad item id",
			path:           "/users/42/items/abc/upgrade",
			mockSetup:      func(*MockUpgradeService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero item id",
			path:           "/users/42/items/0/upgrade",
			mockSetup:      func(*MockUpgradeService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUpgradeService)
			tt.mockSetup(svc)

			r := chi.NewRouter()
			r.Post("/users/{id}/items/{itemID}/upgrade", HandleUpgradeItem(svc))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
