package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/database/sqlite"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/economy"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/rng"
	"github.com/osse101/PhonesBot_Go/internal/testing/ledgertest"
	"github.com/osse101/PhonesBot_Go/internal/user"
)

type api struct {
	ledger *sqlite.Ledger
	router chi.Router
}

func newAPI(t *testing.T) *api {
	t.Helper()
	ledger := ledgertest.New(t)
	table := catalog.Default()
	users := user.NewService(ledger, event.NopPublisher{})
	econ := economy.NewService(ledger, table, rng.NewScripted(99), cooldown.NewService(cooldown.Config{}), users, event.NopPublisher{}, economy.DefaultConfig())

	r := chi.NewRouter()
	r.Post("/users/register", HandleRegisterUser(users))
	r.Get("/users/{id}", HandleGetProfile(users))
	r.Get("/users/{id}/balance", HandleGetBalance(econ))
	r.Get("/users/{id}/items", HandleListItems(econ))
	r.Post("/users/{id}/items/{itemID}/sell", HandleSellItem(econ))
	r.Post("/users/{id}/sell-all", HandleSellAll(econ))
	r.Post("/users/{id}/buy", HandleBuyItem(econ))
	r.Post("/users/{id}/transfer", HandleTransfer(econ))
	r.Post("/users/{id}/wager", HandleWager(econ))
	r.Post("/users/{id}/daily", HandleClaimDaily(econ))
	r.Post("/users/{id}/perks", HandleBuyPerk(econ))
	r.Get("/shop/{rarity}", HandleShopListing(econ))
	r.Get("/catalog", HandleGetCatalog(table))
	r.Get("/leaderboard", HandleLeaderboard(econ))

	return &api{ledger: ledger, router: r}
}

func (a *api) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRegisterAndProfile(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPost, "/users/register", RegisterUserRequest{ID: "100", Username: "Alice", FirstName: "Alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	reg := decode[RegisterUserResponse](t, rec)
	assert.True(t, reg.Created)
	assert.Equal(t, int64(500), reg.User.Balance)

	rec = a.do(t, http.MethodPost, "/users/register", RegisterUserRequest{ID: "100", Username: "alice2"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[RegisterUserResponse](t, rec).Created)

	rec = a.do(t, http.MethodGet, "/users/100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[domain.Profile](t, rec)
	assert.Equal(t, "alice2", profile.User.Username)
	assert.Equal(t, 1, profile.Rank)

	rec = a.do(t, http.MethodGet, "/users/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_ValidationFailure(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPost, "/users/register", RegisterUserRequest{Username: "nobody"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ValidationErrorResponse](t, rec)
	assert.Equal(t, "This field is required", resp.Fields["id"])

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/register", bytes.NewBufferString("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"`+ErrMsgInvalidRequest+`"}`, rec.Body.String())
}

func TestBuySellFlow(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 10000)

	rec := a.do(t, http.MethodPost, "/users/1/buy", BuyItemRequest{Rarity: 0, Name: "Apple iPhone 4"})
	require.Equal(t, http.StatusCreated, rec.Code)
	item := decode[domain.Item](t, rec)
	assert.Equal(t, int64(900), item.Price)

	rec = a.do(t, http.MethodGet, "/users/1/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9100), decode[BalanceResponse](t, rec).Balance)

	rec = a.do(t, http.MethodGet, "/users/1/items?rarity=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[ItemsResponse](t, rec).Count)

	rec = a.do(t, http.MethodPost, "/users/1/items/"+itoa(item.ID)+"/sell", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sale := decode[domain.SaleResult](t, rec)
	assert.Equal(t, int64(675), sale.Proceeds)
	assert.Equal(t, int64(9775), sale.Balance)

	rec = a.do(t, http.MethodPost, "/users/1/items/"+itoa(item.ID)+"/sell", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuy_Rejections(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 100)

	tests := []struct {
		name   string
		body   BuyItemRequest
		status int
	}{
		{"insufficient balance", BuyItemRequest{Rarity: 0, Name: "Apple iPhone 4"}, http.StatusConflict},
		{"unknown phone", BuyItemRequest{Rarity: 0, Name: "Nokia 3310"}, http.StatusNotFound},
		{"rarity out of range", BuyItemRequest{Rarity: 9, Name: "Apple iPhone 4"}, http.StatusBadRequest},
		{"missing name", BuyItemRequest{Rarity: 0}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/users/1/buy", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestSellAll_NoneOwned(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 0)

	rec := a.do(t, http.MethodPost, "/users/1/sell-all", SellAllRequest{Rarity: 2})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTransferHandler(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 1000)
	ledgertest.Seed(t, a.ledger, "2", 0)

	rec := a.do(t, http.MethodPost, "/users/1/transfer", TransferRequest{Recipient: "@user2", Amount: 250})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[domain.TransferResult](t, rec)
	assert.Equal(t, int64(750), res.SenderBalance)
	assert.Equal(t, int64(250), res.RecipientBalance)

	rec = a.do(t, http.MethodPost, "/users/1/transfer", TransferRequest{Recipient: "2", Amount: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodPost, "/users/1/transfer", TransferRequest{Recipient: "ghost", Amount: 10})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodPost, "/users/1/transfer", TransferRequest{Recipient: "user1", Amount: 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgSelfTransferError)
}

func TestWagerHandler(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 1000)

	rec := a.do(t, http.MethodPost, "/users/1/wager", WagerRequest{Stake: 100})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[domain.WagerResult](t, rec)
	assert.False(t, res.Won)
	assert.Equal(t, int64(900), res.Balance)

	rec = a.do(t, http.MethodPost, "/users/1/wager", WagerRequest{Stake: 250})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidStakeError)
}

func TestDailyHandler_SecondClaimIsRateLimited(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 0)

	rec := a.do(t, http.MethodPost, "/users/1/daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), decode[domain.ClaimResult](t, rec).Reward)

	rec = a.do(t, http.MethodPost, "/users/1/daily", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(HeaderRetryAfter))
}

func TestBuyPerkHandler(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 20000)

	rec := a.do(t, http.MethodPost, "/users/1/perks", BuyPerkRequest{Perk: string(domain.PerkDailyBonus)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(17000), decode[domain.User](t, rec).Balance)

	rec = a.do(t, http.MethodPost, "/users/1/perks", BuyPerkRequest{Perk: string(domain.PerkDailyBonus)})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(t, http.MethodPost, "/users/1/perks", BuyPerkRequest{Perk: "invisibility"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown perk", decode[ValidationErrorResponse](t, rec).Fields["perk"])
}

func TestShopAndCatalog(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/shop/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shop := decode[ShopResponse](t, rec)
	require.NotEmpty(t, shop.Entries)
	for i := 1; i < len(shop.Entries); i++ {
		assert.GreaterOrEqual(t, shop.Entries[i-1].Price, shop.Entries[i].Price)
	}

	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/shop/6", nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/shop/x", nil).Code)

	rec = a.do(t, http.MethodGet, "/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tiers := decode[[]CatalogTier](t, rec)
	assert.Len(t, tiers, int(domain.MaxRarity)+1)
}

func TestLeaderboardHandler(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 300)
	ledgertest.Seed(t, a.ledger, "2", 900)
	ledgertest.Seed(t, a.ledger, "3", 600)

	rec := a.do(t, http.MethodGet, "/leaderboard?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[LeaderboardResponse](t, rec)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "2", board.Entries[0].UserID)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "3", board.Entries[1].UserID)

	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/leaderboard?limit=ten", nil).Code)
}

func TestListItems_BadRarity(t *testing.T) {
	a := newAPI(t)
	ledgertest.Seed(t, a.ledger, "1", 0)

	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/users/1/items?rarity=12", nil).Code)

	rec := a.do(t, http.MethodGet, "/users/1/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"1","count":0,"items":[]}`, rec.Body.String())
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
