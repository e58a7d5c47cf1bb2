package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	mw "github.com/arcanalabs/tarot-backend/internal/app/api/middleware"
	cardsvc "github.com/arcanalabs/tarot-backend/internal/app/service/cards"
	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	readingsvc "github.com/arcanalabs/tarot-backend/internal/app/service/reading"
	platformdb "github.com/arcanalabs/tarot-backend/internal/platform/db"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

type readingTestEnv struct {
	router *gin.Engine
	cfg    *config.Config
	ledger ledgersvc.Ledger
}

func newReadingEnv(t *testing.T) *readingTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, platformdb.Migrate(conn))

	cfg := &config.Config{
		Auth:              config.AuthConfig{JWTSecret: "test-secret"},
		DefaultSpreadCost: 50,
	}
	log := zap.NewNop().Sugar()
	lg := ledgersvc.NewService(conn, log)
	rd := readingsvc.NewService(cfg, conn, lg, cardsvc.NewService(), log)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(mw.AuthMiddleware(cfg, false))
	RegisterReadingRoutes(api, rd, cfg, log)
	RegisterCreditRoutes(api, lg, cfg, log)
	return &readingTestEnv{router: r, cfg: cfg, ledger: lg}
}

func (e *readingTestEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := mw.GenerateToken(e.cfg, userID, userID+"@example.com", "", time.Hour)
	require.NoError(t, err)
	return token
}

func (e *readingTestEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func createBody(key string) map[string]any {
	return map[string]any{
		"reading_type":    "love",
		"spread_name":     "Love Spread",
		"locale":          "tr",
		"cards":           []map[string]any{{"id": 0}, {"id": 13, "isReversed": true}},
		"idempotency_key": key,
	}
}

func TestReadingRoutes_RequireAuth(t *testing.T) {
	env := newReadingEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/readings"},
		{http.MethodGet, "/api/v1/readings"},
		{http.MethodGet, "/api/v1/readings/some-id"},
		{http.MethodGet, "/api/v1/credits/balance"},
		{http.MethodGet, "/api/v1/credits/transactions"},
	} {
		w := env.do(t, tc.method, tc.path, "", nil)
		requireErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	}
}

func TestApiCreateReading_FullFlow(t *testing.T) {
	env := newReadingEnv(t)
	token := env.token(t, "u1")

	// Empty balance: the debit is refused before anything is written.
	w := env.do(t, http.MethodPost, "/api/v1/readings", token, createBody("key-1"))
	requireErrorCode(t, w, http.StatusBadRequest, "INSUFFICIENT_CREDITS")

	_, err := env.ledger.AwardCredits(t.Context(), &ledgersvc.AwardRequest{
		UserID: "u1", Delta: 120, Reason: types.LedgerReasonPurchase,
	})
	require.NoError(t, err)

	w = env.do(t, http.MethodPost, "/api/v1/readings", token, createBody("key-1"))
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ReadingID  string `json:"reading_id"`
			NewBalance int64  `json:"new_balance"`
			Replayed   bool   `json:"replayed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.Success)
	require.False(t, created.Data.Replayed)
	require.EqualValues(t, 70, created.Data.NewBalance)

	// Retry with the same key replays the stored result.
	w = env.do(t, http.MethodPost, "/api/v1/readings", token, createBody("key-1"))
	require.Equal(t, http.StatusOK, w.Code)
	var replayed struct {
		Data struct {
			ReadingID string `json:"reading_id"`
			Replayed  bool   `json:"replayed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replayed))
	require.True(t, replayed.Data.Replayed)
	require.Equal(t, created.Data.ReadingID, replayed.Data.ReadingID)

	// The reading is visible to its owner, with catalog names filled in.
	w = env.do(t, http.MethodGet, "/api/v1/readings/"+created.Data.ReadingID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched struct {
		Data struct {
			Cards  []types.DrawnCard `json:"cards"`
			Status string            `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.Equal(t, "completed", fetched.Data.Status)
	require.Len(t, fetched.Data.Cards, 2)
	require.Equal(t, "Deli", fetched.Data.Cards[0].LocalizedName)
	require.Equal(t, "Ölüm", fetched.Data.Cards[1].LocalizedName)

	// But not to anyone else.
	w = env.do(t, http.MethodGet, "/api/v1/readings/"+created.Data.ReadingID, env.token(t, "u2"), nil)
	requireErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
}

func TestApiListReadings_PagesOwnReadingsOnly(t *testing.T) {
	env := newReadingEnv(t)
	token := env.token(t, "u1")

	_, err := env.ledger.AwardCredits(t.Context(), &ledgersvc.AwardRequest{
		UserID: "u1", Delta: 200, Reason: types.LedgerReasonPurchase,
	})
	require.NoError(t, err)

	for _, key := range []string{"a", "b", "c"} {
		w := env.do(t, http.MethodPost, "/api/v1/readings", token, createBody(key))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/v1/readings?limit=2&offset=0", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data struct {
			Items      []json.RawMessage `json:"items"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data.Items, 2)
	require.EqualValues(t, 3, page.Data.Pagination.Total)

	w = env.do(t, http.MethodGet, "/api/v1/readings", env.token(t, "u2"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Empty(t, page.Data.Items)
}

func TestCreditRoutes_BalanceAndTransactions(t *testing.T) {
	env := newReadingEnv(t)
	token := env.token(t, "u1")

	w := env.do(t, http.MethodGet, "/api/v1/credits/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var balance struct {
		Data struct {
			Balance int64 `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balance))
	require.Zero(t, balance.Data.Balance)

	_, err := env.ledger.AwardCredits(t.Context(), &ledgersvc.AwardRequest{
		UserID: "u1", Delta: 100, Reason: types.LedgerReasonPurchase,
	})
	require.NoError(t, err)

	w = env.do(t, http.MethodGet, "/api/v1/credits/balance", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balance))
	require.EqualValues(t, 100, balance.Data.Balance)

	w = env.do(t, http.MethodGet, "/api/v1/credits/transactions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txns struct {
		Data struct {
			Items []struct {
				DeltaCredits int64  `json:"delta_credits"`
				Reason       string `json:"reason"`
			} `json:"items"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txns))
	require.EqualValues(t, 1, txns.Data.Pagination.Total)
	require.Len(t, txns.Data.Items, 1)
	require.EqualValues(t, 100, txns.Data.Items[0].DeltaCredits)
	require.Equal(t, "purchase", txns.Data.Items[0].Reason)
}

func TestListEndpoints_RejectBadPaging(t *testing.T) {
	env := newReadingEnv(t)
	token := env.token(t, "u1")

	cases := []struct {
		path string
		code string
	}{
		{"/api/v1/readings?limit=abc", "INVALID_LIMIT"},
		{"/api/v1/readings?limit=0", "INVALID_LIMIT"},
		{"/api/v1/readings?offset=-1", "INVALID_OFFSET"},
		{"/api/v1/credits/transactions?limit=abc", "INVALID_LIMIT"},
		{"/api/v1/credits/transactions?limit=-5", "INVALID_LIMIT"},
		{"/api/v1/credits/transactions?offset=x", "INVALID_OFFSET"},
	}
	for _, tc := range cases {
		w := env.do(t, http.MethodGet, tc.path, token, nil)
		requireErrorCode(t, w, http.StatusBadRequest, tc.code)
	}
}
