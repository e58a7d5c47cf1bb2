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
	"github.com/arcanalabs/tarot-backend/internal/app/service/statistics"
	wh "github.com/arcanalabs/tarot-backend/internal/app/service/webhookingest"
	platformdb "github.com/arcanalabs/tarot-backend/internal/platform/db"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/mailer"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

type adminTestEnv struct {
	router  *gin.Engine
	cfg     *config.Config
	ledger  ledgersvc.Ledger
	reading *readingsvc.Service
}

func newAdminEnv(t *testing.T) *adminTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, platformdb.Migrate(conn))

	cfg := &config.Config{
		Auth:              config.AuthConfig{JWTSecret: "test-secret"},
		Webhook:           config.WebhookConfig{Provider: "shopier", Secret: "whsecret"},
		DefaultSpreadCost: 50,
	}
	log := zap.NewNop().Sugar()
	lg := ledgersvc.NewService(conn, log)
	rd := readingsvc.NewService(cfg, conn, lg, cardsvc.NewService(), log)
	stats := statistics.New(conn, log)
	whs := wh.NewService(cfg, conn, lg, mailer.New(cfg, log), log)

	r := gin.New()
	admin := r.Group("/api/v1/admin")
	admin.Use(mw.AuthMiddleware(cfg, true))
	RegisterAdminRoutes(admin, rd, lg, stats, whs, cfg, log)
	return &adminTestEnv{router: r, cfg: cfg, ledger: lg, reading: rd}
}

func (e *adminTestEnv) post(t *testing.T, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *adminTestEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := mw.GenerateToken(e.cfg, "a1", "admin@example.com", mw.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *adminTestEnv) seedReading(t *testing.T, userID, key string) string {
	t.Helper()
	_, err := e.ledger.AwardCredits(t.Context(), &ledgersvc.AwardRequest{
		UserID: userID, Delta: 100, Reason: types.LedgerReasonPurchase,
	})
	require.NoError(t, err)
	res, err := e.reading.Create(t.Context(), &readingsvc.CreateRequest{
		UserID:         userID,
		ReadingType:    types.SpreadLove,
		SpreadName:     "Love Spread",
		Cards:          []types.DrawnCard{{ID: 0}},
		IdempotencyKey: key,
	})
	require.NoError(t, err)
	return res.ReadingID
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	env := newAdminEnv(t)

	w := env.post(t, "/api/v1/admin/list_readings", "", map[string]any{})
	requireErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")

	user, err := mw.GenerateToken(env.cfg, "u1", "u1@example.com", "", time.Hour)
	require.NoError(t, err)
	w = env.post(t, "/api/v1/admin/list_readings", user, map[string]any{})
	requireErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestApiAdminListReadings_Filters(t *testing.T) {
	env := newAdminEnv(t)
	token := env.adminToken(t)
	env.seedReading(t, "u1", "a")
	env.seedReading(t, "u2", "b")

	w := env.post(t, "/api/v1/admin/list_readings", token, map[string]any{
		"filters": []map[string]any{
			{"field": "user_id", "operator": "eq", "values": []string{"u1"}},
		},
		"size": 10,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var env1 struct {
		Data struct {
			Items []struct {
				UserID string `json:"user_id"`
			} `json:"items"`
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env1))
	require.EqualValues(t, 1, env1.Data.Total)
	require.Len(t, env1.Data.Items, 1)
	require.Equal(t, "u1", env1.Data.Items[0].UserID)
}

func TestApiAdminListLedger(t *testing.T) {
	env := newAdminEnv(t)
	token := env.adminToken(t)
	env.seedReading(t, "u1", "a")

	// One purchase award plus one reading debit.
	w := env.post(t, "/api/v1/admin/list_ledger", token, map[string]any{"size": 10})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.EqualValues(t, 2, out.Data.Total)
}

func TestApiAdminUpdateReadingStatus(t *testing.T) {
	env := newAdminEnv(t)
	token := env.adminToken(t)
	id := env.seedReading(t, "u1", "a")

	w := env.post(t, "/api/v1/admin/update_reading_status", token, map[string]any{
		"reading_id":  id,
		"status":      "reviewed",
		"admin_notes": "checked",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Data struct {
			Status     string `json:"status"`
			AdminNotes string `json:"admin_notes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "reviewed", out.Data.Status)
	require.Equal(t, "checked", out.Data.AdminNotes)

	w = env.post(t, "/api/v1/admin/update_reading_status", token, map[string]any{
		"reading_id": id,
		"status":     "archived",
	})
	requireErrorCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = env.post(t, "/api/v1/admin/update_reading_status", token, map[string]any{
		"reading_id": "missing",
		"status":     "flagged",
	})
	requireErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
}

func TestApiAdminStatistics(t *testing.T) {
	env := newAdminEnv(t)
	token := env.adminToken(t)
	env.seedReading(t, "u1", "a")

	w := env.post(t, "/api/v1/admin/statistics", token, map[string]any{
		"data_items": []string{"total_reading_count", "readings_by_spread"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Data struct {
			Items map[string][]struct {
				Key   string `json:"key"`
				Value int64  `json:"value"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Data.Items["total_reading_count"], 1)
	require.EqualValues(t, 1, out.Data.Items["total_reading_count"][0].Value)
	require.Equal(t, "love", out.Data.Items["readings_by_spread"][0].Key)
}

func TestApiAdminReconcileWebhooks_EmptyBacklog(t *testing.T) {
	env := newAdminEnv(t)
	token := env.adminToken(t)

	w := env.post(t, "/api/v1/admin/reconcile_webhooks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Data struct {
			Repaired int `json:"repaired"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Zero(t, out.Data.Repaired)
}
