package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	wh "github.com/arcanalabs/tarot-backend/internal/app/service/webhookingest"
	platformdb "github.com/arcanalabs/tarot-backend/internal/platform/db"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/mailer"
)

const webhookTestSecret = "handler-test-secret"

func webhookRouter(t *testing.T) (*gin.Engine, ledgersvc.Ledger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, platformdb.Migrate(conn))

	cfg := &config.Config{Webhook: config.WebhookConfig{Provider: "shopier", Secret: webhookTestSecret}}
	log := zap.NewNop().Sugar()
	lg := ledgersvc.NewService(conn, log)
	svc := wh.NewService(cfg, conn, lg, mailer.New(cfg, log), log)

	r := gin.New()
	RegisterWebhookRoutes(r, svc, cfg, log)
	return r, lg
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookTestSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("x-webhook-signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiPaymentWebhook_AcceptsSignedEvent(t *testing.T) {
	r, lg := webhookRouter(t)

	body := []byte(`{"transactionId":"tx-1","userId":"u1","amount":49.9,"currency":"TRY","status":"paid","credits":100}`)
	w := postWebhook(r, body, signBody(body))
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Idempotent bool   `json:"idempotent"`
			EventID    string `json:"event_id"`
			NewBalance int64  `json:"new_balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.False(t, env.Data.Idempotent)
	require.Equal(t, "tx-1", env.Data.EventID)
	require.EqualValues(t, 100, env.Data.NewBalance)

	balance, err := lg.GetBalance(context.Background(), "u1")
	require.NoError(t, err)
	require.EqualValues(t, 100, balance)
}

func TestApiPaymentWebhook_ReplayReturns200(t *testing.T) {
	r, lg := webhookRouter(t)

	body := []byte(`{"transactionId":"tx-1","userId":"u1","amount":10,"currency":"TRY","status":"paid","credits":40}`)
	sig := signBody(body)

	require.Equal(t, http.StatusOK, postWebhook(r, body, sig).Code)

	w := postWebhook(r, body, sig)
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data struct {
			Idempotent bool `json:"idempotent"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Data.Idempotent)

	balance, err := lg.GetBalance(context.Background(), "u1")
	require.NoError(t, err)
	require.EqualValues(t, 40, balance)
}

func TestApiPaymentWebhook_RejectsBadSignature(t *testing.T) {
	r, _ := webhookRouter(t)

	body := []byte(`{"transactionId":"tx-1","userId":"u1","credits":40}`)
	w := postWebhook(r, body, signBody([]byte("other")))
	requireErrorCode(t, w, http.StatusUnauthorized, "INVALID_SIGNATURE")

	w = postWebhook(r, body, "")
	requireErrorCode(t, w, http.StatusUnauthorized, "INVALID_SIGNATURE")
}

func TestApiPaymentWebhook_RejectsMalformedPayload(t *testing.T) {
	r, _ := webhookRouter(t)

	for _, body := range [][]byte{
		[]byte(`not json`),
		[]byte(`{"userId":"u1","credits":10}`),
		[]byte(fmt.Sprintf(`{"transactionId":"tx-1","userId":"u1","credits":%d}`, -5)),
	} {
		w := postWebhook(r, body, signBody(body))
		requireErrorCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	}
}
