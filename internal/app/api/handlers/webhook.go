package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	wh "github.com/arcanalabs/tarot-backend/internal/app/service/webhookingest"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/logctx"
	"github.com/arcanalabs/tarot-backend/pkg/response"
)

// @Summary      Payment Webhook
// @Description  Accepts provider payment notifications. Requires the x-webhook-signature header (HMAC-SHA256 of the raw body). Replays of an already-seen event id succeed without side effects.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespIngestResult
// @Router       /payment-webhook [post]
func ApiPaymentWebhook(svc *wh.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, "failed to read body"))
			return
		}

		logctx.FromGin(c, log).Infow("webhook_received", "bytes", len(body))

		res, err := svc.HandleEvent(c.Request.Context(), body, c.GetHeader("x-webhook-signature"))
		if err != nil {
			switch {
			case errors.Is(err, wh.ErrInvalidSignature):
				c.JSON(http.StatusUnauthorized, response.ErrT[any](response.CodeInvalidSignature, "signature mismatch"))
			case errors.Is(err, wh.ErrMalformedPayload), errors.Is(err, wh.ErrMissingEventID):
				c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			default:
				internalError(c, cfg, log, err)
			}
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterWebhookRoutes(r gin.IRouter, svc *wh.Service, cfg *config.Config, log *zap.SugaredLogger) {
	r.POST("/payment-webhook", ApiPaymentWebhook(svc, cfg, log))
}
