package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/arcanalabs/tarot-backend/internal/app/api/middleware"
	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	models "github.com/arcanalabs/tarot-backend/internal/models"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/response"
)

type balanceData struct {
	Balance int64 `json:"balance"`
}

// @Summary      Get Credit Balance
// @Tags         Credits
// @Produce      json
// @Success      200  {object}  handlers.RespBalance
// @Router       /api/v1/credits/balance [get]
func ApiGetBalance(lg ledgersvc.Ledger, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		balance, err := lg.GetBalance(c.Request.Context(), mw.UserID(c))
		if err != nil {
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(balanceData{Balance: balance}))
	}
}

// @Summary      List Credit Transactions
// @Description  Pages the caller's ledger, newest first.
// @Tags         Credits
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {object}  handlers.RespLedgerList
// @Router       /api/v1/credits/transactions [get]
func ApiListTransactions(lg ledgersvc.Ledger, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, ok := parsePaging(c)
		if !ok {
			return
		}

		rows, total, err := lg.ListEntries(c.Request.Context(), mw.UserID(c), limit, offset)
		if err != nil {
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(response.ListResponse[*models.CreditLedgerEntry]{
			Items:      rows,
			Pagination: response.Pagination{Limit: limit, Offset: offset, Total: total},
		}))
	}
}

func RegisterCreditRoutes(r gin.IRouter, lg ledgersvc.Ledger, cfg *config.Config, log *zap.SugaredLogger) {
	r.GET("/credits/balance", ApiGetBalance(lg, cfg, log))
	r.GET("/credits/transactions", ApiListTransactions(lg, cfg, log))
}
