package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	readingsvc "github.com/arcanalabs/tarot-backend/internal/app/service/reading"
	"github.com/arcanalabs/tarot-backend/internal/app/service/statistics"
	wh "github.com/arcanalabs/tarot-backend/internal/app/service/webhookingest"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/response"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

// @Summary      List Readings (Admin)
// @Description  Paginated, filterable listing of all readings.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body reading.ScanReadingsRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespReadingScan
// @Router       /api/v1/admin/list_readings [post]
func ApiAdminListReadings(svc *readingsvc.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req readingsvc.ScanReadingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			return
		}
		res, err := svc.ScanReadings(c.Request.Context(), &req)
		if err != nil {
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List Ledger Entries (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body ledger.ScanEntriesRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespLedgerScan
// @Router       /api/v1/admin/list_ledger [post]
func ApiAdminListLedger(lg ledgersvc.Ledger, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ledgersvc.ScanEntriesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			return
		}
		res, err := lg.ScanEntries(c.Request.Context(), &req)
		if err != nil {
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type updateReadingStatusRequest struct {
	ReadingID  string              `json:"reading_id"`
	Status     types.ReadingStatus `json:"status"`
	AdminNotes string              `json:"admin_notes"`
}

// @Summary      Update Reading Status (Admin)
// @Description  Sets status and admin notes; the only mutation a reading allows after creation.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handlers.updateReadingStatusRequest true "Status update"
// @Success      200  {object}  handlers.RespReading
// @Router       /api/v1/admin/update_reading_status [post]
func ApiAdminUpdateReadingStatus(svc *readingsvc.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateReadingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			return
		}
		r, err := svc.UpdateStatus(c.Request.Context(), req.ReadingID, req.Status, req.AdminNotes)
		if err != nil {
			switch {
			case errors.Is(err, readingsvc.ErrReadingNotFound):
				c.JSON(http.StatusNotFound, response.ErrT[any](response.CodeNotFound, "reading not found"))
			case errors.Is(err, readingsvc.ErrInvalidStatus):
				c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			default:
				internalError(c, cfg, log, err)
			}
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

// @Summary      Get Statistics (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body statistics.StatisticRequest true "Date range and data items"
// @Success      200  {object}  handlers.RespStatistics
// @Router       /api/v1/admin/statistics [post]
func ApiAdminStatistics(stats *statistics.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.StatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			return
		}
		res, err := stats.GetStatistics(c.Request.Context(), &req)
		if err != nil {
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type reconcileResult struct {
	Repaired int `json:"repaired"`
}

// @Summary      Reconcile Webhooks (Admin)
// @Description  Re-applies credit awards for webhook events marked seen but never processed.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespReconcile
// @Router       /api/v1/admin/reconcile_webhooks [post]
func ApiAdminReconcileWebhooks(svc *wh.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.ReconcileUnprocessed(c.Request.Context())
		if err != nil {
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(reconcileResult{Repaired: n}))
	}
}

func RegisterAdminRoutes(r gin.IRouter, rd *readingsvc.Service, lg ledgersvc.Ledger, stats *statistics.Service, whs *wh.Service, cfg *config.Config, log *zap.SugaredLogger) {
	r.POST("/list_readings", ApiAdminListReadings(rd, cfg, log))
	r.POST("/list_ledger", ApiAdminListLedger(lg, cfg, log))
	r.POST("/update_reading_status", ApiAdminUpdateReadingStatus(rd, cfg, log))
	r.POST("/statistics", ApiAdminStatistics(stats, cfg, log))
	r.POST("/reconcile_webhooks", ApiAdminReconcileWebhooks(whs, cfg, log))
}
