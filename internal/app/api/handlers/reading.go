package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	readingsvc "github.com/arcanalabs/tarot-backend/internal/app/service/reading"
	models "github.com/arcanalabs/tarot-backend/internal/models"
	mw "github.com/arcanalabs/tarot-backend/internal/app/api/middleware"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/response"
)

// @Summary      Create Reading
// @Description  Spends the spread's credit cost and persists the reading atomically. Retries with the same idempotency_key return the original result.
// @Tags         Readings
// @Accept       json
// @Produce      json
// @Param        request body reading.CreateRequest true "Reading submission"
// @Success      200  {object}  handlers.RespDebitResult
// @Router       /api/v1/readings [post]
func ApiCreateReading(svc *readingsvc.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req readingsvc.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			return
		}
		req.UserID = mw.UserID(c)

		res, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			switch {
			case errors.Is(err, ledgersvc.ErrInsufficientCredits):
				c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeInsufficientCredits, "not enough credits for this spread"))
			case errors.Is(err, ledgersvc.ErrInvalidRequest):
				c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			default:
				internalError(c, cfg, log, err)
			}
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List My Readings
// @Tags         Readings
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {object}  handlers.RespReadingList
// @Router       /api/v1/readings [get]
func ApiListReadings(svc *readingsvc.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, ok := parsePaging(c)
		if !ok {
			return
		}

		rows, total, err := svc.ListByUser(c.Request.Context(), mw.UserID(c), limit, offset)
		if err != nil {
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(response.ListResponse[*models.Reading]{
			Items:      rows,
			Pagination: response.Pagination{Limit: limit, Offset: offset, Total: total},
		}))
	}
}

// @Summary      Get Reading
// @Tags         Readings
// @Produce      json
// @Param        id  path  string  true  "Reading id"
// @Success      200  {object}  handlers.RespReading
// @Router       /api/v1/readings/{id} [get]
func ApiGetReading(svc *readingsvc.Service, cfg *config.Config, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := svc.GetByID(c.Request.Context(), c.Param("id"), mw.UserID(c))
		if err != nil {
			if errors.Is(err, readingsvc.ErrReadingNotFound) {
				c.JSON(http.StatusNotFound, response.ErrT[any](response.CodeNotFound, "reading not found"))
				return
			}
			internalError(c, cfg, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

func RegisterReadingRoutes(r gin.IRouter, svc *readingsvc.Service, cfg *config.Config, log *zap.SugaredLogger) {
	r.POST("/readings", ApiCreateReading(svc, cfg, log))
	r.GET("/readings", ApiListReadings(svc, cfg, log))
	r.GET("/readings/:id", ApiGetReading(svc, cfg, log))
}
