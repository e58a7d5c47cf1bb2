package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/logctx"
	"github.com/arcanalabs/tarot-backend/pkg/response"
	"go.uber.org/zap"
)

// parsePaging reads limit/offset query params, rejecting non-numeric or
// out-of-range values the same way the card listing does. Returns false
// after writing the 400 response.
func parsePaging(c *gin.Context) (limit, offset int, ok bool) {
	limit, offset = 20, 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeInvalidLimit, "limit must be a positive integer"))
			return 0, 0, false
		}
		limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeInvalidOffset, "offset must be a non-negative integer"))
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}

// internalError converts an unexpected failure to a 500. Production builds
// hide the underlying message.
func internalError(c *gin.Context, cfg *config.Config, log *zap.SugaredLogger, err error) {
	logctx.FromGin(c, log).Errorw("internal_error", "path", c.FullPath(), "err", err)
	msg := err.Error()
	if cfg.IsProd() {
		msg = "internal server error"
	}
	c.JSON(http.StatusInternalServerError, response.ErrT[any](response.CodeInternalError, msg))
}
