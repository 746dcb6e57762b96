package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to its HTTP status. Validation is checked
// before CatalogNotFound so an unknown category at creation is a 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorCatalogNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, common.ErrorStoreUnavailable),
		errors.Is(err, common.ErrorCatalogUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (r *Router) fail(c *gin.Context, err error) {
	code := statusFor(err)
	ctx := c.Request.Context()
	switch code {
	case http.StatusServiceUnavailable:
		r.logger.Warn(ctx, "store unavailable", "path", c.FullPath(), "error", err.Error())
		c.JSON(code, gin.H{"error": "store unavailable"})
	case http.StatusInternalServerError:
		r.logger.Error(ctx, "internal error", "path", c.FullPath(), "error", err.Error())
		c.JSON(code, gin.H{"error": "internal error"})
	default:
		c.JSON(code, gin.H{"error": err.Error()})
	}
}
