package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	snapshotdomain "github.com/renolab/bathquote/internal/snapshot/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware converts domain errors collected during the
// request into a single JSON error response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, snapshotdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}

	case errors.Is(err, packagepricedomain.ErrPackageNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}

	case errors.Is(err, snapshotdomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: err.Error()}

	case errors.Is(err, quotedomain.ErrInvalidForm),
		errors.Is(err, snapshotdomain.ErrInvalidID),
		errors.Is(err, packagepricedomain.ErrUnknownSize),
		errors.Is(err, bathroomdomain.ErrUnknownSize),
		errors.Is(err, bathroomdomain.ErrUnknownCoverage),
		errors.Is(err, bathroomdomain.ErrUnknownItemType):
		return http.StatusBadRequest, errorPayload{Type: "validation_error", Message: err.Error()}

	case errors.Is(err, quotedomain.ErrRateCardIncomplete),
		errors.Is(err, quotedomain.ErrMissingRateCode),
		errors.Is(err, ratecarddomain.ErrRevisionMissing),
		errors.Is(err, ratecarddomain.ErrSquareFootageEmpty),
		errors.Is(err, bathroomdomain.ErrInvalidWallTile):
		// Configuration gaps are operator errors, not client errors.
		return http.StatusUnprocessableEntity, errorPayload{Type: "config_error", Message: err.Error()}

	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
	}
}
