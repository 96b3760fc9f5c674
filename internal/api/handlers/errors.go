package handlers

import (
	"errors"
	"net/http"

	"solar-finance/internal/api/models"
	"solar-finance/internal/finance"

	"github.com/gin-gonic/gin"
)

func abortWithError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// pipelineError maps a finance/optimize error onto an HTTP status and error code.
// Validation failures are the caller's fault (400); anything else is a 500 with the
// given fallback code.
func pipelineError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, finance.ErrInvalidProfile):
		abortWithError(c, http.StatusBadRequest, "INVALID_PROFILE", err)
	case errors.Is(err, finance.ErrInvalidDesign):
		abortWithError(c, http.StatusBadRequest, "INVALID_DESIGN", err)
	case errors.Is(err, finance.ErrInvalidAssumptions):
		abortWithError(c, http.StatusBadRequest, "INVALID_ASSUMPTIONS", err)
	default:
		abortWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
