package handlers

import (
	"errors"
	"net/http"

	"solar-finance/internal/api/models"
	"solar-finance/internal/finance"
	"solar-finance/internal/model"

	"github.com/gin-gonic/gin"
)

// AssumptionsHandler serves the server's default assumptions and PV sizing.
type AssumptionsHandler struct {
	defaults model.FinancialAssumptions
}

func NewAssumptionsHandler(defaults model.FinancialAssumptions) *AssumptionsHandler {
	return &AssumptionsHandler{defaults: defaults}
}

// GetAssumptions handles GET /api/v1/assumptions
func (h *AssumptionsHandler) GetAssumptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.defaults)
}

// RecommendSize handles POST /api/v1/size
func (h *AssumptionsHandler) RecommendSize(c *gin.Context) {
	var req models.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	profile := req.Profile
	if req.MonthlyBill > 0 {
		kwh, err := finance.AnnualConsumptionFromBill(req.MonthlyBill, profile.TariffRate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "INVALID_PROFILE", err)
			return
		}
		profile.AnnualConsumptionKWh = kwh
	} else if profile.AnnualConsumptionKWh <= 0 {
		abortWithError(c, http.StatusBadRequest, "INVALID_PROFILE",
			errors.New("either monthly_bill or profile.annual_consumption_kwh is required"))
		return
	}

	sizing, err := finance.RecommendSize(profile, req.OffsetTarget, req.Assumptions.Apply(h.defaults))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	c.JSON(http.StatusOK, sizing)
}
