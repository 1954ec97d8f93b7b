package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/landing"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
)

type LandingHandler struct {
	Landing landing.LandingService
}

// CreateLandingVendorHandler handles POST /landing/create.
func (h *LandingHandler) CreateLandingVendorHandler(c *gin.Context) {
	var in models.LandingVendorInput
	if !bindJSON(c, &in) {
		return
	}
	v, err := h.Landing.CreateVendor(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Vendor created", v)
}
