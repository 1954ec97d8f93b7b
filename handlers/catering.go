package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/catering"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
)

type CateringHandler struct {
	Catering catering.CateringService
}

// CreateCateringRequestHandler handles POST /catering/create-catering-request.
func (h *CateringHandler) CreateCateringRequestHandler(c *gin.Context) {
	var in models.CateringInput
	if !bindJSON(c, &in) {
		return
	}
	req, err := h.Catering.CreateRequest(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Catering request received", req)
}
