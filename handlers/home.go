package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/services/home"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	Home home.HomeService
}

// SectionsHandler handles GET /home/sections.
func (h *HomeHandler) SectionsHandler(c *gin.Context) {
	center, err := queryCenter(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if center == nil {
		utils.RespondError(c, ranking.ErrCenterRequired)
		return
	}
	radius, err := queryRadius(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	q := home.Query{Center: center, RadiusMiles: radius, Tags: queryTags(c)}
	sections, err := h.Home.Sections(c.Request.Context(), q, middleware.CurrentUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Home sections", sections)
}
