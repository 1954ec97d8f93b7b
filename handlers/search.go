package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/services/places"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	Places places.PlacesService
}

// AutocompleteHandler handles GET /search/autocomplete?q&lat&lon&radius&sessiontoken.
func (h *SearchHandler) AutocompleteHandler(c *gin.Context) {
	center, err := queryCenter(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	radius, err := queryRadius(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	predictions, err := h.Places.Autocomplete(c.Request.Context(), places.AutocompleteQuery{
		Text:         c.Query("q"),
		Center:       center,
		RadiusMiles:  radius,
		SessionToken: c.Query("sessiontoken"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Autocomplete successful", predictions)
}
