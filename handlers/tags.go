package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/tag"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	Tags tag.TagService
}

type tagInput struct {
	Title string `json:"title" binding:"required"`
}

// ListTagsHandler handles GET /tags.
func (h *TagHandler) ListTagsHandler(c *gin.Context) {
	tags, err := h.Tags.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Tags found", tags)
}

// CreateTagHandler handles POST /tags/create.
func (h *TagHandler) CreateTagHandler(c *gin.Context) {
	var in tagInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.Tags.Create(c.Request.Context(), middleware.CurrentUser(c), in.Title)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Tag created", t)
}

// UploadTagImageHandler handles POST /tags/:id/image.
func (h *TagHandler) UploadTagImageHandler(c *gin.Context) {
	handleUpload(c, func(up *uploadArgs) (*models.Image, error) {
		return h.Tags.UploadImage(c.Request.Context(), up.actor, c.Param("id"), up.file)
	})
}
