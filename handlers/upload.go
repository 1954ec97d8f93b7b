package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type uploadArgs struct {
	actor *models.User
	file  *storage.Upload
}

// handleUpload reads the multipart image and hands it to save. Whatever save
// returns becomes the response data.
func handleUpload[T any](c *gin.Context, save func(*uploadArgs) (T, error)) {
	file, closer, err := formImage(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer closer.Close()

	out, err := save(&uploadArgs{actor: middleware.CurrentUser(c), file: file})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Image uploaded", zap.String("route", c.FullPath()), zap.String("id", c.Param("id")))
	utils.Respond(c, http.StatusCreated, "Image uploaded", out)
}
