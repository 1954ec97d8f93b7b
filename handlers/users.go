package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/user"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Users user.UserService
}

// GetUserHandler handles GET /users/:id.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "User found", u)
}

// ListUsersHandler handles GET /users.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Users found", users)
}

// UploadProfileImageHandler handles POST /users/:id/profile-image.
func (h *UserHandler) UploadProfileImageHandler(c *gin.Context) {
	handleUpload(c, func(up *uploadArgs) (*models.User, error) {
		return h.Users.UploadProfileImage(c.Request.Context(), up.actor, c.Param("id"), up.file)
	})
}

// UploadImageHandler handles POST /users/:id/images.
func (h *UserHandler) UploadImageHandler(c *gin.Context) {
	handleUpload(c, func(up *uploadArgs) (*models.User, error) {
		return h.Users.UploadImage(c.Request.Context(), up.actor, c.Param("id"), up.file)
	})
}

// UpdateUserHandler handles PATCH /users/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	var in models.UserUpdate
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Users.UpdateUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "User updated", u)
}

// DeleteUserHandler handles DELETE /users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Users.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("User deleted", zap.String("userId", id))
	utils.Respond(c, http.StatusOK, "User deleted", nil)
}

// GetUserReviewsHandler handles GET /users/:id/reviews.
func (h *UserHandler) GetUserReviewsHandler(c *gin.Context) {
	reviews, err := h.Users.GetUserReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Reviews found", reviews)
}

// AddFavoriteHandler handles POST /users/:id/favorites.
func (h *UserHandler) AddFavoriteHandler(c *gin.Context) {
	var in models.FavoriteInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Users.AddFavorite(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.VendorID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Vendor favorited", nil)
}

// RemoveFavoriteHandler handles DELETE /users/:id/favorites.
func (h *UserHandler) RemoveFavoriteHandler(c *gin.Context) {
	var in models.FavoriteInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Users.RemoveFavorite(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.VendorID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Vendor unfavorited", nil)
}

// SaveLocationHandler handles PATCH /users/:id/save-location.
func (h *UserHandler) SaveLocationHandler(c *gin.Context) {
	var in models.LocationInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Users.SaveLocation(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.Location); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Location saved", nil)
}

// UnsaveLocationHandler handles PATCH /users/:id/unsave-location.
func (h *UserHandler) UnsaveLocationHandler(c *gin.Context) {
	var in models.LocationInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Users.UnsaveLocation(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.Location); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Location removed", nil)
}

// UpdateDeviceTokenHandler handles PATCH /users/:id/update-device-token.
func (h *UserHandler) UpdateDeviceTokenHandler(c *gin.Context) {
	var in models.DeviceTokenInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Users.UpdateDeviceToken(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.DeviceToken); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Device token updated", nil)
}

// UpdateRolesHandler handles PATCH /users/:id/update-roles.
func (h *UserHandler) UpdateRolesHandler(c *gin.Context) {
	var in models.RolesInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Users.UpdateRoles(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.Roles)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Roles updated", zap.String("userId", u.ID), zap.Strings("roles", u.Roles))
	utils.Respond(c, http.StatusOK, "Roles updated", u)
}
