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

type AuthHandler struct {
	Users user.UserService
}

// RegisterHandler handles POST /auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var in models.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.Users.Register(c.Request.Context(), in)
	if err != nil {
		getLogger(c).Info("Registration failed", zap.String("email", in.Email), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "User registered", resp)
}

// LoginHandler handles POST /auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var in models.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.Users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Logged in", resp)
}

// LogoutHandler handles POST /auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.Users.Logout(c.Request.Context(), actor.ID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Logged out", nil)
}
