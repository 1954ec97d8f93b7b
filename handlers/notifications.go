package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/notification"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Notifications notification.NotificationService
}

// ListNotificationsHandler handles GET /notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	ns, err := h.Notifications.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Notifications found", ns)
}

// ReadNotificationHandler handles GET /notifications/read/:id.
func (h *NotificationHandler) ReadNotificationHandler(c *gin.Context) {
	n, err := h.Notifications.Read(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Notification read", n)
}

// SendNotificationHandler handles POST /notifications/send. A notification that
// was stored but could not be pushed is reported with the push error.
func (h *NotificationHandler) SendNotificationHandler(c *gin.Context) {
	var in models.NotificationInput
	if !bindJSON(c, &in) {
		return
	}
	n, err := h.Notifications.Send(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		if n != nil {
			getLogger(c).Warn("Notification stored but not pushed", zap.String("notificationId", n.ID), zap.Error(err))
		}
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Notification sent", n)
}
