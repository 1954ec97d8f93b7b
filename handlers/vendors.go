package handlers

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/home"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/services/vendors"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VendorHandler struct {
	Vendors vendors.VendorService
}

// SearchVendorsHandler handles GET /vendors/search.
func (h *VendorHandler) SearchVendorsHandler(c *gin.Context) {
	q, err := searchQuery(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	found, err := h.Vendors.SearchVendors(c.Request.Context(), q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if len(found) == 0 {
		utils.RespondError(c, home.ErrNoVendorsFound)
		return
	}
	utils.Respond(c, http.StatusOK, "Vendors found", found)
}

func searchQuery(c *gin.Context) (ranking.SearchQuery, error) {
	var (
		q   ranking.SearchQuery
		err error
	)
	q.Text = c.Query("q")
	q.Tags = queryTags(c)
	if q.Center, err = queryCenter(c); err != nil {
		return q, err
	}
	if q.RadiusMiles, err = queryRadius(c); err != nil {
		return q, err
	}
	if q.MinRating, err = queryFloat(c, "rating"); err != nil {
		return q, err
	}
	if q.CateringOnly, err = queryBool(c, "catering"); err != nil {
		return q, err
	}
	if q.Skip, err = queryInt(c, "skip"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		return q, err
	}
	return q, nil
}

// GetVendorsByOwnerHandler handles GET /vendors/search/owner/:ownerId.
func (h *VendorHandler) GetVendorsByOwnerHandler(c *gin.Context) {
	found, err := h.Vendors.GetVendorsByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Vendors found", found)
}

// GetVendorHandler handles GET /vendors/:id.
func (h *VendorHandler) GetVendorHandler(c *gin.Context) {
	v, err := h.Vendors.GetVendor(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Vendor found", v)
}

// CreateVendorHandler handles POST /vendors/create.
func (h *VendorHandler) CreateVendorHandler(c *gin.Context) {
	var in models.VendorInput
	if !bindJSON(c, &in) {
		return
	}
	v, err := h.Vendors.CreateVendor(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Vendor created", zap.String("vendorId", v.ID))
	utils.Respond(c, http.StatusCreated, "Vendor created", v)
}

// UpdateVendorHandler handles PATCH /vendors/:id.
func (h *VendorHandler) UpdateVendorHandler(c *gin.Context) {
	var in models.VendorUpdate
	if !bindJSON(c, &in) {
		return
	}
	v, err := h.Vendors.UpdateVendor(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Vendor updated", v)
}

// DeleteVendorHandler handles DELETE /vendors/:id.
func (h *VendorHandler) DeleteVendorHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Vendors.DeleteVendor(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Vendor deleted", zap.String("vendorId", id))
	utils.Respond(c, http.StatusOK, "Vendor deleted", nil)
}

// GoLiveHandler handles POST /vendors/:id/go-live. The body is optional.
func (h *VendorHandler) GoLiveHandler(c *gin.Context) {
	var in models.GoLiveInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &in) {
		return
	}
	session, err := h.Vendors.GoLive(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.Location)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Vendor is live", session)
}

// EndLiveHandler handles POST /vendors/:id/end-live.
func (h *VendorHandler) EndLiveHandler(c *gin.Context) {
	history, err := h.Vendors.EndLive(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Live session ended", history)
}

// AddOccurrenceHandler handles POST /vendors/:id/schedule/occurrences.
func (h *VendorHandler) AddOccurrenceHandler(c *gin.Context) {
	var in models.OccurrenceInput
	if !bindJSON(c, &in) {
		return
	}
	occ, err := h.Vendors.AddOccurrence(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Occurrence added", occ)
}

// RemoveOccurrenceHandler handles DELETE /vendors/:id/schedule/occurrences/:occurrenceID.
func (h *VendorHandler) RemoveOccurrenceHandler(c *gin.Context) {
	err := h.Vendors.RemoveOccurrence(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), c.Param("occurrenceID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Occurrence removed", nil)
}

// GetReviewsHandler handles GET /vendors/:id/reviews.
func (h *VendorHandler) GetReviewsHandler(c *gin.Context) {
	reviews, err := h.Vendors.GetReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Reviews found", reviews)
}

// AddReviewHandler handles POST /vendors/:id/reviews.
func (h *VendorHandler) AddReviewHandler(c *gin.Context) {
	var in models.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.Vendors.AddReview(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Review added", review)
}

// RemoveReviewHandler handles DELETE /vendors/:id/reviews.
func (h *VendorHandler) RemoveReviewHandler(c *gin.Context) {
	if err := h.Vendors.RemoveReview(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Review removed", nil)
}

// UploadProfileImageHandler handles POST /vendors/:id/profile-image.
func (h *VendorHandler) UploadProfileImageHandler(c *gin.Context) {
	handleUpload(c, func(up *uploadArgs) (*models.Image, error) {
		return h.Vendors.UploadProfileImage(c.Request.Context(), up.actor, c.Param("id"), up.file)
	})
}

// UploadImageHandler handles POST /vendors/:id/images.
func (h *VendorHandler) UploadImageHandler(c *gin.Context) {
	handleUpload(c, func(up *uploadArgs) (*models.Image, error) {
		return h.Vendors.UploadImage(c.Request.Context(), up.actor, c.Param("id"), up.file)
	})
}

// UploadMenuItemImageHandler handles POST /vendors/:id/menuitems/:itemID/image.
func (h *VendorHandler) UploadMenuItemImageHandler(c *gin.Context) {
	handleUpload(c, func(up *uploadArgs) (*models.Image, error) {
		return h.Vendors.UploadMenuItemImage(c.Request.Context(), up.actor, c.Param("id"), c.Param("itemID"), up.file)
	})
}
