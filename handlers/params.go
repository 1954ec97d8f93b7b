package handlers

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// imageField is the multipart field every upload endpoint reads.
const imageField = "image"

// queryCenter reads lat and lon. Both absent yields nil; one without the other,
// or values outside the valid ranges, is an error.
func queryCenter(c *gin.Context) (*models.GeoPoint, error) {
	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, ranking.ErrCenterRequired.WithDetails("lat and lon must be given together")
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || math.Abs(lat) > 90 {
		return nil, utils.ErrValidation.WithDetails("lat must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil || math.Abs(lon) > 180 {
		return nil, utils.ErrValidation.WithDetails("lon must be a number between -180 and 180")
	}
	p := models.NewGeoPoint(lon, lat)
	return &p, nil
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0, utils.ErrValidation.WithDetails(key + " must be a non-negative number")
	}
	return v, nil
}

// queryRadius returns nil when radius is absent so the default applies. A
// present radius must be a positive number.
func queryRadius(c *gin.Context) (*float64, error) {
	raw, ok := c.GetQuery("radius")
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil, ranking.ErrInvalidRadius
	}
	return &v, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, utils.ErrValidation.WithDetails(key + " must be a non-negative integer")
	}
	return v, nil
}

func queryBool(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, utils.ErrValidation.WithDetails(key + " must be true or false")
	}
	return v, nil
}

// queryTags accepts repeated and comma-separated tags.
func queryTags(c *gin.Context) []string {
	var tags []string
	for _, raw := range c.QueryArray("tags") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// formImage opens the uploaded image. The caller closes the returned closer.
func formImage(c *gin.Context) (*storage.Upload, io.Closer, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		return nil, nil, storage.ErrNoFile
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &storage.Upload{Filename: fh.Filename, Size: fh.Size, Body: f}, f, nil
}

// bindJSON binds the request body, reporting failures as validation errors.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		utils.RespondError(c, utils.ErrValidation.WithDetails(err.Error()))
		return false
	}
	return true
}
