package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/home"
	"github.com/RobbieBendick/curb-companion-backend/services/landing"
	"github.com/RobbieBendick/curb-companion-backend/services/notification"
	"github.com/RobbieBendick/curb-companion-backend/services/places"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/services/user"
	"github.com/RobbieBendick/curb-companion-backend/services/vendors"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVendors struct {
	vendors.VendorService
	lastSearch   ranking.SearchQuery
	searchResult []models.VendorView
	liveAt       *models.GeoPoint
	uploaded     *storage.Upload
	uploadBody   []byte
}

func (f *fakeVendors) SearchVendors(_ context.Context, q ranking.SearchQuery) ([]models.VendorView, error) {
	f.lastSearch = q
	return f.searchResult, nil
}

func (f *fakeVendors) GoLive(_ context.Context, actor *models.User, id string, at *models.GeoPoint) (*models.LiveSession, error) {
	if actor == nil {
		return nil, utils.ErrUnauthorized
	}
	f.liveAt = at
	return &models.LiveSession{ID: "s1", VendorID: id}, nil
}

func (f *fakeVendors) UploadImage(_ context.Context, _ *models.User, id string, up *storage.Upload) (*models.Image, error) {
	f.uploaded = up
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(up.Body); err != nil {
		return nil, err
	}
	f.uploadBody = buf.Bytes()
	return &models.Image{ID: "img", Owner: id}, nil
}

type fakeHome struct {
	lastQuery  home.Query
	lastViewer *models.User
}

func (f *fakeHome) Sections(_ context.Context, q home.Query, viewer *models.User) ([]home.Section, error) {
	f.lastQuery = q
	f.lastViewer = viewer
	return []home.Section{{Title: "Nearest", Vendors: []models.VendorView{}}}, nil
}

type fakeNotifications struct {
	notification.NotificationService
	err error
}

func (f *fakeNotifications) Send(_ context.Context, _ *models.User, in models.NotificationInput) (*models.Notification, error) {
	return &models.Notification{ID: "n1", UserID: in.UserID}, f.err
}

type fakePlaces struct {
	last places.AutocompleteQuery
}

func (f *fakePlaces) Autocomplete(_ context.Context, q places.AutocompleteQuery) ([]places.Prediction, error) {
	f.last = q
	return []places.Prediction{{Description: "1 Main St", PlaceID: "abc"}}, nil
}

type fakeUsers struct {
	user.UserService
	uploaded *storage.Upload
}

func (f *fakeUsers) UploadProfileImage(_ context.Context, actor *models.User, id string, up *storage.Upload) (*models.User, error) {
	if actor == nil || actor.ID != id {
		return nil, utils.ErrForbidden
	}
	f.uploaded = up
	return &models.User{ID: id, ProfileImage: &models.Image{ID: "img", Owner: id}}, nil
}

type fakeLanding struct {
	landing.LandingService
	last models.LandingVendorInput
}

func (f *fakeLanding) CreateVendor(_ context.Context, in models.LandingVendorInput) (*models.LandingVendor, error) {
	f.last = in
	return &models.LandingVendor{ID: "l1", Title: in.Title, Catering: *in.Catering}, nil
}

// asUser stands in for the auth middleware.
func asUser(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set(middleware.UserKey, u)
		}
		c.Next()
	}
}

func do(r http.Handler, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestSearchVendorsParsesQuery(t *testing.T) {
	fv := &fakeVendors{searchResult: []models.VendorView{{Vendor: models.Vendor{ID: "v1"}}}}
	h := &VendorHandler{Vendors: fv}
	r := gin.New()
	r.GET("/vendors/search", h.SearchVendorsHandler)

	w := do(r, http.MethodGet, "/vendors/search?q=taco&tags=bbq,vegan&tags=late&catering=true&rating=4&lat=40.7&lon=-74&radius=10&skip=5&limit=20", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	q := fv.lastSearch
	assert.Equal(t, "taco", q.Text)
	assert.Equal(t, []string{"bbq", "vegan", "late"}, q.Tags)
	assert.True(t, q.CateringOnly)
	assert.Equal(t, 4.0, q.MinRating)
	require.NotNil(t, q.Center)
	assert.Equal(t, []float64{-74, 40.7}, q.Center.Coordinates, "GeoJSON order is [lon, lat]")
	require.NotNil(t, q.RadiusMiles)
	assert.Equal(t, 10.0, *q.RadiusMiles)
	assert.Equal(t, 5, q.Skip)
	assert.Equal(t, 20, q.Limit)
}

func TestSearchVendorsErrors(t *testing.T) {
	fv := &fakeVendors{}
	h := &VendorHandler{Vendors: fv}
	r := gin.New()
	r.GET("/vendors/search", h.SearchVendorsHandler)

	w := do(r, http.MethodGet, "/vendors/search?q=none", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "noVendorsFound", errorCode(t, w))

	w = do(r, http.MethodGet, "/vendors/search?lat=40", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "locationRequired", errorCode(t, w))

	w = do(r, http.MethodGet, "/vendors/search?lat=95&lon=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/vendors/search?limit=-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRadiusZeroIsRejected(t *testing.T) {
	fv := &fakeVendors{}
	fh := &fakeHome{}
	r := gin.New()
	r.GET("/vendors/search", (&VendorHandler{Vendors: fv}).SearchVendorsHandler)
	r.GET("/home/sections", (&HomeHandler{Home: fh}).SectionsHandler)

	for _, path := range []string{
		"/vendors/search?lat=1&lon=2&radius=0",
		"/vendors/search?lat=1&lon=2&radius=-3",
		"/home/sections?lat=1&lon=2&radius=0",
		"/home/sections?lat=1&lon=2&radius=abc",
	} {
		w := do(r, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
	assert.Nil(t, fh.lastQuery.Center, "the service is never reached")
}

func TestHomeSections(t *testing.T) {
	fh := &fakeHome{}
	h := &HomeHandler{Home: fh}
	viewer := &models.User{ID: "u1"}
	r := gin.New()
	r.GET("/home/sections", asUser(viewer), h.SectionsHandler)

	w := do(r, http.MethodGet, "/home/sections", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "locationRequired", errorCode(t, w))

	w = do(r, http.MethodGet, "/home/sections?lat=1&lon=2&tags=bbq", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []float64{2, 1}, fh.lastQuery.Center.Coordinates)
	assert.Nil(t, fh.lastQuery.RadiusMiles, "the service applies the default radius")
	assert.Equal(t, []string{"bbq"}, fh.lastQuery.Tags)
	assert.Same(t, viewer, fh.lastViewer)

	var body struct {
		Data []home.Section `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Nearest", body.Data[0].Title)
}

func TestGoLiveBodyIsOptional(t *testing.T) {
	fv := &fakeVendors{}
	h := &VendorHandler{Vendors: fv}
	r := gin.New()
	r.POST("/vendors/:id/go-live", asUser(&models.User{ID: "owner"}), h.GoLiveHandler)

	w := do(r, http.MethodPost, "/vendors/v1/go-live", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, fv.liveAt)

	w = do(r, http.MethodPost, "/vendors/v1/go-live", []byte(`{"location":{"type":"Point","coordinates":[-74,40.7]}}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fv.liveAt)
	assert.Equal(t, []float64{-74, 40.7}, fv.liveAt.Coordinates)

	w = do(r, http.MethodPost, "/vendors/v1/go-live", []byte(`{"location":`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImage(t *testing.T) {
	fv := &fakeVendors{}
	h := &VendorHandler{Vendors: fv}
	r := gin.New()
	r.POST("/vendors/:id/images", asUser(&models.User{ID: "owner"}), h.UploadImageHandler)

	w := do(r, http.MethodPost, "/vendors/v1/images", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "noFilesUploaded", errorCode(t, w))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "truck.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w = do(r, http.MethodPost, "/vendors/v1/images", buf.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, fv.uploaded)
	assert.Equal(t, "truck.png", fv.uploaded.Filename)
	assert.EqualValues(t, len("png-bytes"), fv.uploaded.Size)
	assert.Equal(t, "png-bytes", string(fv.uploadBody))
}

func TestSendNotificationReportsMissingDevice(t *testing.T) {
	fn := &fakeNotifications{err: notification.ErrDeviceTokenNotFound}
	h := &NotificationHandler{Notifications: fn}
	r := gin.New()
	r.POST("/notifications/send", asUser(&models.User{ID: "admin"}), h.SendNotificationHandler)

	w := do(r, http.MethodPost, "/notifications/send", []byte(`{"userId":"u1","title":"Hi","body":"There"}`), "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "deviceTokenNotFound", errorCode(t, w))

	fn.err = nil
	w = do(r, http.MethodPost, "/notifications/send", []byte(`{"userId":"u1","title":"Hi","body":"There"}`), "application/json")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/notifications/send", []byte(`{"title":"Hi"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validationErrors", errorCode(t, w))
}

func imageForm(t *testing.T, filename, content string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

func TestAutocompleteParsesQuery(t *testing.T) {
	fp := &fakePlaces{}
	r := gin.New()
	r.GET("/search/autocomplete", (&SearchHandler{Places: fp}).AutocompleteHandler)

	w := do(r, http.MethodGet, "/search/autocomplete?q=1+main&lat=28.5&lon=-81.4&radius=2&sessiontoken=tok", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 main", fp.last.Text)
	require.NotNil(t, fp.last.Center)
	assert.Equal(t, []float64{-81.4, 28.5}, fp.last.Center.Coordinates)
	require.NotNil(t, fp.last.RadiusMiles)
	assert.Equal(t, 2.0, *fp.last.RadiusMiles)
	assert.Equal(t, "tok", fp.last.SessionToken)

	var body struct {
		Data []places.Prediction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "abc", body.Data[0].PlaceID)

	w = do(r, http.MethodGet, "/search/autocomplete?q=main&lat=28.5", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserProfileImageUpload(t *testing.T) {
	fu := &fakeUsers{}
	h := &UserHandler{Users: fu}
	r := gin.New()
	r.POST("/users/:id/profile-image", asUser(&models.User{ID: "u1"}), h.UploadProfileImageHandler)

	form, ct := imageForm(t, "me.jpg", "jpg-bytes")
	w := do(r, http.MethodPost, "/users/u1/profile-image", form, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, fu.uploaded)
	assert.Equal(t, "me.jpg", fu.uploaded.Filename)

	var body struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Data.ProfileImage)
	assert.Equal(t, "img", body.Data.ProfileImage.ID)

	form, ct = imageForm(t, "me.jpg", "jpg-bytes")
	w = do(r, http.MethodPost, "/users/u2/profile-image", form, ct)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateLandingVendor(t *testing.T) {
	fl := &fakeLanding{}
	r := gin.New()
	r.POST("/landing/create", (&LandingHandler{Landing: fl}).CreateLandingVendorHandler)

	body := []byte(`{"title":"Taco Truck","street":"1 Main St","city":"Orlando","state":"FL","postalCode":"32801","catering":false}`)
	w := do(r, http.MethodPost, "/landing/create", body, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, fl.last.Catering)
	assert.False(t, *fl.last.Catering)

	w = do(r, http.MethodPost, "/landing/create", []byte(`{"title":"Taco Truck"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validationErrors", errorCode(t, w))
}
