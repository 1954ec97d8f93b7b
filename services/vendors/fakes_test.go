package vendors

import (
	"context"
	"sync"
	"time"

	liveRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/live"
	tagRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/tag"
	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/availability"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/services/tasks"

	"go.mongodb.org/mongo-driver/bson"
)

// memVendors is an in-memory VendorRepository. Unused methods fall through to the
// nil embedded interface and panic if called.
type memVendors struct {
	vendorRepo.VendorRepository

	mu        sync.Mutex
	vendors   map[string]*models.Vendor
	conflicts int // AddReview/RemoveReview report ErrConflict this many times
	views     map[string]int
}

func newMemVendors(vs ...models.Vendor) *memVendors {
	m := &memVendors{vendors: map[string]*models.Vendor{}, views: map[string]int{}}
	for i := range vs {
		v := cloneVendor(&vs[i])
		m.vendors[v.ID] = v
	}
	return m
}

func cloneVendor(v *models.Vendor) *models.Vendor {
	out := *v
	out.Tags = append([]models.Tag(nil), v.Tags...)
	out.Menu = append([]models.MenuItem(nil), v.Menu...)
	out.Reviews = append([]models.Review(nil), v.Reviews...)
	out.Schedule = append([]models.Occurrence(nil), v.Schedule...)
	out.Images = append([]models.Image(nil), v.Images...)
	out.LiveHistory = append([]string(nil), v.LiveHistory...)
	if v.Live != nil {
		live := *v.Live
		out.Live = &live
	}
	return &out
}

func (m *memVendors) get(id string) *models.Vendor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.vendors[id]; ok {
		return cloneVendor(v)
	}
	return nil
}

func (m *memVendors) Create(_ context.Context, v *models.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[v.ID] = cloneVendor(v)
	return nil
}

func (m *memVendors) GetByID(_ context.Context, id string) (*models.Vendor, error) {
	if v := m.get(id); v != nil {
		return v, nil
	}
	return nil, vendorRepo.ErrNotFound
}

func (m *memVendors) GetByOwner(_ context.Context, ownerID string) ([]models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Vendor
	for _, v := range m.vendors {
		if v.OwnerID == ownerID {
			out = append(out, *cloneVendor(v))
		}
	}
	return out, nil
}

func (m *memVendors) Update(_ context.Context, id string, fields bson.M) (*models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return nil, vendorRepo.ErrNotFound
	}
	for k, val := range fields {
		switch k {
		case "title":
			v.Title = val.(string)
		case "email":
			v.Email = val.(string)
		case "website":
			v.Website = val.(string)
		case "phoneNumber":
			v.PhoneNumber = val.(string)
		case "description":
			v.Description = val.(string)
		case "isCatering":
			v.IsCatering = val.(bool)
		case "location":
			v.Location = val.(*models.GeoPoint)
		case "tags":
			v.Tags = val.([]models.Tag)
		case "menu":
			v.Menu = val.([]models.MenuItem)
		case "schedule":
			v.Schedule = val.([]models.Occurrence)
		default:
			panic("memVendors.Update: unexpected field " + k)
		}
	}
	return cloneVendor(v), nil
}

func (m *memVendors) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vendors[id]; !ok {
		return vendorRepo.ErrNotFound
	}
	delete(m.vendors, id)
	return nil
}

func (m *memVendors) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[id].Views++
	m.views[id]++
	return nil
}

func (m *memVendors) StartLive(_ context.Context, id string, session models.LiveSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return vendorRepo.ErrNotFound
	}
	if v.Live != nil {
		return vendorRepo.ErrLiveExists
	}
	v.Live = &session
	return nil
}

func (m *memVendors) DetachLive(_ context.Context, id, sessionID string) (*models.LiveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok || v.Live == nil || (sessionID != "" && v.Live.ID != sessionID) {
		return nil, vendorRepo.ErrNotLive
	}
	s := v.Live
	v.Live = nil
	return s, nil
}

func (m *memVendors) AppendLiveHistory(_ context.Context, id, historyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[id].LiveHistory = append(m.vendors[id].LiveHistory, historyID)
	return nil
}

func (m *memVendors) AddReview(_ context.Context, id string, review models.Review, expectedCount int, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts > 0 {
		m.conflicts--
		return vendorRepo.ErrConflict
	}
	v := m.vendors[id]
	if len(v.Reviews) != expectedCount {
		return vendorRepo.ErrConflict
	}
	v.Reviews = append(v.Reviews, review)
	v.Rating = rating
	return nil
}

func (m *memVendors) RemoveReview(_ context.Context, id, userID string, expectedCount int, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts > 0 {
		m.conflicts--
		return vendorRepo.ErrConflict
	}
	v := m.vendors[id]
	if len(v.Reviews) != expectedCount {
		return vendorRepo.ErrConflict
	}
	kept := v.Reviews[:0]
	for _, r := range v.Reviews {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	v.Reviews = kept
	v.Rating = rating
	return nil
}

func (m *memVendors) AddOccurrence(_ context.Context, id string, occ models.Occurrence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[id].Schedule = append(m.vendors[id].Schedule, occ)
	return nil
}

func (m *memVendors) RemoveOccurrence(_ context.Context, id, occurrenceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.vendors[id]
	for i, o := range v.Schedule {
		if o.ID == occurrenceID {
			v.Schedule = append(v.Schedule[:i], v.Schedule[i+1:]...)
			return nil
		}
	}
	return vendorRepo.ErrNotFound
}

func (m *memVendors) SetProfileImage(_ context.Context, id string, image models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[id].ProfileImage = &image
	return nil
}

func (m *memVendors) AddImage(_ context.Context, id string, image models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[id].Images = append(m.vendors[id].Images, image)
	return nil
}

func (m *memVendors) SetMenuItemImage(_ context.Context, id, itemID string, image models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.vendors[id].Menu {
		if m.vendors[id].Menu[i].ID == itemID {
			img := image
			m.vendors[id].Menu[i].Image = &img
			return nil
		}
	}
	return vendorRepo.ErrNotFound
}

type memUsers struct {
	userRepo.UserRepository

	mu            sync.Mutex
	recent        map[string][]string
	roles         map[string][]string
	favoritesGone []string
}

func newMemUsers() *memUsers {
	return &memUsers{recent: map[string][]string{}, roles: map[string][]string{}}
}

func (m *memUsers) PushRecentlyViewed(_ context.Context, id, vendorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent[id] = append([]string{vendorID}, m.recent[id]...)
	return nil
}

func (m *memUsers) UpdateSetDocument(_ context.Context, id string, doc bson.M) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if roles, ok := doc["roles"].([]string); ok {
		m.roles[id] = roles
	}
	return &models.User{ID: id}, nil
}

func (m *memUsers) RemoveFavoriteEverywhere(_ context.Context, vendorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favoritesGone = append(m.favoritesGone, vendorID)
	return nil
}

type memTags struct {
	tagRepo.TagRepository
	tags []models.Tag
}

func (m *memTags) GetByTitles(_ context.Context, titles []string) ([]models.Tag, error) {
	want := map[string]bool{}
	for _, t := range titles {
		want[t] = true
	}
	var out []models.Tag
	for _, t := range m.tags {
		if want[t.Title] {
			out = append(out, t)
		}
	}
	return out, nil
}

type memHistory struct {
	liveRepo.LiveHistoryRepository

	mu      sync.Mutex
	records []models.LiveHistory
}

func (m *memHistory) Create(_ context.Context, record models.LiveHistory) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return record.ID, nil
}

type fakeImages struct {
	saved []string // routes
}

func (f *fakeImages) Save(_ context.Context, upload *storage.Upload, route, owner, ownerType, uploaderID string) (*models.Image, error) {
	if upload == nil {
		return nil, storage.ErrNoFile
	}
	f.saved = append(f.saved, route)
	return &models.Image{ID: "img-" + owner, Name: upload.Filename, ImageURL: "https://cdn.test/images/" + route + "/" + upload.Filename, Owner: owner, OwnerType: ownerType, Uploader: uploaderID}, nil
}

type fakeScheduler struct {
	mu       sync.Mutex
	payloads []tasks.LiveExpiryPayload
	fireAt   []time.Time
}

func (f *fakeScheduler) ScheduleLiveExpiry(_ context.Context, p tasks.LiveExpiryPayload, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
	f.fireAt = append(f.fireAt, at)
	return nil
}

// openSet reports vendors open by id and echoes the stored location.
type openSet map[string]bool

func (o openSet) IsOpen(v *models.Vendor, _ time.Time) availability.Status {
	var loc *models.GeoPoint
	if v.Live != nil {
		l := v.Live.Location.Clone()
		loc = &l
	} else if v.Location != nil {
		l := v.Location.Clone()
		loc = &l
	}
	return availability.Status{Open: o[v.ID] || v.Live != nil, Location: loc}
}
