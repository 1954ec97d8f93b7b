package tag

import (
	"context"
	"strings"
	"testing"

	tagRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/tag"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTags struct {
	tags map[string]*models.Tag
}

func (m *memTags) GetAll(context.Context) ([]models.Tag, error) {
	out := []models.Tag{}
	for _, t := range m.tags {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTags) GetByID(_ context.Context, id string) (*models.Tag, error) {
	t, ok := m.tags[id]
	if !ok {
		return nil, tagRepo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTags) GetByTitles(context.Context, []string) ([]models.Tag, error) { return nil, nil }

func (m *memTags) Create(_ context.Context, t *models.Tag) error {
	for _, existing := range m.tags {
		if existing.Title == t.Title {
			return tagRepo.ErrDuplicate
		}
	}
	cp := *t
	m.tags[t.ID] = &cp
	return nil
}

func (m *memTags) SetImage(_ context.Context, id string, image models.Image) error {
	t, ok := m.tags[id]
	if !ok {
		return tagRepo.ErrNotFound
	}
	t.Image = &image
	return nil
}

type fakeImages struct {
	route string
}

func (f *fakeImages) Save(_ context.Context, upload *storage.Upload, route, owner, ownerType, uploader string) (*models.Image, error) {
	if upload == nil {
		return nil, storage.ErrNoFile
	}
	f.route = route
	return &models.Image{ID: "img", Owner: owner, OwnerType: ownerType, Uploader: uploader}, nil
}

var (
	admin = &models.User{ID: "admin", Roles: []string{models.RoleAdmin}}
	user  = &models.User{ID: "user"}
)

func TestCreateTag(t *testing.T) {
	repo := &memTags{tags: map[string]*models.Tag{}}
	svc := &DefaultTagService{Repo: repo}
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, "  bbq ")
	require.NoError(t, err)
	assert.Equal(t, "bbq", created.Title)
	assert.NotEmpty(t, created.ID)

	_, err = svc.Create(ctx, admin, "bbq")
	assert.ErrorIs(t, err, ErrTagAlreadyExists)

	_, err = svc.Create(ctx, user, "tacos")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.Create(ctx, admin, " ")
	assert.ErrorIs(t, err, utils.ErrValidation)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUploadTagImage(t *testing.T) {
	repo := &memTags{tags: map[string]*models.Tag{"t1": {ID: "t1", Title: "tacos"}}}
	images := &fakeImages{}
	svc := &DefaultTagService{Repo: repo, Images: images}
	ctx := context.Background()
	up := &storage.Upload{Filename: "a.png", Size: 3, Body: strings.NewReader("png")}

	img, err := svc.UploadImage(ctx, admin, "t1", up)
	require.NoError(t, err)
	assert.Equal(t, "tags/t1", images.route)
	assert.Equal(t, models.ImageOwnerTag, img.OwnerType)
	require.NotNil(t, repo.tags["t1"].Image)

	_, err = svc.UploadImage(ctx, admin, "missing", up)
	assert.ErrorIs(t, err, ErrTagNotFound)

	_, err = svc.UploadImage(ctx, user, "t1", up)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
