// Command seed fills a development database with vendors spread around a point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/config"
	"github.com/RobbieBendick/curb-companion-backend/database"
	"github.com/RobbieBendick/curb-companion-backend/database/repository"
	tagRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/tag"
	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var tagTitles = []string{"bbq", "tacos", "coffee", "dessert", "vegan", "burgers"}

// schedules are weekly opening patterns; times are UTC.
var schedules = []struct {
	startHour, endHour int
	rule               string
}{
	{11, 14, "RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"},
	{17, 22, "RRULE:FREQ=WEEKLY;BYDAY=FR,SA"},
	{20, 2, "RRULE:FREQ=DAILY"},
	{8, 11, "RRULE:FREQ=WEEKLY;BYDAY=SA,SU"},
}

func main() {
	lat := flag.Float64("lat", 40.7128, "center latitude")
	lon := flag.Float64("lon", -74.0060, "center longitude")
	count := flag.Int("count", 30, "number of vendors")
	maxMiles := flag.Float64("radius", 10, "furthest vendor distance in miles")
	flag.Parse()

	config.LoadConfig()
	database.InitDB()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos := repository.NewMongoRepositories()

	owner, err := seedOwner(ctx, repos.Users)
	if err != nil {
		log.Fatalf("failed to seed owner: %v", err)
	}
	catalogue, err := seedTags(ctx, repos.Tags)
	if err != nil {
		log.Fatalf("failed to seed tags: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	for i := 0; i < *count; i++ {
		v := buildVendor(rng, i, *count, *lat, *lon, *maxMiles, owner.ID, catalogue, now)
		if err := repos.Vendors.Create(ctx, v); err != nil {
			log.Fatalf("failed to insert vendor %s: %v", v.Title, err)
		}
	}
	fmt.Printf("Inserted %d vendors owned by %s\n", *count, owner.Email)
}

func seedOwner(ctx context.Context, users userRepo.UserRepository) (*models.User, error) {
	const email = "owner@example.com"
	if existing, err := users.GetByEmail(ctx, email); err == nil {
		return existing, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("$Password1234"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:             uuid.New().String(),
		Email:          email,
		PasswordHash:   string(hashed),
		FirstName:      "Seed",
		Surname:        "Owner",
		Roles:          []string{models.RoleVendorOwner},
		Favorites:      []string{},
		SavedLocations: []models.GeoPoint{},
		Images:         []models.Image{},
		CreatedAt:      time.Now().UTC(),
	}
	return u, users.Create(ctx, u)
}

func seedTags(ctx context.Context, tags tagRepo.TagRepository) ([]models.Tag, error) {
	for _, title := range tagTitles {
		err := tags.Create(ctx, &models.Tag{ID: uuid.New().String(), Title: title})
		if err != nil && !errors.Is(err, tagRepo.ErrDuplicate) {
			return nil, err
		}
	}
	return tags.GetByTitles(ctx, tagTitles)
}

// buildVendor places vendor i at a linearly decreasing distance from the center,
// in a random direction.
func buildVendor(rng *rand.Rand, i, total int, lat, lon, maxMiles float64, ownerID string, catalogue []models.Tag, now time.Time) *models.Vendor {
	const minMiles = 0.05
	spacing := 0.0
	if total > 1 {
		spacing = (maxMiles - minMiles) / float64(total-1)
	}
	miles := maxMiles - spacing*float64(i)
	angle := rng.Float64() * 2 * math.Pi

	// One degree of latitude is EarthRadiusMiles*pi/180 miles; longitude shrinks with cos(lat).
	milesPerDegree := utils.EarthRadiusMiles * math.Pi / 180
	dLat := miles * math.Sin(angle) / milesPerDegree
	dLon := miles * math.Cos(angle) / (milesPerDegree * math.Cos(lat*math.Pi/180))
	home := models.NewGeoPoint(lon+dLon, lat+dLat)

	id := uuid.New().String()
	sched := schedules[rng.Intn(len(schedules))]
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tag := catalogue[rng.Intn(len(catalogue))]

	return &models.Vendor{
		ID:          id,
		Title:       fmt.Sprintf("%s Truck %d", tag.Title, i+1),
		OwnerID:     ownerID,
		Email:       fmt.Sprintf("truck%d@example.com", i+1),
		Images:      []models.Image{},
		IsCatering:  rng.Intn(3) == 0,
		Description: "Seeded vendor",
		Tags:        []models.Tag{tag},
		Location:    &home,
		Reviews:     []models.Review{},
		Menu: []models.MenuItem{{
			ID:        uuid.New().String(),
			VendorID:  id,
			Title:     "House special",
			Price:     float64(8 + rng.Intn(8)),
			Type:      models.MenuItemEntree,
			CreatedAt: now,
		}},
		Schedule: []models.Occurrence{{
			ID:         uuid.New().String(),
			Start:      day.Add(time.Duration(sched.startHour) * time.Hour),
			End:        day.Add(time.Duration(sched.endHour) * time.Hour),
			Recurrence: []string{sched.rule},
		}},
		LiveHistory: []string{},
		CreatedAt:   now.Add(-time.Duration(i) * time.Hour),
	}
}
