package vendors

import (
	"strings"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
)

// appendMenu adds items whose title is not already on the menu. Titles compare
// case-insensitively.
func appendMenu(menu []models.MenuItem, vendorID string, items []models.MenuItemInput, now time.Time) ([]models.MenuItem, error) {
	out := append([]models.MenuItem{}, menu...)
	present := make(map[string]bool, len(out))
	for _, m := range out {
		present[strings.ToLower(m.Title)] = true
	}
	for _, in := range items {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			return nil, utils.ErrValidation.WithDetails("menu item title is required")
		}
		if in.Price < 0 {
			return nil, utils.ErrValidation.WithDetails("menu item price must not be negative")
		}
		if in.Type != "" && !in.Type.Valid() {
			return nil, utils.ErrValidation.WithDetails("unknown menu item type " + string(in.Type))
		}
		key := strings.ToLower(title)
		if present[key] {
			continue
		}
		present[key] = true
		out = append(out, models.MenuItem{
			ID:          uuid.New().String(),
			VendorID:    vendorID,
			Title:       title,
			Description: in.Description,
			Price:       in.Price,
			Type:        in.Type,
			CreatedAt:   now,
		})
	}
	return out, nil
}
