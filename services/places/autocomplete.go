// Package places proxies address lookups to the Google Places API so the API key
// never reaches clients.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"go.uber.org/zap"
)

const metersPerMile = 1609.344

var (
	ErrPlacesUnavailable = utils.NewAppError(http.StatusServiceUnavailable, "placesUnavailable", "Address search is not configured")
	ErrPlacesFailed      = utils.NewAppError(http.StatusBadGateway, "placesRequestFailed", "Address search failed, please try again later")
)

// AutocompleteQuery is one address autocomplete request. Center and RadiusMiles
// bias results toward an area; both are optional.
type AutocompleteQuery struct {
	Text         string
	Center       *models.GeoPoint
	RadiusMiles  *float64
	SessionToken string
}

// Prediction is one suggested address.
type Prediction struct {
	Description   string `json:"description"`
	PlaceID       string `json:"placeId"`
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

type PlacesService interface {
	Autocomplete(ctx context.Context, q AutocompleteQuery) ([]Prediction, error)
}

type DefaultPlacesService struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
	Logger  *zap.Logger
}

// autocompleteResponse mirrors the fields used from the Places response.
type autocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Predictions  []struct {
		Description          string `json:"description"`
		PlaceID              string `json:"place_id"`
		StructuredFormatting struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

func (s *DefaultPlacesService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultPlacesService) client() *http.Client {
	if s.Client == nil {
		return &http.Client{Timeout: 5 * time.Second}
	}
	return s.Client
}

// Autocomplete returns address predictions for q.Text. ZERO_RESULTS is an empty
// list, not an error.
func (s *DefaultPlacesService) Autocomplete(ctx context.Context, q AutocompleteQuery) ([]Prediction, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, utils.ErrValidation.WithDetails("q is required")
	}
	if s.APIKey == "" || s.BaseURL == "" {
		return nil, ErrPlacesUnavailable
	}

	params := url.Values{}
	params.Set("input", text)
	params.Set("types", "address")
	params.Set("key", s.APIKey)
	if q.Center != nil && q.Center.Valid() {
		params.Set("location", fmt.Sprintf("%s,%s",
			strconv.FormatFloat(q.Center.Lat(), 'f', -1, 64),
			strconv.FormatFloat(q.Center.Lon(), 'f', -1, 64)))
		if q.RadiusMiles != nil {
			params.Set("radius", strconv.FormatFloat(*q.RadiusMiles*metersPerMile, 'f', 0, 64))
		}
	}
	if q.SessionToken != "" {
		params.Set("sessiontoken", q.SessionToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build autocomplete request: %w", err)
	}
	resp, err := s.client().Do(req)
	if err != nil {
		s.logger().Error("Autocomplete request failed", zap.Error(err))
		return nil, ErrPlacesFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger().Error("Autocomplete returned non-200", zap.Int("status", resp.StatusCode))
		return nil, ErrPlacesFailed
	}
	var body autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		s.logger().Error("Failed to decode autocomplete response", zap.Error(err))
		return nil, ErrPlacesFailed
	}

	switch body.Status {
	case "OK", "ZERO_RESULTS":
	default:
		s.logger().Error("Autocomplete rejected",
			zap.String("status", body.Status),
			zap.String("message", body.ErrorMessage),
		)
		return nil, ErrPlacesFailed
	}

	out := make([]Prediction, 0, len(body.Predictions))
	for _, p := range body.Predictions {
		out = append(out, Prediction{
			Description:   p.Description,
			PlaceID:       p.PlaceID,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return out, nil
}
