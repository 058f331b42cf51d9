package maps

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/cache"
	"addressbridge_backend/platform/config"
	"addressbridge_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	// minQueryLength is the shortest query forwarded to the provider;
	// anything shorter short-circuits to an empty suggestion list.
	minQueryLength = 2

	// maxSuggestions bounds the response size regardless of how many
	// candidates the provider returns.
	maxSuggestions = 8
)

// Service exposes place autocomplete and geocoding over the Google Maps
// web APIs. The API key is validated per call, never at construction.
type Service struct {
	client *Client
	cfg    config.MapsConfig
	cache  *cache.Cache
	log    *logger.Logger
	group  singleflight.Group
}

// NewService creates the maps service. cache may be nil (disabled).
func NewService(client *Client, cfg config.MapsConfig, responseCache *cache.Cache, log *logger.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		cache:  responseCache,
		log:    log,
	}
}

func (s *Service) apiKey() (string, error) {
	key := s.cfg.GetMapsAPIKey()
	if key == "" {
		return "", apperr.Internal("GOOGLE_MAPS_API_KEY is not configured")
	}
	return key, nil
}

// Suggest returns up to maxSuggestions place candidates for a partial query.
// Queries shorter than two characters return an empty list without touching
// the provider. The session token is opaque and passed through unchanged.
func (s *Service) Suggest(ctx context.Context, query, sessionToken string) ([]PlaceCandidate, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < minQueryLength {
		return []PlaceCandidate{}, nil
	}

	key, err := s.apiKey()
	if err != nil {
		return nil, err
	}

	cacheKey := "autocomplete:" + trimmed
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var candidates []PlaceCandidate
		if err := json.Unmarshal([]byte(cached), &candidates); err == nil {
			return candidates, nil
		}
	}

	// Concurrent identical lookups share one provider call.
	result, err, _ := s.group.Do(trimmed+"|"+sessionToken, func() (interface{}, error) {
		return s.suggest(ctx, key, trimmed, sessionToken)
	})
	if err != nil {
		return nil, err
	}

	candidates := result.([]PlaceCandidate)
	if encoded, err := json.Marshal(candidates); err == nil {
		s.cache.Set(ctx, cacheKey, string(encoded))
	}
	return candidates, nil
}

func (s *Service) suggest(ctx context.Context, apiKey, query, sessionToken string) ([]PlaceCandidate, error) {
	payload, err := s.client.Autocomplete(ctx, apiKey, query, sessionToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "address search request failed", err)
	}

	// "no results" is an empty list, not an error.
	if payload.Status == statusZeroResults {
		return []PlaceCandidate{}, nil
	}
	if payload.Status != statusOK {
		message := payload.ErrorMessage
		if message == "" {
			message = "address search provider error: " + payload.Status
		}
		s.log.Error("places autocomplete error", "status", payload.Status, "message", payload.ErrorMessage)
		return nil, apperr.Unavailable(message)
	}

	candidates := make([]PlaceCandidate, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		// Candidates without an identifier or description are unusable.
		if p.PlaceID == "" || p.Description == "" {
			continue
		}

		mainText := p.StructuredFormatting.MainText
		if mainText == "" {
			mainText = p.Description
		}

		candidates = append(candidates, PlaceCandidate{
			Description:   p.Description,
			PlaceID:       p.PlaceID,
			MainText:      mainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
		if len(candidates) == maxSuggestions {
			break
		}
	}

	return candidates, nil
}

// Resolve looks up the full address and coordinates for a place id.
// When the forward lookup omits a postal code, a reverse lookup on the
// resolved coordinates backfills it; some address types (landmarks in
// particular) only carry postal codes on reverse geocoding.
func (s *Service) Resolve(ctx context.Context, placeID string) (*GeocodeResult, error) {
	key, err := s.apiKey()
	if err != nil {
		return nil, err
	}

	cacheKey := "geocode:" + placeID
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var result GeocodeResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	payload, err := s.client.GeocodePlace(ctx, key, placeID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "geocoding request failed", err)
	}
	if payload.Status != statusOK || len(payload.Results) == 0 {
		return nil, apperr.NotFound("no results found for this place_id")
	}

	entry := payload.Results[0]
	result := &GeocodeResult{
		FormattedAddress: entry.FormattedAddress,
		PlaceID:          entry.PlaceID,
		Latitude:         entry.Geometry.Location.Lat,
		Longitude:        entry.Geometry.Location.Lng,
	}
	if result.PlaceID == "" {
		result.PlaceID = placeID
	}
	extractComponents(entry.AddressComponents, result)

	if result.PostalCode == nil {
		s.backfillPostalCode(ctx, key, result)
	}

	if encoded, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, cacheKey, string(encoded))
	}
	return result, nil
}

// Forward geocodes a free-text address to coordinates. Used by the
// conversion pipeline for optional enrichment.
func (s *Service) Forward(ctx context.Context, address string) (lat, lng float64, err error) {
	key, err := s.apiKey()
	if err != nil {
		return 0, 0, err
	}

	payload, err := s.client.GeocodeAddress(ctx, key, address)
	if err != nil {
		return 0, 0, apperr.Wrap(apperr.KindUnavailable, "geocoding request failed", err)
	}
	if payload.Status != statusOK || len(payload.Results) == 0 {
		return 0, 0, apperr.NotFound("address could not be geocoded")
	}

	location := payload.Results[0].Geometry.Location
	return location.Lat, location.Lng, nil
}

func (s *Service) backfillPostalCode(ctx context.Context, apiKey string, result *GeocodeResult) {
	payload, err := s.client.ReverseGeocode(ctx, apiKey, result.Latitude, result.Longitude)
	if err != nil {
		s.log.Warn("postal code backfill failed", "place_id", result.PlaceID, "error", err)
		return
	}
	if payload.Status != statusOK {
		return
	}

	for _, entry := range payload.Results {
		for _, component := range entry.AddressComponents {
			if hasType(component.Types, "postal_code") && component.LongName != "" {
				code := component.LongName
				result.PostalCode = &code
				return
			}
		}
	}
}

// extractComponents takes the first matching component per category.
// Locality falls back to administrative_area_level_1 for countries where
// the provider's taxonomy has no city-level subdivision.
func extractComponents(components []googleAddressComponent, result *GeocodeResult) {
	var adminArea *string

	for _, component := range components {
		switch {
		case hasType(component.Types, "country"):
			if result.Country == nil {
				name := component.LongName
				result.Country = &name
			}
		case hasType(component.Types, "locality"):
			if result.Locality == nil {
				name := component.LongName
				result.Locality = &name
			}
		case hasType(component.Types, "administrative_area_level_1"):
			if adminArea == nil {
				name := component.LongName
				adminArea = &name
			}
		case hasType(component.Types, "route"):
			if result.Route == nil {
				name := component.LongName
				result.Route = &name
			}
		case hasType(component.Types, "postal_code"):
			if result.PostalCode == nil {
				name := component.LongName
				result.PostalCode = &name
			}
		}
	}

	if result.Locality == nil {
		result.Locality = adminArea
	}
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
