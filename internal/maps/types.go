package maps

// SuggestRequest is the autocomplete request body.
type SuggestRequest struct {
	Query        string `json:"query"`
	SessionToken string `json:"sessionToken"`
}

// SuggestResponse wraps the candidate list returned to the frontend.
type SuggestResponse struct {
	Predictions []PlaceCandidate `json:"predictions"`
	Error       string           `json:"error,omitempty"`
}

// PlaceCandidate is one autocomplete suggestion: an opaque handle plus
// display text. A user selection turns it into a geocode lookup.
type PlaceCandidate struct {
	Description   string `json:"description"`
	PlaceID       string `json:"place_id"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// GeocodeRequest is the geocode request body.
type GeocodeRequest struct {
	PlaceID string `json:"place_id" binding:"required"`
}

// GeocodeResult is the resolved location for a place identifier. All
// fields except the address, place id, and coordinates may be null.
type GeocodeResult struct {
	FormattedAddress string  `json:"formatted_address"`
	PlaceID          string  `json:"place_id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Country          *string `json:"country"`
	Locality         *string `json:"locality"`
	Route            *string `json:"route"`
	PostalCode       *string `json:"postal_code"`
}

// =============================================================================
// Google Maps web API payload mirrors
// =============================================================================

type googleStructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

type googlePrediction struct {
	Description          string                     `json:"description"`
	PlaceID              string                     `json:"place_id"`
	StructuredFormatting googleStructuredFormatting `json:"structured_formatting"`
}

// googleAutocompleteResponse mirrors the relevant parts of the Places
// Autocomplete payload.
type googleAutocompleteResponse struct {
	Status       string             `json:"status"`
	ErrorMessage string             `json:"error_message"`
	Predictions  []googlePrediction `json:"predictions"`
}

type googleAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleGeocodeEntry struct {
	FormattedAddress  string                   `json:"formatted_address"`
	PlaceID           string                   `json:"place_id"`
	Geometry          googleGeometry           `json:"geometry"`
	AddressComponents []googleAddressComponent `json:"address_components"`
}

// googleGeocodeResponse mirrors the relevant parts of the Geocoding payload.
type googleGeocodeResponse struct {
	Status       string               `json:"status"`
	ErrorMessage string               `json:"error_message"`
	Results      []googleGeocodeEntry `json:"results"`
}
