package convert

// Conversion statuses reported by the formatter.
const (
	StatusOK          = "OK"
	StatusUnsupported = "UNSUPPORTED_ADDRESS"
)

// ConvertRequest is the body for the direct formatter endpoint.
type ConvertRequest struct {
	Address string `json:"address"`
}

// ConversionResult is the final output of the normalization pipeline.
// UNSUPPORTED_ADDRESS is terminal and never carries coordinates.
type ConversionResult struct {
	Status           string   `json:"status"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Country          *string  `json:"country,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	Reason           string   `json:"reason,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// ReformatRequest is the body for the two-stage target-language endpoint.
type ReformatRequest struct {
	Address        string `json:"address"`
	TargetLanguage string `json:"targetLanguage"`
}

// StructuredAddress is the intermediate record produced by the structuring
// stage. Unknown fields default to empty strings; nothing is translated yet.
type StructuredAddress struct {
	Country         string `json:"country"`
	StateOrProvince string `json:"state_or_province"`
	City            string `json:"city"`
	District        string `json:"district"`
	Street          string `json:"street"`
	BuildingNumber  string `json:"building_number"`
	PostalCode      string `json:"postal_code"`
}

// ReformatResponse is the two-stage endpoint's success shape.
type ReformatResponse struct {
	ConvertedAddress  string            `json:"convertedAddress"`
	StructuredAddress StructuredAddress `json:"structuredAddress"`
}
