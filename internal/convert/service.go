package convert

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"addressbridge_backend/platform/ai/gemini"
	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/logger"
)

const (
	formatterTemperature = 0.2
	structureTemperature = 0.3
	maxResponseTokens    = 500
)

// Generator abstracts the text-generation provider so tests can fake it.
// *gemini.Client satisfies this.
type Generator interface {
	Generate(ctx context.Context, req gemini.Request) (string, error)
}

// Geocoder resolves a free-text address to coordinates. Used only for
// optional enrichment of successful conversions.
type Geocoder interface {
	Forward(ctx context.Context, address string) (lat, lng float64, err error)
}

// Service runs the address normalization pipeline.
type Service struct {
	generator Generator
	geocoder  Geocoder
	log       *logger.Logger
}

// NewService creates the conversion service. geocoder may be nil, in which
// case results are returned without coordinate enrichment.
func NewService(generator Generator, geocoder Geocoder, log *logger.Logger) *Service {
	return &Service{
		generator: generator,
		geocoder:  geocoder,
		log:       log,
	}
}

// Normalize converts a free-text address in any language into an English,
// logistics-usable address with a confidence score. On success the result
// is optionally enriched with coordinates; enrichment failures are
// swallowed because coordinates are not core to the conversion.
func (s *Service) Normalize(ctx context.Context, address string) (*ConversionResult, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperr.Validation("address is required and must be a non-empty string")
	}

	raw, err := s.generator.Generate(ctx, gemini.Request{
		System:      formatterSystemPrompt,
		Prompt:      trimmed,
		Temperature: formatterTemperature,
		JSON:        true,
		MaxTokens:   maxResponseTokens,
	})
	if err != nil {
		return nil, s.providerError(err, "address formatter")
	}

	result := s.parseFormatterResponse(raw)

	if result.Status == StatusOK {
		s.enrichCoordinates(ctx, result)
	} else {
		// Terminal: unsupported results never carry coordinates.
		result.Latitude = nil
		result.Longitude = nil
	}

	return result, nil
}

// parseFormatterResponse decodes the model output. Unreadable output
// degrades to an unsupported result instead of surfacing a parse error.
func (s *Service) parseFormatterResponse(raw string) *ConversionResult {
	cleaned := stripCodeFences(raw)

	var result ConversionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		s.log.Error("formatter returned unparseable output", "error", err, "output", raw)
		return &ConversionResult{
			Status: StatusUnsupported,
			Reason: "address formatter returned an unreadable response",
		}
	}

	switch result.Status {
	case StatusOK:
		if strings.TrimSpace(result.FormattedAddress) == "" {
			s.log.Error("formatter reported OK without a formatted address", "output", raw)
			return &ConversionResult{
				Status: StatusUnsupported,
				Reason: "address formatter returned an incomplete response",
			}
		}
		clampConfidence(&result)
	case StatusUnsupported:
		if result.Reason == "" {
			result.Reason = "the input does not contain an identifiable place"
		}
	default:
		s.log.Error("formatter returned unknown status", "status", result.Status)
		return &ConversionResult{
			Status: StatusUnsupported,
			Reason: "address formatter returned an invalid status",
		}
	}

	return &result
}

func (s *Service) enrichCoordinates(ctx context.Context, result *ConversionResult) {
	if s.geocoder == nil {
		return
	}
	lat, lng, err := s.geocoder.Forward(ctx, result.FormattedAddress)
	if err != nil {
		// Enrichment only; the conversion result stands on its own.
		s.log.Warn("coordinate enrichment failed", "address", result.FormattedAddress, "error", err)
		return
	}
	result.Latitude = &lat
	result.Longitude = &lng
}

// Reformat runs the two-stage structure-then-reformat pipeline: stage one
// extracts a structured record without translating, stage two renders it
// in the target language following that country's addressing convention.
func (s *Service) Reformat(ctx context.Context, address, targetLanguage string) (*ReformatResponse, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperr.Validation("address is required and must be a non-empty string")
	}
	if strings.TrimSpace(targetLanguage) == "" {
		return nil, apperr.Validation("targetLanguage is required")
	}

	structured, err := s.structure(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	converted, err := s.render(ctx, structured, targetLanguage)
	if err != nil {
		return nil, err
	}

	return &ReformatResponse{
		ConvertedAddress:  converted,
		StructuredAddress: *structured,
	}, nil
}

func (s *Service) structure(ctx context.Context, address string) (*StructuredAddress, error) {
	raw, err := s.generator.Generate(ctx, gemini.Request{
		System:      structureSystemPrompt,
		Prompt:      address,
		Temperature: structureTemperature,
		JSON:        true,
		MaxTokens:   maxResponseTokens,
	})
	if err != nil {
		return nil, s.providerError(err, "address structuring")
	}

	var structured StructuredAddress
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &structured); err != nil {
		s.log.Error("structuring stage returned unparseable output", "error", err, "output", raw)
		return nil, apperr.Internal("address structuring failed: the provider returned an unreadable response")
	}
	return &structured, nil
}

func (s *Service) render(ctx context.Context, structured *StructuredAddress, targetLanguage string) (string, error) {
	encoded, err := json.MarshalIndent(structured, "", "  ")
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to encode structured address", err)
	}

	raw, err := s.generator.Generate(ctx, gemini.Request{
		System:      reformatSystemPrompt(targetLanguage),
		Prompt:      string(encoded),
		Temperature: structureTemperature,
		MaxTokens:   maxResponseTokens,
	})
	if err != nil {
		return "", s.providerError(err, "address reformatting")
	}

	converted := strings.TrimSpace(stripQuotes(raw))
	if converted == "" {
		return "", apperr.Internal("address reformatting returned an empty result")
	}
	return converted, nil
}

func (s *Service) providerError(err error, operation string) error {
	if errors.Is(err, gemini.ErrMissingAPIKey) {
		return apperr.Internal("GEMINI_API_KEY is not configured; set it in the environment")
	}
	s.log.ProviderError("gemini", operation, err)
	return apperr.Wrap(apperr.KindUnavailable, operation+" failed", err)
}

// clampConfidence keeps a model-reported confidence inside [0,1]. The
// value is advisory only; out-of-range values are clamped, not rejected.
func clampConfidence(result *ConversionResult) {
	if result.Confidence == nil {
		return
	}
	if *result.Confidence < 0 {
		zero := 0.0
		result.Confidence = &zero
	} else if *result.Confidence > 1 {
		one := 1.0
		result.Confidence = &one
	}
}

// stripCodeFences removes a wrapping markdown code block, which some
// models emit despite being told not to.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	return strings.TrimSpace(cleaned)
}

// stripQuotes removes enclosing quotation characters from a plain-text
// stage-two response.
func stripQuotes(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for len(cleaned) >= 2 {
		first, last := cleaned[0], cleaned[len(cleaned)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
			continue
		}
		break
	}
	return cleaned
}
