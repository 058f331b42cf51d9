package convert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"addressbridge_backend/platform/ai/gemini"
	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/logger"
)

type fakeGenerator struct {
	responses []string
	err       error
	calls     int
	requests  []gemini.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req gemini.Request) (string, error) {
	f.requests = append(f.requests, req)
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

type fakeGeocoder struct {
	lat, lng float64
	err      error
	calls    int
}

func (f *fakeGeocoder) Forward(_ context.Context, _ string) (float64, float64, error) {
	f.calls++
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.lat, f.lng, nil
}

func newTestService(gen Generator, geo Geocoder) *Service {
	return NewService(gen, geo, logger.New("development"))
}

const okFormatterJSON = `{
  "status": "OK",
  "formatted_address": "near Gangnam Station, Gangnam-gu, Seoul, SOUTH KOREA",
  "country": "South Korea",
  "confidence": 0.82,
  "notes": null
}`

func TestNormalizeEmptyInputFailsBeforeProviderCall(t *testing.T) {
	gen := &fakeGenerator{responses: []string{okFormatterJSON}}
	svc := newTestService(gen, nil)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := svc.Normalize(context.Background(), input)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("input %q: expected validation error, got %v", input, err)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", gen.calls)
	}
}

func TestNormalizeSuccessWithEnrichment(t *testing.T) {
	gen := &fakeGenerator{responses: []string{okFormatterJSON}}
	geo := &fakeGeocoder{lat: 37.498, lng: 127.0276}
	svc := newTestService(gen, geo)

	result, err := svc.Normalize(context.Background(), "강남역")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != StatusOK {
		t.Fatalf("expected OK, got %s", result.Status)
	}
	if !strings.Contains(result.FormattedAddress, "Gangnam") || !strings.Contains(result.FormattedAddress, "Seoul") {
		t.Fatalf("unexpected formatted address %q", result.FormattedAddress)
	}
	if result.Confidence == nil || *result.Confidence < 0.70 {
		t.Fatalf("expected landmark-tier confidence, got %v", result.Confidence)
	}
	if result.Latitude == nil || *result.Latitude != 37.498 {
		t.Fatalf("expected enriched latitude, got %v", result.Latitude)
	}
	if result.Longitude == nil || *result.Longitude != 127.0276 {
		t.Fatalf("expected enriched longitude, got %v", result.Longitude)
	}
	if geo.calls != 1 {
		t.Fatalf("expected one geocode call, got %d", geo.calls)
	}
}

func TestNormalizeGeocodeFailureIsSwallowed(t *testing.T) {
	gen := &fakeGenerator{responses: []string{okFormatterJSON}}
	geo := &fakeGeocoder{err: errors.New("upstream api error: 503")}
	svc := newTestService(gen, geo)

	result, err := svc.Normalize(context.Background(), "강남역")
	if err != nil {
		t.Fatalf("enrichment failure must not fail the conversion: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("expected OK, got %s", result.Status)
	}
	if result.Latitude != nil || result.Longitude != nil {
		t.Fatal("expected no coordinates on failed enrichment")
	}
}

func TestNormalizeUnsupportedCarriesNoCoordinates(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"status": "UNSUPPORTED_ADDRESS", "reason": "no identifiable place name"}`,
	}}
	geo := &fakeGeocoder{lat: 1, lng: 2}
	svc := newTestService(gen, geo)

	result, err := svc.Normalize(context.Background(), "asdkjasd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusUnsupported {
		t.Fatalf("expected UNSUPPORTED_ADDRESS, got %s", result.Status)
	}
	if result.Reason == "" {
		t.Fatal("expected a reason")
	}
	if result.Latitude != nil || result.Longitude != nil {
		t.Fatal("unsupported results must not carry coordinates")
	}
	if geo.calls != 0 {
		t.Fatal("unsupported results must not be geocoded")
	}
}

func TestNormalizeStripsMarkdownFences(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"```json\n" + okFormatterJSON + "\n```"}}
	svc := newTestService(gen, nil)

	result, err := svc.Normalize(context.Background(), "강남역")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("expected OK after fence stripping, got %s", result.Status)
	}
}

func TestNormalizeUnparseableOutputDegradesToUnsupported(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"I think this address is in Seoul."}}
	svc := newTestService(gen, nil)

	result, err := svc.Normalize(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("parse failures must degrade, not error: %v", err)
	}
	if result.Status != StatusUnsupported {
		t.Fatalf("expected UNSUPPORTED_ADDRESS, got %s", result.Status)
	}
}

func TestNormalizeOKWithoutAddressDegradesToUnsupported(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"status": "OK", "formatted_address": "  "}`}}
	svc := newTestService(gen, nil)

	result, err := svc.Normalize(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusUnsupported {
		t.Fatalf("expected degraded result, got %s", result.Status)
	}
}

func TestNormalizeClampsConfidence(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"status": "OK", "formatted_address": "Seoul, SOUTH KOREA", "confidence": 1.7}`,
	}}
	svc := newTestService(gen, nil)

	result, err := svc.Normalize(context.Background(), "seoul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence == nil || *result.Confidence != 1.0 {
		t.Fatalf("expected confidence clamped to 1.0, got %v", result.Confidence)
	}
}

func TestNormalizeMissingCredentialIsConfigurationError(t *testing.T) {
	gen := &fakeGenerator{err: gemini.ErrMissingAPIKey}
	svc := newTestService(gen, nil)

	_, err := svc.Normalize(context.Background(), "seoul")
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected descriptive message, got %q", err.Error())
	}
}

func TestNormalizeProviderFailureIsUnavailable(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("gemini api error after 3 attempts: timeout")}
	svc := newTestService(gen, nil)

	_, err := svc.Normalize(context.Background(), "seoul")
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestReformatTwoStagePipeline(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"country": "South Korea", "city": "Seoul", "district": "Gangnam-gu", "street": "Teheran-ro", "building_number": "152", "postal_code": "06236"}`,
		`"152 Teheran-ro, Gangnam-gu, Seoul 06236, South Korea"`,
	}}
	svc := newTestService(gen, nil)

	result, err := svc.Reformat(context.Background(), "서울 강남구 테헤란로 152", "English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Stage two output had enclosing quotes; they must be stripped.
	if result.ConvertedAddress != "152 Teheran-ro, Gangnam-gu, Seoul 06236, South Korea" {
		t.Fatalf("unexpected converted address %q", result.ConvertedAddress)
	}
	if result.StructuredAddress.City != "Seoul" {
		t.Fatalf("unexpected structured city %q", result.StructuredAddress.City)
	}
	// Missing fields default to empty strings.
	if result.StructuredAddress.StateOrProvince != "" {
		t.Fatalf("expected empty state, got %q", result.StructuredAddress.StateOrProvince)
	}
	if gen.calls != 2 {
		t.Fatalf("expected two provider calls, got %d", gen.calls)
	}
	// Stage one asks for JSON, stage two for plain text.
	if !gen.requests[0].JSON || gen.requests[1].JSON {
		t.Fatal("unexpected response format flags on pipeline stages")
	}
}

func TestReformatRequiresTargetLanguage(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"{}"}}
	svc := newTestService(gen, nil)

	_, err := svc.Reformat(context.Background(), "somewhere", "  ")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatal("expected no provider calls")
	}
}

func TestReformatUnparseableStructureFails(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"not json"}}
	svc := newTestService(gen, nil)

	_, err := svc.Reformat(context.Background(), "somewhere", "English")
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestStripQuotesHandlesNestedQuoting(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"abc"`, "abc"},
		{`'abc'`, "abc"},
		{`"'abc'"`, "abc"},
		{`abc`, "abc"},
		{`"a" and "b"`, `a" and "b`},
	}
	for _, tt := range tests {
		if got := stripQuotes(tt.input); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
