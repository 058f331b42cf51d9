package convert

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"addressbridge_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func newTestRouter(gen Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHandler(NewService(gen, nil, logger.New("development")))
	engine.POST("/convert", h.Convert)
	engine.POST("/convert-address", h.ConvertAddress)
	engine.GET("/convert/label", h.Label)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestConvertInvalidJSONKeepsResultShape(t *testing.T) {
	engine := newTestRouter(&fakeGenerator{responses: []string{okFormatterJSON}})

	rec := doRequest(t, engine, http.MethodPost, "/convert", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var result ConversionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not a ConversionResult: %v", err)
	}
	if result.Status != StatusUnsupported || result.Reason == "" {
		t.Fatalf("unexpected failure shape: %+v", result)
	}
}

func TestConvertEmptyAddressIs400(t *testing.T) {
	engine := newTestRouter(&fakeGenerator{responses: []string{okFormatterJSON}})

	rec := doRequest(t, engine, http.MethodPost, "/convert", `{"address": "  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConvertSuccess(t *testing.T) {
	engine := newTestRouter(&fakeGenerator{responses: []string{okFormatterJSON}})

	rec := doRequest(t, engine, http.MethodPost, "/convert", `{"address": "강남역"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result ConversionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Status != StatusOK || result.FormattedAddress == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestConvertAddressRequiresTargetLanguage(t *testing.T) {
	engine := newTestRouter(&fakeGenerator{responses: []string{"{}"}})

	rec := doRequest(t, engine, http.MethodPost, "/convert-address", `{"address": "somewhere"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLabelRendersPNG(t *testing.T) {
	engine := newTestRouter(&fakeGenerator{responses: []string{okFormatterJSON}})

	rec := doRequest(t, engine, http.MethodGet, "/convert/label?text=152+Teheran-ro,+Seoul", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected PNG bytes")
	}
}

func TestLabelRequiresText(t *testing.T) {
	engine := newTestRouter(&fakeGenerator{responses: []string{okFormatterJSON}})

	rec := doRequest(t, engine, http.MethodGet, "/convert/label", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
