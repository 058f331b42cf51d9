package maps

import (
	"net/http"

	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the autocomplete and geocode endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Suggest handles POST /api/v1/autocomplete.
// Failure keeps the response shape stable: predictions stays an array.
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, SuggestResponse{
			Predictions: []PlaceCandidate{},
			Error:       "invalid JSON body",
		})
		return
	}

	candidates, err := h.svc.Suggest(c.Request.Context(), req.Query, req.SessionToken)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to fetch autocomplete results"
		if domainErr, ok := err.(*apperr.Error); ok {
			status = domainErr.HTTPStatus()
			message = domainErr.Message
		}
		c.JSON(status, SuggestResponse{Predictions: []PlaceCandidate{}, Error: message})
		return
	}

	httpkit.OK(c, SuggestResponse{Predictions: candidates})
}

// Geocode handles POST /api/v1/geocode.
func (h *Handler) Geocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "place_id is required", nil)
		return
	}

	result, err := h.svc.Resolve(c.Request.Context(), req.PlaceID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
