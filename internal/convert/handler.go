package convert

import (
	"net/http"
	"strings"

	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// maxLabelLength bounds QR payloads well under the symbol capacity.
const maxLabelLength = 1000

// Handler exposes the address conversion endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Convert handles POST /api/v1/convert. Every failure path resolves to a
// well-formed ConversionResult-shaped body so the client never has to
// special-case transport errors.
func (h *Handler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ConversionResult{
			Status: StatusUnsupported,
			Reason: "invalid JSON format in request body",
		})
		return
	}

	result, err := h.svc.Normalize(c.Request.Context(), req.Address)
	if err != nil {
		status := http.StatusInternalServerError
		reason := "an unexpected error occurred during address conversion"
		if domainErr, ok := err.(*apperr.Error); ok {
			status = domainErr.HTTPStatus()
			reason = domainErr.Message
		}
		c.JSON(status, ConversionResult{Status: StatusUnsupported, Reason: reason})
		return
	}

	httpkit.OK(c, result)
}

// ConvertAddress handles POST /api/v1/convert-address (two-stage pipeline).
func (h *Handler) ConvertAddress(c *gin.Context) {
	var req ReformatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid JSON format in request body", nil)
		return
	}

	result, err := h.svc.Reformat(c.Request.Context(), req.Address, req.TargetLanguage)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Label handles GET /api/v1/convert/label?text=... and renders a QR code
// PNG of a formatted address for printable shipping labels.
func (h *Handler) Label(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		httpkit.Error(c, http.StatusBadRequest, "text query parameter is required", nil)
		return
	}
	if len(text) > maxLabelLength {
		httpkit.Error(c, http.StatusBadRequest, "text is too long for a label", nil)
		return
	}

	png, err := qrcode.Encode(text, qrcode.Medium, 512)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render label", nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
