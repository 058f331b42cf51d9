package blog

import (
	"net/http"

	"addressbridge_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the blog endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetPost handles GET /api/v1/blog/post?slug=...
func (h *Handler) GetPost(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		httpkit.Error(c, http.StatusBadRequest, "slug parameter required", nil)
		return
	}

	post, err := h.svc.Get(slug)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, post)
}

// ListPosts handles GET /api/v1/blog/posts
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.svc.List()
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"posts": posts})
}

// CreatePost handles POST /api/v1/blog/posts
func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "title and content are required", nil)
		return
	}

	slug, err := h.svc.Create(req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, CreatePostResponse{Slug: slug, Success: true})
}

// DeletePost handles DELETE /api/v1/blog/posts/:slug
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.svc.Delete(c.Param("slug")); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"success": true})
}
