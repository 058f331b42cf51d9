package web

import (
	"net/http"

	"addressbridge_backend/internal/blog"
	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler renders the server-side pages.
type Handler struct {
	posts         *blog.Service
	mapsPublicKey string
	log           *logger.Logger
}

func NewHandler(posts *blog.Service, mapsPublicKey string, log *logger.Logger) *Handler {
	return &Handler{posts: posts, mapsPublicKey: mapsPublicKey, log: log}
}

// Converter handles GET /
func (h *Handler) Converter(c *gin.Context) {
	c.HTML(http.StatusOK, "converter.html", gin.H{
		"Title":         "Address Converter",
		"MapsPublicKey": h.mapsPublicKey,
	})
}

// About handles GET /about
func (h *Handler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"Title": "About",
	})
}

// BlogIndex handles GET /blog
func (h *Handler) BlogIndex(c *gin.Context) {
	posts, err := h.posts.List()
	if err != nil {
		h.log.Error("failed to list posts for blog index", "error", err)
		posts = nil
	}
	c.HTML(http.StatusOK, "blog_index.html", gin.H{
		"Title": "Blog",
		"Posts": posts,
	})
}

// BlogPost handles GET /blog/:slug
func (h *Handler) BlogPost(c *gin.Context) {
	post, err := h.posts.Get(c.Param("slug"))
	if err != nil {
		status := http.StatusInternalServerError
		if apperr.GetKind(err) == apperr.KindNotFound {
			status = http.StatusNotFound
		}
		c.HTML(status, "error.html", gin.H{
			"Title":   "Post not found",
			"Message": "The post you are looking for does not exist.",
		})
		return
	}

	body, err := renderMarkdown(post.Content)
	if err != nil {
		h.log.Error("failed to render post", "slug", post.Slug, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Something went wrong",
			"Message": "This post could not be rendered.",
		})
		return
	}

	c.HTML(http.StatusOK, "blog_post.html", gin.H{
		"Title": post.Title,
		"Post":  post,
		"Body":  body,
	})
}

// BlogNew handles GET /blog/new
func (h *Handler) BlogNew(c *gin.Context) {
	c.HTML(http.StatusOK, "blog_new.html", gin.H{
		"Title": "New Post",
	})
}
