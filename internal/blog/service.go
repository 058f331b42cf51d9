package blog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/logger"
	"addressbridge_backend/platform/validator"
)

var (
	nonWordPattern      = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	repeatedDashPattern = regexp.MustCompile(`-+`)
)

// Service owns post authoring and retrieval. Creates are serialized so
// slug collision resolution stays race-free across concurrent writers.
type Service struct {
	repo *Repository
	val  *validator.Validator
	log  *logger.Logger

	createMu sync.Mutex
}

func NewService(repo *Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log}
}

// List returns all post metadata, newest first by date string.
// Ties are left in whatever order the listing produced.
func (s *Service) List() ([]PostMetadata, error) {
	metadata, err := s.repo.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list posts", err)
	}

	sort.SliceStable(metadata, func(i, j int) bool {
		return metadata[i].Date > metadata[j].Date
	})
	return metadata, nil
}

// Get fetches a post by slug.
func (s *Service) Get(slug string) (*Post, error) {
	post, err := s.repo.Get(slug)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read post", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	return post, nil
}

// Create stores a new post and returns its slug. The slug is derived from
// the title once; collisions get a numeric suffix. Slugs are immutable
// after creation.
func (s *Service) Create(req CreatePostRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return "", apperr.Validation("title and content are required")
	}
	if err := s.val.Struct(req); err != nil {
		return "", apperr.Validation("post fields exceed allowed length")
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	base := Slugify(req.Title)
	slug := base
	for counter := 1; s.repo.Exists(slug); counter++ {
		slug = fmt.Sprintf("%s-%d", base, counter)
	}

	post := &Post{
		PostMetadata: PostMetadata{
			Slug:        slug,
			Title:       req.Title,
			Date:        time.Now().UTC().Format("2006-01-02"),
			Category:    req.Category,
			Description: req.Description,
		},
		Content: req.Content,
	}

	if err := s.repo.CreateExclusive(post); err != nil {
		s.log.Error("failed to save post", "slug", slug, "error", err)
		return "", apperr.Wrap(apperr.KindInternal, "failed to save post", err)
	}
	return slug, nil
}

// Delete removes a post by slug.
func (s *Service) Delete(slug string) error {
	removed, err := s.repo.Delete(slug)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete post", err)
	}
	if !removed {
		return apperr.NotFound("post not found")
	}
	return nil
}

// Slugify derives a URL-safe identifier from a title: lower-cased,
// non-word characters stripped, whitespace collapsed to hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonWordPattern.ReplaceAllString(slug, "")
	slug = whitespacePattern.ReplaceAllString(slug, "-")
	slug = repeatedDashPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "post"
	}
	return slug
}
