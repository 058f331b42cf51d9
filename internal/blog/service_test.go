package blog

import (
	"strings"
	"testing"

	"addressbridge_backend/platform/apperr"
	"addressbridge_backend/platform/logger"
	"addressbridge_backend/platform/validator"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(t.TempDir()), validator.New(), logger.New("test"))
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := newTestService(t)

	slug, err := svc.Create(CreatePostRequest{Title: "Hello World!", Content: "body"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if slug != "hello-world" {
		t.Fatalf("expected hello-world, got %q", slug)
	}

	post, err := svc.Get(slug)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if post.Title != "Hello World!" || post.Content != "body" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Date == "" {
		t.Fatal("expected date to be set")
	}
}

func TestCreateResolvesSlugCollisions(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Create(CreatePostRequest{Title: "Hello World!", Content: "one"})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(CreatePostRequest{Title: "Hello World!", Content: "two"})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	third, err := svc.Create(CreatePostRequest{Title: "Hello World!", Content: "three"})
	if err != nil {
		t.Fatalf("third create failed: %v", err)
	}

	if first != "hello-world" || second != "hello-world-1" || third != "hello-world-2" {
		t.Fatalf("unexpected slugs: %q %q %q", first, second, third)
	}

	post, err := svc.Get(first)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if post.Content != "one" {
		t.Fatalf("original post was overwritten: %q", post.Content)
	}
}

func TestCreateRejectsBlankFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(CreatePostRequest{Title: "   ", Content: "body"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(CreatePostRequest{Title: "Title", Content: ""})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsOversizedTitle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(CreatePostRequest{
		Title:   strings.Repeat("a", 201),
		Content: "body",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo := NewRepository(t.TempDir())
	svc := NewService(repo, validator.New(), logger.New("test"))

	posts := []Post{
		{PostMetadata: PostMetadata{Slug: "old", Title: "Old", Date: "2024-03-01"}, Content: "a"},
		{PostMetadata: PostMetadata{Slug: "new", Title: "New", Date: "2026-08-15"}, Content: "b"},
		{PostMetadata: PostMetadata{Slug: "mid", Title: "Mid", Date: "2025-11-20"}, Content: "c"},
	}
	for i := range posts {
		if err := repo.CreateExclusive(&posts[i]); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	listed, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(listed))
	}
	if listed[0].Slug != "new" || listed[1].Slug != "mid" || listed[2].Slug != "old" {
		t.Fatalf("unexpected order: %s %s %s", listed[0].Slug, listed[1].Slug, listed[2].Slug)
	}
}

func TestGetUnknownSlugIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get("missing")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteRemovesPost(t *testing.T) {
	svc := newTestService(t)

	slug, err := svc.Create(CreatePostRequest{Title: "Short Lived", Content: "body"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(slug); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(slug); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World!", "hello-world"},
		{"  Spaces   Everywhere  ", "spaces-everywhere"},
		{"Already-hyphenated title", "already-hyphenated-title"},
		{"What's New?", "whats-new"},
		{"!!!", "post"},
		{"", "post"},
		{"UPPER case", "upper-case"},
		{"dots.and.commas, mixed", "dotsandcommas-mixed"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
