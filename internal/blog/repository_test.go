package blog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateExclusiveAndGetRoundTrip(t *testing.T) {
	repo := NewRepository(t.TempDir())

	post := &Post{
		PostMetadata: PostMetadata{
			Slug:        "hello-world",
			Title:       "Hello World!",
			Date:        "2026-08-30",
			Category:    "announcements",
			Description: "First post",
		},
		Content: "# Hello\n\nSome **markdown** body.",
	}
	if err := repo.CreateExclusive(post); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.Get("hello-world")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected post")
	}
	if got.Title != "Hello World!" || got.Date != "2026-08-30" || got.Category != "announcements" {
		t.Fatalf("metadata mismatch: %+v", got.PostMetadata)
	}
	if !strings.Contains(got.Content, "Some **markdown** body.") {
		t.Fatalf("content mismatch: %q", got.Content)
	}
}

func TestGetIsIdempotent(t *testing.T) {
	repo := NewRepository(t.TempDir())
	post := &Post{
		PostMetadata: PostMetadata{Slug: "stable", Title: "Stable", Date: "2026-01-01"},
		Content:      "body",
	}
	if err := repo.CreateExclusive(post); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := repo.Get("stable")
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	second, err := repo.Get("stable")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if *first != *second {
		t.Fatalf("reads differ: %+v vs %+v", first, second)
	}
}

func TestCreateExclusiveRefusesExistingSlug(t *testing.T) {
	repo := NewRepository(t.TempDir())
	post := &Post{
		PostMetadata: PostMetadata{Slug: "taken", Title: "Taken", Date: "2026-01-01"},
		Content:      "body",
	}
	if err := repo.CreateExclusive(post); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.CreateExclusive(post); err == nil {
		t.Fatal("expected second create to fail")
	}
}

func TestGetMissingPostReturnsNil(t *testing.T) {
	repo := NewRepository(t.TempDir())

	post, err := repo.Get("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post != nil {
		t.Fatalf("expected nil post, got %+v", post)
	}
}

func TestDelete(t *testing.T) {
	repo := NewRepository(t.TempDir())
	post := &Post{
		PostMetadata: PostMetadata{Slug: "gone", Title: "Gone", Date: "2026-01-01"},
		Content:      "body",
	}
	if err := repo.CreateExclusive(post); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	removed, err := repo.Delete("gone")
	if err != nil || !removed {
		t.Fatalf("expected delete to succeed, removed=%v err=%v", removed, err)
	}

	removed, err = repo.Delete("gone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to report missing")
	}
}

func TestListCreatesDirectoryLazily(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	repo := NewRepository(dir)

	metadata, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metadata) != 0 {
		t.Fatalf("expected empty listing, got %d", len(metadata))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestListSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	good := &Post{
		PostMetadata: PostMetadata{Slug: "good", Title: "Good", Date: "2026-01-01"},
		Content:      "body",
	}
	if err := repo.CreateExclusive(good); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// Front-matter opened but never closed.
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("---\ntitle: x\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	metadata, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metadata) != 1 || metadata[0].Slug != "good" {
		t.Fatalf("unexpected listing: %+v", metadata)
	}
}

func TestDecodePostWithoutFrontMatter(t *testing.T) {
	post, err := decodePost("plain", "just markdown, no metadata")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "" || post.Content != "just markdown, no metadata" {
		t.Fatalf("unexpected post: %+v", post)
	}
}
