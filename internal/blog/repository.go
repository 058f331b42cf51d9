package blog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// Repository stores one markdown file per post, with YAML front-matter,
// in a flat directory. The directory is created lazily on first access.
type Repository struct {
	dir string
}

// NewRepository creates a post repository rooted at dir.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

func (r *Repository) path(slug string) string {
	return filepath.Join(r.dir, slug+".md")
}

func (r *Repository) ensureDir() error {
	return os.MkdirAll(r.dir, 0o755)
}

// Exists reports whether a post file is present for slug.
func (r *Repository) Exists(slug string) bool {
	_, err := os.Stat(r.path(slug))
	return err == nil
}

// Get reads a post by slug. Returns nil (no error) when the post does
// not exist.
func (r *Repository) Get(slug string) (*Post, error) {
	raw, err := os.ReadFile(r.path(slug))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	post, err := decodePost(slug, string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse post %s: %w", slug, err)
	}
	return post, nil
}

// List returns metadata for every stored post, in no particular order;
// ordering is the service's concern.
func (r *Repository) List() ([]PostMetadata, error) {
	if err := r.ensureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	metadata := make([]PostMetadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		post, err := r.Get(slug)
		if err != nil || post == nil {
			// A malformed file should not break the whole listing.
			continue
		}
		metadata = append(metadata, post.PostMetadata)
	}
	return metadata, nil
}

// CreateExclusive writes a new post file, failing if the slug is already
// taken. O_EXCL makes the existence check and the write one atomic step,
// so two concurrent creates can never silently overwrite each other.
func (r *Repository) CreateExclusive(post *Post) error {
	if err := r.ensureDir(); err != nil {
		return err
	}

	file, err := os.OpenFile(r.path(post.Slug), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	encoded, err := encodePost(post)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(r.path(post.Slug))
		return err
	}

	if _, err := file.WriteString(encoded); err != nil {
		_ = file.Close()
		_ = os.Remove(r.path(post.Slug))
		return err
	}
	return file.Close()
}

// Delete removes a post by slug. Returns false when no such post exists.
func (r *Repository) Delete(slug string) (bool, error) {
	err := os.Remove(r.path(slug))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// =============================================================================
// Markdown encoding
// =============================================================================

func encodePost(post *Post) (string, error) {
	meta, err := yaml.Marshal(post.PostMetadata)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(frontMatterDelimiter + "\n")
	b.Write(meta)
	b.WriteString(frontMatterDelimiter + "\n\n")
	b.WriteString(post.Content)
	if !strings.HasSuffix(post.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

func decodePost(slug, raw string) (*Post, error) {
	post := &Post{}
	post.Slug = slug

	rest, found := strings.CutPrefix(raw, frontMatterDelimiter+"\n")
	if !found {
		// No front-matter; the whole file is content.
		post.Content = raw
		return post, nil
	}

	metaBlock, content, found := strings.Cut(rest, "\n"+frontMatterDelimiter+"\n")
	if !found {
		return nil, errors.New("unterminated front-matter block")
	}

	if err := yaml.Unmarshal([]byte(metaBlock), &post.PostMetadata); err != nil {
		return nil, err
	}
	post.Slug = slug
	post.Content = strings.TrimPrefix(content, "\n")
	return post, nil
}
