package blog

// PostMetadata is the front-matter of a post plus its slug.
type PostMetadata struct {
	Slug        string `json:"slug" yaml:"-"`
	Title       string `json:"title" yaml:"title"`
	Date        string `json:"date" yaml:"date"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

// Post is a full blog post: metadata plus markdown body.
type Post struct {
	PostMetadata `yaml:",inline"`
	Content      string `json:"content" yaml:"-"`
}

// CreatePostRequest is the authoring request body.
type CreatePostRequest struct {
	Title       string `json:"title" binding:"required" validate:"required,max=200"`
	Content     string `json:"content" binding:"required" validate:"required"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
}

// CreatePostResponse confirms a newly stored post.
type CreatePostResponse struct {
	Slug    string `json:"slug"`
	Success bool   `json:"success"`
}
