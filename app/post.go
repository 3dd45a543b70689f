package app

import (
	"context"

	"github.com/quillfeed/quillterm/domain"
)

// PostService publishes, deletes, likes and comments on posts.
type PostService interface {
	// Publish creates a new post and returns the normalized server copy.
	Publish(ctx context.Context, content string, visibility domain.Visibility, media []domain.MediaRef) (domain.Post, error)

	// Delete removes a post by ID.
	Delete(ctx context.Context, id string) error

	// Like adds the viewer's like and returns the authoritative like state.
	Like(ctx context.Context, postID string) (domain.LikeState, error)

	// Unlike removes the viewer's like and returns the authoritative like state.
	Unlike(ctx context.Context, postID string) (domain.LikeState, error)

	// Comment appends a comment and returns the server-assigned copy.
	Comment(ctx context.Context, postID, text string) (domain.Comment, error)
}
