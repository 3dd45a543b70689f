package app

import (
	"context"

	"github.com/quillfeed/quillterm/domain"
)

// FeedService fetches normalized posts from the backend.
type FeedService interface {
	// FetchPosts returns up to limit posts, newest first.
	FetchPosts(ctx context.Context, limit int) ([]domain.Post, error)
}
