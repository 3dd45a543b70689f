package quill

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quillfeed/quillterm/domain"
)

// ViewerSource supplies the current viewer ID for normalization. Post
// ownership and has_liked depend on it and must never be carried over from
// a different logged-in identity.
type ViewerSource interface {
	ViewerID() string
}

// feedService implements app.FeedService against the Quillfeed API.
type feedService struct {
	client *Client
	viewer ViewerSource
}

// NewFeedService creates a FeedService backed by Quillfeed.
func NewFeedService(client *Client, viewer ViewerSource) *feedService {
	return &feedService{client: client, viewer: viewer}
}

func (s *feedService) FetchPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf("/api/posts?limit=%d", limit))
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	var envelope struct {
		Posts []postPayload `json:"posts"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	viewerID := s.viewer.ViewerID()
	posts := make([]domain.Post, 0, len(envelope.Posts))
	for _, p := range envelope.Posts {
		posts = append(posts, normalizePost(p, viewerID))
	}
	return posts, nil
}
