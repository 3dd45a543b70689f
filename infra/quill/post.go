package quill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/quillfeed/quillterm/domain"
)

// postService implements app.PostService against the Quillfeed API.
type postService struct {
	client *Client
	viewer ViewerSource
}

// NewPostService creates a PostService backed by Quillfeed.
func NewPostService(client *Client, viewer ViewerSource) *postService {
	return &postService{client: client, viewer: viewer}
}

type mediaRefPayload struct {
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
	Bucket   string `json:"storage_bucket"`
}

func (s *postService) Publish(ctx context.Context, content string, visibility domain.Visibility, media []domain.MediaRef) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(media) == 0 {
		return domain.Post{}, domain.ErrEmptyPost
	}
	if !domain.ValidVisibility(visibility) {
		visibility = domain.DefaultVisibility
	}

	refs := make([]mediaRefPayload, 0, len(media))
	for _, m := range media {
		refs = append(refs, mediaRefPayload{
			FileURL:  m.FileURL,
			FileType: m.FileType,
			FileSize: m.FileSize,
			Bucket:   m.Bucket,
		})
	}

	body := struct {
		Content    string            `json:"content"`
		Visibility domain.Visibility `json:"visibility"`
		Media      []mediaRefPayload `json:"media"`
	}{content, visibility, refs}

	data, err := s.client.Post(ctx, "/api/posts", body)
	if err != nil {
		return domain.Post{}, fmt.Errorf("publishing post: %w", err)
	}

	var envelope struct {
		Post postPayload `json:"post"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return domain.Post{}, fmt.Errorf("parsing publish response: %w", err)
	}
	return normalizePost(envelope.Post, s.viewer.ViewerID()), nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, "/api/posts/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *postService) Like(ctx context.Context, postID string) (domain.LikeState, error) {
	data, err := s.client.Post(ctx, "/api/posts/"+url.PathEscape(postID)+"/likes", nil)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("liking post: %w", err)
	}
	return parseLikeState(data)
}

func (s *postService) Unlike(ctx context.Context, postID string) (domain.LikeState, error) {
	data, err := s.client.Delete(ctx, "/api/posts/"+url.PathEscape(postID)+"/likes")
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("unliking post: %w", err)
	}
	return parseLikeState(data)
}

func parseLikeState(data []byte) (domain.LikeState, error) {
	var envelope struct {
		LikesCount int           `json:"likes_count"`
		HasLiked   bool          `json:"has_liked"`
		Likes      []likePayload `json:"likes"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return domain.LikeState{}, fmt.Errorf("parsing like response: %w", err)
	}

	likes := make([]domain.Like, 0, len(envelope.Likes))
	for _, l := range envelope.Likes {
		likes = append(likes, normalizeLike(l))
	}
	return domain.LikeState{
		LikesCount: envelope.LikesCount,
		HasLiked:   envelope.HasLiked,
		Likes:      likes,
	}, nil
}

func (s *postService) Comment(ctx context.Context, postID, text string) (domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	body := struct {
		Text string `json:"text"`
	}{text}

	data, err := s.client.Post(ctx, "/api/posts/"+url.PathEscape(postID)+"/comments", body)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("commenting: %w", err)
	}

	var envelope struct {
		Comment commentPayload `json:"comment"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	return normalizeComment(envelope.Comment), nil
}
