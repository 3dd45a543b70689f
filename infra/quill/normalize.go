package quill

import (
	"time"

	"github.com/quillfeed/quillterm/domain"
)

// Wire payloads. Pointer fields distinguish "server omitted" from zero
// values so normalization can fall back to derived counters.

type profilePayload struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Verified    bool   `json:"verified"`
}

type mediaPayload struct {
	ID       string `json:"id"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
	Bucket   string `json:"storage_bucket"`
}

type likePayload struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	Kind      string `json:"reaction_kind"`
	CreatedAt string `json:"created_at"`
}

type commentPayload struct {
	ID        string         `json:"id"`
	PostID    string         `json:"post_id"`
	ParentID  string         `json:"parent_id"`
	Text      string         `json:"text"`
	Author    profilePayload `json:"author"`
	CreatedAt string         `json:"created_at"`
}

type postPayload struct {
	ID         string           `json:"id"`
	Author     profilePayload   `json:"author"`
	Content    *string          `json:"content"`
	Visibility string           `json:"visibility"`
	Edited     bool             `json:"edited"`
	CreatedAt  string           `json:"created_at"`
	UpdatedAt  string           `json:"updated_at"`
	Media      []mediaPayload   `json:"media"`
	Likes      []likePayload    `json:"likes"`
	Comments   []commentPayload `json:"comments"`

	// Authoritative counters and viewer flags; absent on older backends
	// and some list endpoints.
	LikesCount    *int  `json:"likes_count"`
	CommentsCount *int  `json:"comments_count"`
	HasLiked      *bool `json:"has_liked"`

	// is_owner is deliberately not read: the payload may be cached across
	// viewer sessions, so ownership is always recomputed locally.
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func normalizeProfile(p profilePayload) domain.ProfileSummary {
	return domain.ProfileSummary{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Verified:    p.Verified,
	}
}

func normalizeLike(l likePayload) domain.Like {
	return domain.Like{
		ID:        l.ID,
		PostID:    l.PostID,
		UserID:    l.UserID,
		Kind:      l.Kind,
		CreatedAt: parseTime(l.CreatedAt),
	}
}

func normalizeComment(c commentPayload) domain.Comment {
	return domain.Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Text:      c.Text,
		Author:    normalizeProfile(c.Author),
		CreatedAt: parseTime(c.CreatedAt),
	}
}

// normalizePost converts a possibly partial server payload into a canonical
// domain.Post for the given viewer. Pure; calling it twice on the same
// payload yields the same post.
//
// Guarantees:
//   - media/likes/comments are never nil
//   - counters use the server value when present, else the array length
//   - has_liked falls back to scanning likes for the viewer
//   - is_owner is always recomputed from the author ID
func normalizePost(p postPayload, viewerID string) domain.Post {
	media := make([]domain.Media, 0, len(p.Media))
	for _, m := range p.Media {
		media = append(media, domain.Media{
			ID:       m.ID,
			FileURL:  m.FileURL,
			FileType: m.FileType,
			FileSize: m.FileSize,
			Bucket:   m.Bucket,
		})
	}

	likes := make([]domain.Like, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, normalizeLike(l))
	}

	comments := make([]domain.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, normalizeComment(c))
	}

	likesCount := len(likes)
	if p.LikesCount != nil {
		likesCount = *p.LikesCount
	}
	commentsCount := len(comments)
	if p.CommentsCount != nil {
		commentsCount = *p.CommentsCount
	}

	hasLiked := false
	if p.HasLiked != nil {
		hasLiked = *p.HasLiked
	} else {
		for _, l := range likes {
			if viewerID != "" && l.UserID == viewerID {
				hasLiked = true
				break
			}
		}
	}

	content := ""
	if p.Content != nil {
		content = *p.Content
	}

	visibility := domain.Visibility(p.Visibility)
	if !domain.ValidVisibility(visibility) {
		visibility = domain.DefaultVisibility
	}

	return domain.Post{
		ID:            p.ID,
		Author:        normalizeProfile(p.Author),
		Content:       content,
		Visibility:    visibility,
		Edited:        p.Edited,
		CreatedAt:     parseTime(p.CreatedAt),
		UpdatedAt:     parseTime(p.UpdatedAt),
		Media:         media,
		Likes:         likes,
		Comments:      comments,
		LikesCount:    likesCount,
		CommentsCount: commentsCount,
		HasLiked:      hasLiked,
		IsOwner:       viewerID != "" && p.Author.ID == viewerID,
	}
}
