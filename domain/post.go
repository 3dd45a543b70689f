package domain

import "time"

// Visibility controls who may see a post.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
	VisibilityPrivate Visibility = "private"
)

// DefaultVisibility is applied to new drafts and after a composer reset.
const DefaultVisibility = VisibilityPublic

// ValidVisibility reports whether v is one of the three known levels.
func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

// ProfileSummary is the denormalized author embedded in posts and comments.
// It is a snapshot taken server-side; refreshing it requires reloading the
// owning post.
type ProfileSummary struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
	Verified    bool
}

// Name returns the display name, falling back to the username.
func (p ProfileSummary) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// Media is a durable media record attached to a published post.
type Media struct {
	ID       string
	FileURL  string
	FileType string
	FileSize int64
	Bucket   string
}

// MediaRef is the wire reference sent when publishing a post. It is the
// hand-off shape from a finished upload; nothing else of the local
// attachment survives publishing.
type MediaRef struct {
	FileURL  string
	FileType string
	FileSize int64
	Bucket   string
}

// Like is a single reaction on a post. The server enforces at most one per
// (post, user) pair.
type Like struct {
	ID        string
	PostID    string
	UserID    string
	Kind      string
	CreatedAt time.Time
}

// Comment is a reply on a post, optionally threaded under a parent comment.
// Ordering is append-only by creation; the client never re-sorts.
type Comment struct {
	ID        string
	PostID    string
	ParentID  string
	Text      string
	Author    ProfileSummary
	CreatedAt time.Time
}

// Post is a fully normalized feed entry. LikesCount, CommentsCount,
// HasLiked and IsOwner are always materialized; Media, Likes and Comments
// are never nil.
type Post struct {
	ID         string
	Author     ProfileSummary
	Content    string
	Visibility Visibility
	Edited     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Media    []Media
	Likes    []Like
	Comments []Comment

	LikesCount    int
	CommentsCount int
	HasLiked      bool
	IsOwner       bool
}

// LikeState is the server's authoritative answer to a like toggle. The
// feed overwrites its optimistic flip with these values on arrival.
type LikeState struct {
	LikesCount int
	HasLiked   bool
	Likes      []Like
}
