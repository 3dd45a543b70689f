package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillfeed/quillterm/domain"
)

// runCmd executes a command, unwrapping one level of batching so stubbed
// service calls actually fire.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				c()
			}
		}
	}
}

type stubFeed struct {
	posts   []domain.Post
	err     error
	fetches *int
}

func (s stubFeed) FetchPosts(context.Context, int) ([]domain.Post, error) {
	if s.fetches != nil {
		*s.fetches++
	}
	return s.posts, s.err
}

type stubPost struct {
	likeState  domain.LikeState
	likeErr    error
	comment    domain.Comment
	commentErr error
	deleteErr  error

	likes    *int
	unlikes  *int
	comments *int
	deletes  *int
}

func (s stubPost) Publish(context.Context, string, domain.Visibility, []domain.MediaRef) (domain.Post, error) {
	return domain.Post{}, nil
}

func (s stubPost) Delete(context.Context, string) error {
	if s.deletes != nil {
		*s.deletes++
	}
	return s.deleteErr
}

func (s stubPost) Like(context.Context, string) (domain.LikeState, error) {
	if s.likes != nil {
		*s.likes++
	}
	return s.likeState, s.likeErr
}

func (s stubPost) Unlike(context.Context, string) (domain.LikeState, error) {
	if s.unlikes != nil {
		*s.unlikes++
	}
	return s.likeState, s.likeErr
}

func (s stubPost) Comment(context.Context, string, string) (domain.Comment, error) {
	if s.comments != nil {
		*s.comments++
	}
	return s.comment, s.commentErr
}

func makePost(id string, liked bool, likes int) domain.Post {
	return domain.Post{
		ID:         id,
		Author:     domain.ProfileSummary{ID: "author-" + id, Username: "user" + id},
		Content:    "post " + id,
		Visibility: domain.VisibilityPublic,
		CreatedAt:  time.Now(),
		Media:      []domain.Media{},
		Likes:      []domain.Like{},
		Comments:   []domain.Comment{},
		HasLiked:   liked,
		LikesCount: likes,
	}
}
