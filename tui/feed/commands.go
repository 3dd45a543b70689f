package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillfeed/quillterm/domain"
)

func (m Model) fetchPosts() tea.Cmd {
	feedSvc := m.feed
	limit := m.limit
	return func() tea.Msg {
		posts, err := feedSvc.FetchPosts(context.Background(), limit)
		if err != nil {
			return PostsErrorMsg{Err: err}
		}
		return PostsLoadedMsg{Posts: posts}
	}
}

// toggleLike issues the server call matching the pre-flip state. The
// optimistic flip has already been applied by the time this runs.
func (m Model) toggleLike(id string, wasLiked bool) tea.Cmd {
	postSvc := m.post
	return func() tea.Msg {
		var (
			state domain.LikeState
			err   error
		)
		if wasLiked {
			state, err = postSvc.Unlike(context.Background(), id)
		} else {
			state, err = postSvc.Like(context.Background(), id)
		}
		return LikeResultMsg{ID: id, State: state, Err: err}
	}
}

func (m Model) submitComment(postID, text string) tea.Cmd {
	postSvc := m.post
	return func() tea.Msg {
		comment, err := postSvc.Comment(context.Background(), postID, text)
		return CommentResultMsg{PostID: postID, Comment: comment, Err: err}
	}
}

func (m Model) deletePost(id string) tea.Cmd {
	postSvc := m.post
	return func() tea.Msg {
		return DeleteResultMsg{ID: id, Err: postSvc.Delete(context.Background(), id)}
	}
}
