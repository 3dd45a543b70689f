package quill

import (
	"context"
	"net/http"
	"testing"

	"github.com/h2non/gock"
)

func TestFetchPosts_NormalizesForViewer(t *testing.T) {
	svc := NewFeedService(newTestClient(t), staticViewer("alice"))

	gock.New(testBaseURL).
		Get("/api/posts").
		MatchParam("limit", "2").
		Reply(http.StatusOK).
		JSON(map[string]any{"posts": []any{
			map[string]any{
				"id":      "p1",
				"author":  map[string]any{"id": "alice"},
				"content": "mine",
			},
			map[string]any{
				"id":     "p2",
				"author": map[string]any{"id": "bob"},
				"likes":  []any{map[string]any{"id": "l1", "user_id": "alice"}},
			},
		}})

	posts, err := svc.FetchPosts(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("want 2 posts, got %d", len(posts))
	}
	if !posts[0].IsOwner || posts[1].IsOwner {
		t.Errorf("ownership not recomputed for viewer: %+v", posts)
	}
	if !posts[1].HasLiked || posts[1].LikesCount != 1 {
		t.Errorf("want has_liked derived from likes scan, got %+v", posts[1])
	}
	if posts[0].Comments == nil || posts[1].Media == nil {
		t.Error("want empty slices for absent arrays")
	}
}

func TestFetchPosts_FeedErrorSurfaces(t *testing.T) {
	svc := NewFeedService(newTestClient(t), staticViewer("alice"))

	gock.New(testBaseURL).
		Get("/api/posts").
		Reply(http.StatusInternalServerError).
		JSON(map[string]string{"error": "db on fire"})

	if _, err := svc.FetchPosts(context.Background(), 20); err == nil {
		t.Error("want error from failed feed load")
	}
}
