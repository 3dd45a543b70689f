package feed

import (
	"testing"

	"github.com/quillfeed/quillterm/domain"
)

func TestNavigationAndOpenDetail(t *testing.T) {
	m := New(stubFeed{}, stubPost{}, 20)
	m.posts = []domain.Post{makePost("a", false, 0), makePost("b", false, 0)}

	m, _ = m.Update(keyMsg("j"))
	if m.cursor != 1 {
		t.Fatalf("want cursor 1, got %d", m.cursor)
	}
	m, _ = m.Update(keyMsg("j"))
	if m.cursor != 1 {
		t.Error("cursor must not run past the end")
	}

	m, _ = m.Update(keyMsg("enter"))
	if !m.showDetail || m.detailID != "b" {
		t.Errorf("want detail on b, got showDetail=%v id=%q", m.showDetail, m.detailID)
	}
}

func TestDeleteKey_OnlyOnOwnPosts(t *testing.T) {
	m := New(stubFeed{}, stubPost{}, 20)
	other := makePost("a", false, 0)
	own := makePost("b", false, 0)
	own.IsOwner = true
	m.posts = []domain.Post{other, own}

	m, _ = m.Update(keyMsg("d"))
	if m.confirmDelete {
		t.Fatal("must not offer deletion of another viewer's post")
	}

	m.cursor = 1
	m, _ = m.Update(keyMsg("d"))
	if !m.confirmDelete {
		t.Fatal("want confirmation prompt on own post")
	}

	// Anything but y cancels.
	m, cmd := m.Update(keyMsg("n"))
	if m.confirmDelete || cmd != nil {
		t.Error("want confirmation cancelled without a request")
	}
}

func TestDeleteConfirm_IssuesRequest(t *testing.T) {
	deletes := 0
	m := New(stubFeed{}, stubPost{deletes: &deletes}, 20)
	own := makePost("b", false, 0)
	own.IsOwner = true
	m.posts = []domain.Post{own}
	m.confirmDelete = true

	m, cmd := m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("want delete command")
	}
	cmd()
	if deletes != 1 {
		t.Errorf("want one delete call, got %d", deletes)
	}
}

func TestCommentKey_OpensDetailAndFocusesInput(t *testing.T) {
	m := New(stubFeed{}, stubPost{}, 20)
	m.posts = []domain.Post{makePost("a", false, 0)}

	m, _ = m.Update(keyMsg("c"))
	if !m.showDetail || !m.commenting {
		t.Errorf("want detail+commenting, got detail=%v commenting=%v", m.showDetail, m.commenting)
	}
}

func TestCommentSubmit_WhitespaceIsNoop(t *testing.T) {
	comments := 0
	m := New(stubFeed{}, stubPost{comments: &comments}, 20)
	m.posts = []domain.Post{makePost("a", false, 0)}
	m.showDetail = true
	m.detailID = "a"
	m.commenting = true
	m.commentInput.SetValue("   \n ")

	m, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd != nil {
		t.Fatal("whitespace-only comment must not produce a command")
	}
	if comments != 0 {
		t.Errorf("no request expected, got %d", comments)
	}
	if !m.commenting {
		t.Error("composer stays open for the user to type")
	}
}

func TestCommentSubmit_SendsTrimmedText(t *testing.T) {
	comments := 0
	m := New(stubFeed{}, stubPost{comments: &comments}, 20)
	m.posts = []domain.Post{makePost("a", false, 0)}
	m.showDetail = true
	m.detailID = "a"
	m.commenting = true
	m.commentInput.SetValue("hello there")

	m, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd == nil {
		t.Fatal("want submit command")
	}
	if !m.commentBusy {
		t.Error("want busy flag while request is in flight")
	}
	runCmd(cmd)
	if comments != 1 {
		t.Errorf("want one comment call, got %d", comments)
	}
}

func TestEscape_LeavesDetail(t *testing.T) {
	m := New(stubFeed{}, stubPost{}, 20)
	m.posts = []domain.Post{makePost("a", false, 0)}
	m.showDetail = true
	m.detailID = "a"

	m, _ = m.Update(keyMsg("esc"))
	if m.showDetail {
		t.Error("want esc to close detail")
	}
}
