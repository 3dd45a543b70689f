package compose

import (
	"errors"
	"testing"

	"github.com/quillfeed/quillterm/domain"
)

func TestBeginUpload_MissingFileLandsInErrorState(t *testing.T) {
	uploads := 0
	m := New(stubPost{}, stubUploader{uploads: &uploads}, domain.VisibilityPublic)

	cmd := m.beginUpload("/definitely/not/here.png")
	if cmd != nil {
		t.Error("want no transfer for an unreadable file")
	}
	if len(m.attachments) != 1 {
		t.Fatalf("want one tracked attachment, got %d", len(m.attachments))
	}
	a := m.attachments[0]
	if a.Status != AttachmentError || a.ErrMsg == "" {
		t.Errorf("want error state with message, got %+v", a)
	}
	if a.ID == "" {
		t.Error("want client-generated id even for failed files")
	}
}

func TestBeginUpload_TransfersAndSettlesUploaded(t *testing.T) {
	uploads := 0
	ref := domain.MediaRef{FileURL: "https://cdn.test/f.txt", FileType: "text/plain", Bucket: "media"}
	m := New(stubPost{}, stubUploader{ref: ref, uploads: &uploads}, domain.VisibilityPublic)

	cmd := m.beginUpload(writeTempFile(t, "hello"))
	if cmd == nil {
		t.Fatal("want transfer command")
	}
	a := m.attachments[0]
	if a.Status != AttachmentUploading {
		t.Fatalf("want uploading state first, got %v", a.Status)
	}
	if a.Size != 5 {
		t.Errorf("want stat'd size 5, got %d", a.Size)
	}

	msg, ok := cmd().(attachmentDoneMsg)
	if !ok {
		t.Fatal("want attachmentDoneMsg")
	}
	if uploads != 1 {
		t.Errorf("want one upload call, got %d", uploads)
	}

	m.applyAttachmentDone(msg)
	got := m.attachments[0]
	if got.Status != AttachmentUploaded || got.Remote != ref {
		t.Errorf("want uploaded with remote descriptor, got %+v", got)
	}
}

func TestApplyAttachmentDone_FailureIsolatedPerFile(t *testing.T) {
	m := New(stubPost{}, stubUploader{}, domain.VisibilityPublic)
	m.attachments = []Attachment{
		{ID: "a1", Status: AttachmentUploading},
		{ID: "a2", Status: AttachmentUploading},
	}

	m.applyAttachmentDone(attachmentDoneMsg{ID: "a1", Err: errors.New("disk gremlins")})

	if m.attachments[0].Status != AttachmentError {
		t.Error("want a1 failed")
	}
	if m.attachments[1].Status != AttachmentUploading {
		t.Error("a2 must be unaffected by its sibling's failure")
	}
}

func TestApplyAttachmentDone_RemovedIDIsDiscarded(t *testing.T) {
	m := New(stubPost{}, stubUploader{}, domain.VisibilityPublic)
	m.attachments = []Attachment{{ID: "keep", Status: AttachmentUploading}}

	// Result for an attachment removed mid-flight: dropped, not resurrected.
	m.applyAttachmentDone(attachmentDoneMsg{ID: "gone", Ref: domain.MediaRef{FileURL: "x"}})

	if len(m.attachments) != 1 || m.attachments[0].ID != "keep" {
		t.Errorf("unexpected attachment set: %+v", m.attachments)
	}
}

func TestApplyAttachmentDone_TerminalStateIsMonotonic(t *testing.T) {
	m := New(stubPost{}, stubUploader{}, domain.VisibilityPublic)
	m.attachments = []Attachment{{ID: "a1", Status: AttachmentError, ErrMsg: "failed"}}

	m.applyAttachmentDone(attachmentDoneMsg{ID: "a1", Ref: domain.MediaRef{FileURL: "late"}})

	a := m.attachments[0]
	if a.Status != AttachmentError || a.Remote.FileURL != "" {
		t.Errorf("terminal state must never be reversed, got %+v", a)
	}
}

func TestRemoveAttachment_ReleasesPreviewOnce(t *testing.T) {
	m := New(stubPost{}, stubUploader{}, domain.VisibilityPublic)
	cmd := m.beginUpload(writeTempFile(t, "data"))
	if cmd == nil {
		t.Fatal("want transfer command")
	}
	a := &m.attachments[0]
	if a.preview == nil {
		t.Fatal("want preview handle held while tracked")
	}

	a.releasePreview()
	if !a.released {
		t.Fatal("want preview marked released")
	}
	// Second release is a no-op, not a double close.
	a.releasePreview()

	id := a.ID
	m.removeAttachment(id)
	if len(m.attachments) != 0 {
		t.Error("want attachment discarded")
	}
}

func TestRemoveAttachment_AnyState(t *testing.T) {
	m := New(stubPost{}, stubUploader{}, domain.VisibilityPublic)
	m.attachments = []Attachment{
		{ID: "a1", Status: AttachmentUploading},
		{ID: "a2", Status: AttachmentError},
		{ID: "a3", Status: AttachmentUploaded},
	}
	m.attachCursor = 2

	m.removeAttachment("a2")
	if len(m.attachments) != 2 {
		t.Fatalf("want two left, got %d", len(m.attachments))
	}
	if m.attachCursor != 1 {
		t.Errorf("want cursor clamped, got %d", m.attachCursor)
	}

	m.removeAttachment("a1")
	m.removeAttachment("a3")
	if len(m.attachments) != 0 {
		t.Error("want all removable regardless of state")
	}
}

func TestNewAttachmentID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newAttachmentID()
		if id == "" || seen[id] {
			t.Fatalf("want unique non-empty ids, got %q", id)
		}
		seen[id] = true
	}
}
