package compose

import (
	"context"
	"fmt"
	"math/rand"
	"mime"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/quillfeed/quillterm/app"
	"github.com/quillfeed/quillterm/domain"
)

// AttachmentStatus is the per-file upload state. Transitions are monotonic:
// uploading moves to exactly one terminal state and never back.
type AttachmentStatus int

const (
	AttachmentUploading AttachmentStatus = iota
	AttachmentUploaded
	AttachmentError
)

// Attachment tracks one file mid-upload. It exists only while composing;
// publishing hands the Remote descriptor to the feed and discards the rest.
type Attachment struct {
	ID     string
	Name   string
	MIME   string
	Size   int64
	Status AttachmentStatus
	ErrMsg string
	Remote domain.MediaRef

	preview  *os.File // open handle backing the preview line
	released bool
}

// releasePreview closes the local preview resource. Safe to call more than
// once; the handle is closed exactly once.
func (a *Attachment) releasePreview() {
	if a.preview != nil && !a.released {
		_ = a.preview.Close()
		a.released = true
	}
}

// newAttachmentID returns a client-generated attachment ID. Falls back to a
// pseudo-random string when the UUID source fails; ids are local and
// short-lived, so the weaker generator is acceptable here.
func newAttachmentID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("local-%d-%04d", time.Now().UnixNano(), rand.Intn(10000))
}

// attachmentDoneMsg is the terminal transition for one attachment. Arrivals
// for ids no longer tracked are discarded, so removing an attachment
// mid-flight cannot resurrect it.
type attachmentDoneMsg struct {
	ID  string
	Ref domain.MediaRef
	Err error
}

// beginUpload starts tracking path and returns the transfer command.
// Failures to even open the file yield an attachment already in the error
// state; the pipeline never fails the composer as a whole.
func (m *Model) beginUpload(path string) tea.Cmd {
	a := Attachment{
		ID:     newAttachmentID(),
		Name:   filepath.Base(path),
		Status: AttachmentUploading,
	}
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		a.MIME = t
	} else {
		a.MIME = "application/octet-stream"
	}

	info, err := os.Stat(path)
	if err != nil {
		a.Status = AttachmentError
		a.ErrMsg = err.Error()
		m.attachments = append(m.attachments, a)
		return nil
	}
	a.Size = info.Size()

	if f, err := os.Open(path); err == nil {
		a.preview = f
	}

	m.attachments = append(m.attachments, a)
	return m.uploadAttachment(a.ID, path, a.Name, a.MIME, a.Size)
}

// uploadAttachment performs the two network steps off the update loop. The
// file is opened independently of the preview handle so removing the
// attachment cannot break an in-flight transfer.
func (m Model) uploadAttachment(id, path, name, mimeType string, size int64) tea.Cmd {
	up := m.uploader
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return attachmentDoneMsg{ID: id, Err: err}
		}
		defer f.Close()

		ref, err := up.Upload(context.Background(), app.UploadRequest{
			FileName: name,
			FileType: mimeType,
			FileSize: size,
			Purpose:  app.PurposePost,
			Body:     f,
		})
		if err != nil {
			return attachmentDoneMsg{ID: id, Err: err}
		}
		return attachmentDoneMsg{ID: id, Ref: ref}
	}
}

// applyAttachmentDone applies a terminal transition, ignoring results for
// removed attachments and attachments already settled.
func (m *Model) applyAttachmentDone(msg attachmentDoneMsg) {
	for i := range m.attachments {
		a := &m.attachments[i]
		if a.ID != msg.ID {
			continue
		}
		if a.Status != AttachmentUploading {
			return
		}
		if msg.Err != nil {
			a.Status = AttachmentError
			a.ErrMsg = msg.Err.Error()
		} else {
			a.Status = AttachmentUploaded
			a.Remote = msg.Ref
		}
		return
	}
}

// removeAttachment discards an attachment in any state. An in-flight
// transfer is not cancelled; its result is dropped on arrival.
func (m *Model) removeAttachment(id string) {
	for i := range m.attachments {
		if m.attachments[i].ID == id {
			m.attachments[i].releasePreview()
			m.attachments = append(m.attachments[:i], m.attachments[i+1:]...)
			break
		}
	}
	if m.attachCursor >= len(m.attachments) && m.attachCursor > 0 {
		m.attachCursor--
	}
}

// releaseAttachments releases every preview resource and clears the set.
func (m *Model) releaseAttachments() {
	for i := range m.attachments {
		m.attachments[i].releasePreview()
	}
	m.attachments = nil
	m.attachCursor = 0
}

// mediaReady reports whether every tracked attachment reached uploaded.
func (m *Model) mediaReady() bool {
	for _, a := range m.attachments {
		if a.Status != AttachmentUploaded {
			return false
		}
	}
	return true
}

// mediaRefs collects the remote descriptors of uploaded attachments.
func (m *Model) mediaRefs() []domain.MediaRef {
	refs := make([]domain.MediaRef, 0, len(m.attachments))
	for _, a := range m.attachments {
		if a.Status == AttachmentUploaded {
			refs = append(refs, a.Remote)
		}
	}
	return refs
}
