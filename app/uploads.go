package app

import (
	"context"
	"io"

	"github.com/quillfeed/quillterm/domain"
)

// Upload purposes understood by the storage layer.
const (
	PurposeAvatar = "avatar"
	PurposeCover  = "cover"
	PurposePost   = "post"
	PurposeOther  = "other"
)

// UploadRequest describes one file to transfer to object storage.
type UploadRequest struct {
	FileName string
	FileType string
	FileSize int64
	Purpose  string
	Body     io.Reader
}

// Uploader moves a file into object storage via a signed upload target and
// returns the durable media reference. Implementations perform two network
// steps: signed-URL acquisition, then a direct binary PUT.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (domain.MediaRef, error)
}
