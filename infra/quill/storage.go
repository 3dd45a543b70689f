package quill

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quillfeed/quillterm/app"
	"github.com/quillfeed/quillterm/domain"
)

// uploader implements app.Uploader: it obtains a signed upload target from
// the storage layer, then streams the file bytes directly to it.
type uploader struct {
	client *Client
}

// NewUploader creates an Uploader backed by Quillfeed's storage layer.
func NewUploader(client *Client) *uploader {
	return &uploader{client: client}
}

func (u *uploader) Upload(ctx context.Context, req app.UploadRequest) (domain.MediaRef, error) {
	purpose := req.Purpose
	if purpose == "" {
		purpose = app.PurposeOther
	}

	body := struct {
		FileName string `json:"file_name"`
		FileType string `json:"file_type"`
		FileSize int64  `json:"file_size"`
		Purpose  string `json:"purpose"`
	}{req.FileName, req.FileType, req.FileSize, purpose}

	data, err := u.client.Post(ctx, "/api/storage/upload-url", body)
	if err != nil {
		return domain.MediaRef{}, fmt.Errorf("requesting upload target: %w", err)
	}

	var target struct {
		UploadURL string `json:"upload_url"`
		PublicURL string `json:"public_url"`
		Bucket    string `json:"bucket"`
		FileURL   string `json:"file_url"`
	}
	if err := json.Unmarshal(data, &target); err != nil {
		return domain.MediaRef{}, fmt.Errorf("parsing upload target: %w", err)
	}
	if target.UploadURL == "" {
		return domain.MediaRef{}, fmt.Errorf("storage layer returned no upload target")
	}

	if err := u.client.Transfer(ctx, target.UploadURL, req.FileType, req.Body, req.FileSize); err != nil {
		return domain.MediaRef{}, fmt.Errorf("transferring %s: %w", req.FileName, err)
	}

	fileURL := target.FileURL
	if fileURL == "" {
		fileURL = target.PublicURL
	}
	return domain.MediaRef{
		FileURL:  fileURL,
		FileType: req.FileType,
		FileSize: req.FileSize,
		Bucket:   target.Bucket,
	}, nil
}
