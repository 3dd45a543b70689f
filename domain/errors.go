package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyPost indicates a publish with no text and no uploaded media.
	ErrEmptyPost = errors.New("post needs text or media")

	// ErrMediaNotReady indicates a publish while an attachment is still
	// uploading or has failed. Rejected locally; no request is sent.
	ErrMediaNotReady = errors.New("media not ready")

	// ErrEmptyComment indicates a comment with only whitespace.
	ErrEmptyComment = errors.New("comment cannot be empty")
)
