package quill

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/quillfeed/quillterm/domain"
)

// sessionService implements app.SessionService against the Quillfeed API.
// It caches the resolved profile so the feed and post services can look up
// the viewer ID without another round trip.
type sessionService struct {
	client *Client

	mu      sync.Mutex
	profile domain.ProfileSummary
	ok      bool
}

// NewSessionService creates a SessionService backed by Quillfeed.
func NewSessionService(client *Client) *sessionService {
	return &sessionService{client: client}
}

func (s *sessionService) CurrentProfile(ctx context.Context) (domain.ProfileSummary, error) {
	s.mu.Lock()
	if s.ok {
		p := s.profile
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	data, err := s.client.Get(ctx, "/api/me")
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("resolving session: %w", err)
	}

	var envelope struct {
		User profilePayload `json:"user"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("parsing session response: %w", err)
	}

	profile := normalizeProfile(envelope.User)

	s.mu.Lock()
	s.profile = profile
	s.ok = true
	s.mu.Unlock()

	return profile, nil
}

// ViewerID returns the cached viewer ID, or "" before the session resolves.
// The session gate guarantees feed operations only run after resolution.
func (s *sessionService) ViewerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.ID
}
