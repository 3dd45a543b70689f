package app

import (
	"context"

	"github.com/quillfeed/quillterm/domain"
)

// SessionService resolves the identity behind the current credentials.
// Resolution happens once at startup; the feed is gated on its outcome.
type SessionService interface {
	// CurrentProfile returns the authenticated viewer's profile.
	// Returns domain.ErrUnauthorized when the credentials are rejected.
	CurrentProfile(ctx context.Context) (domain.ProfileSummary, error)
}
