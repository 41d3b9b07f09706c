package auth

import (
	"context"
	"time"
)

// RefreshToken is a persisted session handle. Revoked tokens stay in the
// table so a replayed logout token is distinguishable from an unknown one.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Revoked reports whether the token was invalidated by a logout or rotation.
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

type RefreshTokenRepository interface {
	// Store persists a newly issued refresh token.
	Store(ctx context.Context, token RefreshToken) (RefreshToken, error)

	// GetByToken returns ErrInvalidToken when the token is unknown.
	GetByToken(ctx context.Context, token string) (RefreshToken, error)

	// Revoke marks the token unusable. Revoking an already revoked token
	// is a no-op.
	Revoke(ctx context.Context, token string) error
}
