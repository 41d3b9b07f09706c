package auth

import "context"

// AuthService defines account and session operations.
type AuthService interface {
	// Register creates the roster entry and its user account, then issues
	// a session.
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)

	// Login verifies credentials and issues access + refresh tokens.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the authenticated account's profile.
	Me(ctx context.Context) (UserResponse, error)
}
