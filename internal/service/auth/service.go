package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/tap-academy/attendance-backend-go/internal/domain/auth"
	"github.com/tap-academy/attendance-backend-go/internal/domain/employee"
	"github.com/tap-academy/attendance-backend-go/internal/domain/user"
	"github.com/tap-academy/attendance-backend-go/internal/pkg/database"
	"github.com/tap-academy/attendance-backend-go/internal/pkg/jwt"
	"github.com/tap-academy/attendance-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	user.UserRepository
	employee.EmployeeRepository
	auth.RefreshTokenRepository
	jwtService jwt.Service
	runTx      func(ctx context.Context, fn func(txCtx context.Context) error) error
	now        func() time.Time
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	refreshTokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:         userRepo,
		EmployeeRepository:     employeeRepo,
		RefreshTokenRepository: refreshTokenRepo,
		jwtService:             jwtService,
		runTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		now: time.Now,
	}
}

// issueTokens generates an access/refresh pair and persists the refresh
// token so it can be revoked later.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	_, err = a.RefreshTokenRepository.Store(ctx, auth.RefreshToken{
		UserID:    u.ID,
		Token:     refreshToken,
		ExpiresAt: time.Unix(refreshExp, 0),
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
	}, nil
}

// Register implements auth.AuthService. The roster entry and the account
// are created in one transaction so a duplicate email cannot leave an
// orphaned employee behind.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var createdUser user.User
	var createdEmployee employee.Employee

	err = a.runTx(ctx, func(txCtx context.Context) error {
		createdEmployee, err = a.EmployeeRepository.Create(txCtx, employee.Employee{
			Code:       req.EmployeeID,
			FullName:   req.Name,
			Department: req.Department,
			Active:     true,
		})
		if err != nil {
			return err
		}

		createdUser, err = a.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         user.Role(req.Role),
			EmployeeID:   createdEmployee.ID,
		})
		return err
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	tokens, err := a.issueTokens(ctx, createdUser)
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{
		User: auth.UserResponse{
			ID:         createdUser.ID,
			Name:       createdEmployee.FullName,
			Email:      createdUser.Email,
			Role:       string(createdUser.Role),
			EmployeeID: createdEmployee.Code,
			Department: createdEmployee.Department,
		},
		Tokens: tokens,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData)
}

// Refresh implements auth.AuthService. The presented token is rotated:
// revoked and replaced by a fresh pair.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwxjwt.ErrTokenExpired()) {
			return auth.TokenResponse{}, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := a.RefreshTokenRepository.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if stored.Revoked() {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if a.now().After(stored.ExpiresAt) {
		return auth.TokenResponse{}, auth.ErrTokenExpired
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var tokens auth.TokenResponse
	err = a.runTx(ctx, func(txCtx context.Context) error {
		if err := a.RefreshTokenRepository.Revoke(txCtx, refreshToken); err != nil {
			return err
		}
		tokens, err = a.issueTokens(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokens, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.RefreshTokenRepository.GetByToken(ctx, refreshToken); err != nil {
		return err
	}
	return a.RefreshTokenRepository.Revoke(ctx, refreshToken)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.UserResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.UserResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, userData.EmployeeID)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return auth.UserResponse{
		ID:         userData.ID,
		Name:       emp.FullName,
		Email:      userData.Email,
		Role:       string(userData.Role),
		EmployeeID: emp.Code,
		Department: emp.Department,
	}, nil
}
