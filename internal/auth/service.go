package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"zombieland/internal/shared/config"
	"zombieland/internal/shared/constants"
	"zombieland/internal/shared/middleware"
	"zombieland/internal/users"
	"zombieland/pkg/cache"
	"zombieland/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

const issuer = "zombieland"

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error
}

type service struct {
	users users.Repository
	cache cache.Service
	jwt   config.JWTConfig
	now   func() time.Time
}

func NewService(repo users.Repository, cacheService cache.Service, cfg config.JWTConfig) Service {
	return &service{
		users: repo,
		cache: cacheService,
		jwt:   cfg,
		now:   time.Now,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := users.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  hashed,
		Role:      users.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authenticate(ctx, user, "register")
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.authenticate(ctx, user, "password")
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.refreshClaims(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// rotate: the presented refresh token cannot be used twice
	s.revoke(ctx, claims)
	return s.generateTokenPair(user)
}

// Logout revokes the refresh token when one is given. Access tokens expire on their own.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.refreshClaims(ctx, refreshToken)
	if err != nil {
		return err
	}
	s.revoke(ctx, claims)
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return ErrInvalidCredentials
	}

	hashed, err := users.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hashed)
}

func (s *service) authenticate(ctx context.Context, user *users.User, method string) (*AuthResponse, error) {
	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}
	logger.GetDefault().LogAuthSuccess(ctx, user.ID.String(), method)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (s *service) refreshClaims(ctx context.Context, token string) (*middleware.Claims, error) {
	claims, err := middleware.ParseToken(s.jwt.Secret, token)
	if err != nil || claims.Type != middleware.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	var revoked bool
	if err := s.cache.Get(ctx, revokedKey(claims.ID), &revoked); err == nil && revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (s *service) revoke(ctx context.Context, claims *middleware.Claims) {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, revokedKey(claims.ID), true, ttl); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to revoke refresh token", "error", err)
	}
}

func revokedKey(tokenID string) string {
	return constants.CACHE_KEY_REVOKED_TOKEN + tokenID
}

func (s *service) generateTokenPair(user *users.User) (*TokenPair, error) {
	now := s.now()

	access, err := s.sign(user, middleware.TokenTypeAccess, now, s.jwt.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(user, middleware.TokenTypeRefresh, now, s.jwt.RefreshExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwt.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) sign(user *users.User, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := middleware.Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
			Subject:   user.ID.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwt.Secret))
}
