package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"zombieland/internal/shared/constants"
	"zombieland/internal/shared/utils/response"
	"zombieland/pkg/cache"
)

type Service interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserResponse, error)
	ListRoles() []RoleResponse

	// Admin operations
	ListUsers(ctx context.Context, query UserListQuery) (*PaginatedUsers, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	var profile UserResponse
	err := s.cache.GetOrSet(ctx, constants.BuildUserProfileKey(id.String()), constants.TTL_USER_PROFILE, func() (interface{}, error) {
		user, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return user.ToResponse(), nil
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	updates := profileUpdates(req)
	if len(updates) == 0 {
		return s.GetProfile(ctx, id)
	}
	return s.applyUpdates(ctx, id, updates)
}

func (s *service) ListRoles() []RoleResponse {
	roles := make([]RoleResponse, len(Roles))
	for i, r := range Roles {
		roles[i] = RoleResponse{Name: r}
	}
	return roles
}

func (s *service) ListUsers(ctx context.Context, query UserListQuery) (*PaginatedUsers, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Role != "" {
		role, ok := ParseRole(query.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		query.Role = string(role)
	}

	list, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]UserResponse, len(list))
	for i := range list {
		out[i] = list[i].ToResponse()
	}
	return &PaginatedUsers{
		Users:      out,
		Pagination: response.NewPagination(query.Page, query.Limit, total),
	}, nil
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role := RoleUser
	if req.Role != "" {
		parsed, ok := ParseRole(req.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		role = parsed
	}

	email := normalizeEmail(req.Email)
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		Password:    hashed,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   req.BirthDate,
		ImageURL:    req.ImageURL,
		Role:        role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	updates := profileUpdates(req.UpdateProfileRequest)

	if req.Role != nil {
		role, ok := ParseRole(*req.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		updates["role"] = role
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		existing, err := s.repo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		user, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := user.ToResponse()
		return &resp, nil
	}
	return s.applyUpdates(ctx, id, updates)
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) applyUpdates(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*UserResponse, error) {
	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, constants.BuildUserProfileKey(id.String()))
}

func profileUpdates(req UpdateProfileRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	return updates
}
