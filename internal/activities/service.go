package activities

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"zombieland/internal/shared/constants"
	"zombieland/internal/shared/utils/response"
	"zombieland/pkg/cache"
	"zombieland/pkg/logger"
)

type Service interface {
	ListActivities(ctx context.Context, query ActivityListQuery) (*PaginatedActivities, error)
	GetActivity(ctx context.Context, id uuid.UUID) (*ActivityResponse, error)
	CreateActivity(ctx context.Context, req CreateActivityRequest) (*ActivityResponse, error)
	UpdateActivity(ctx context.Context, id uuid.UUID, req UpdateActivityRequest) (*ActivityResponse, error)
	DeleteActivity(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) ListActivities(ctx context.Context, query ActivityListQuery) (*PaginatedActivities, error) {
	query.normalize()
	key := constants.BuildActivityListKey(query.Page, query.Limit, query.CategoryID, strings.ToLower(strings.TrimSpace(query.Search)))

	var out PaginatedActivities
	err := s.cache.GetOrSet(ctx, key, constants.TTL_ACTIVITIES_LIST, func() (interface{}, error) {
		list, total, err := s.repo.ListActivities(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to list activities: %w", err)
		}
		resp := make([]ActivityResponse, len(list))
		for i := range list {
			resp[i] = list[i].ToResponse()
		}
		return &PaginatedActivities{
			Activities: resp,
			Pagination: response.NewPagination(query.Page, query.Limit, total),
		}, nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) GetActivity(ctx context.Context, id uuid.UUID) (*ActivityResponse, error) {
	var out ActivityResponse
	err := s.cache.GetOrSet(ctx, constants.BuildActivityDetailKey(id.String()), constants.TTL_ACTIVITY_DETAIL, func() (interface{}, error) {
		activity, err := s.repo.GetActivityByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return activity.ToResponse(), nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) CreateActivity(ctx context.Context, req CreateActivityRequest) (*ActivityResponse, error) {
	title := strings.TrimSpace(req.Title)
	slug, err := s.uniqueSlug(ctx, title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	activity := &Activity{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Multimedias: buildMultimedias(uuid.Nil, req.Multimedias),
	}
	if activity.CategoryID, err = s.resolveCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.invalidateActivities(ctx)
	return s.reload(ctx, activity.ID)
}

func (s *service) UpdateActivity(ctx context.Context, id uuid.UUID, req UpdateActivityRequest) (*ActivityResponse, error) {
	activity, err := s.repo.GetActivityByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != activity.Title {
			if activity.Slug, err = s.uniqueSlug(ctx, title, activity.ID); err != nil {
				return nil, err
			}
			activity.Title = title
		}
	}
	if req.Description != nil {
		activity.Description = strings.TrimSpace(*req.Description)
	}
	if req.CategoryID != nil {
		if activity.CategoryID, err = s.resolveCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		activity.Category = nil
	}

	if err := s.repo.UpdateActivity(ctx, activity, req.Multimedias); err != nil {
		return nil, err
	}

	s.invalidateActivities(ctx)
	return s.reload(ctx, activity.ID)
}

func (s *service) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteActivity(ctx, id); err != nil {
		return err
	}
	s.invalidateActivities(ctx)
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	var out []CategoryResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_CATEGORIES_ALL, constants.TTL_CATEGORIES_ALL, func() (interface{}, error) {
		list, err := s.repo.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		resp := make([]CategoryResponse, len(list))
		for i := range list {
			resp[i] = list[i].ToResponse()
		}
		return resp, nil
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []CategoryResponse{}
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	slug := GenerateSlug(name)
	if slug == "" {
		return nil, ErrInvalidTitle
	}
	if _, err := s.repo.GetCategoryBySlug(ctx, slug); err == nil {
		return nil, ErrCategoryExists
	}

	category := &Category{Name: name, Slug: slug}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategories(ctx)
	resp := category.ToResponse()
	return &resp, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories(ctx)
	s.invalidateActivities(ctx)
	return nil
}

func (s *service) reload(ctx context.Context, id uuid.UUID) (*ActivityResponse, error) {
	activity, err := s.repo.GetActivityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := activity.ToResponse()
	return &resp, nil
}

// uniqueSlug derives a slug from title, suffixing -2, -3, ... on collision
func (s *service) uniqueSlug(ctx context.Context, title string, exclude uuid.UUID) (string, error) {
	base := GenerateSlug(title)
	if base == "" {
		return "", ErrInvalidTitle
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.ActivitySlugExists(ctx, slug, exclude)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// resolveCategory maps an empty id to no category and checks others exist
func (s *service) resolveCategory(ctx context.Context, raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *service) invalidateActivities(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ACTIVITIES_ALL); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate activity cache", "error", err)
	}
}

func (s *service) invalidateCategories(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_CATEGORIES_ALL); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate category cache", "error", err)
	}
}
