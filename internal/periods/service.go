package periods

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/pricing"
	"zombieland/internal/shared/constants"
	"zombieland/pkg/cache"
	"zombieland/pkg/logger"
)

type Service interface {
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)
	GetPeriod(ctx context.Context, id uuid.UUID) (*PeriodResponse, error)

	// PricingPeriods feeds the price calculator
	PricingPeriods(ctx context.Context) ([]pricing.Period, error)

	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (*PeriodResponse, error)
	UpdatePeriod(ctx context.Context, id uuid.UUID, req UpdatePeriodRequest) (*PeriodResponse, error)
	DeletePeriod(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) ListPeriods(ctx context.Context) ([]PeriodResponse, error) {
	var out []PeriodResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_PERIODS_ALL, constants.TTL_PERIODS_LIST, func() (interface{}, error) {
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list periods: %w", err)
		}
		resp := make([]PeriodResponse, len(list))
		for i := range list {
			resp[i] = list[i].ToResponse()
		}
		return resp, nil
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []PeriodResponse{}
	}
	return out, nil
}

func (s *service) GetPeriod(ctx context.Context, id uuid.UUID) (*PeriodResponse, error) {
	var out PeriodResponse
	err := s.cache.GetOrSet(ctx, constants.BuildPeriodDetailKey(id.String()), constants.TTL_PERIODS_DETAIL, func() (interface{}, error) {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return p.ToResponse(), nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) PricingPeriods(ctx context.Context) ([]pricing.Period, error) {
	list, err := s.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]pricing.Period, len(list))
	for i, p := range list {
		out[i] = p.Pricing()
	}
	return out, nil
}

func (s *service) CreatePeriod(ctx context.Context, req CreatePeriodRequest) (*PeriodResponse, error) {
	if err := validateRange(req.DateStart, req.DateEnd); err != nil {
		return nil, err
	}

	period := &Period{
		Name:      strings.TrimSpace(req.Name),
		DateStart: req.DateStart,
		DateEnd:   req.DateEnd,
		Price:     *req.Price,
	}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	s.invalidate(ctx)
	resp := period.ToResponse()
	return &resp, nil
}

func (s *service) UpdatePeriod(ctx context.Context, id uuid.UUID, req UpdatePeriodRequest) (*PeriodResponse, error) {
	period, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		period.Name = strings.TrimSpace(*req.Name)
	}
	if req.DateStart != nil {
		period.DateStart = *req.DateStart
	}
	if req.DateEnd != nil {
		period.DateEnd = *req.DateEnd
	}
	if req.Price != nil {
		period.Price = *req.Price
	}
	if err := validateRange(period.DateStart, period.DateEnd); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, period); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	resp := period.ToResponse()
	return &resp, nil
}

func (s *service) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PERIODS_ALL); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate period cache", "error", err)
	}
}

// validateRange enforces start <= end; overlap with other periods is allowed
func validateRange(start, end calendar.Date) error {
	if start.IsZero() || end.IsZero() {
		return ErrDatesRequired
	}
	if end.Before(start) {
		return ErrInvalidRange
	}
	return nil
}
