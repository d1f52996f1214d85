package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/notifications"
	"zombieland/internal/pricing"
	"zombieland/internal/shared/config"
	"zombieland/internal/shared/constants"
	"zombieland/internal/shared/utils/response"
	"zombieland/internal/users"
	"zombieland/pkg/cache"
	"zombieland/pkg/logger"
)

var (
	ErrDateStartRequired  = errors.New("date_start is required")
	ErrDateInPast         = errors.New("date_start must not be in the past")
	ErrPricingGap         = errors.New("some days of the selected window have no pricing period")
	ErrZeroTotal          = errors.New("the selected window has no price")
	ErrTooManyTickets     = errors.New("too many tickets for one reservation")
	ErrForbidden          = errors.New("reservation belongs to another visitor")
	ErrNotCancellable     = errors.New("only confirmed reservations can be cancelled")
	ErrCancellationClosed = errors.New("reservations can only be cancelled before their first day")
	ErrTicketUnavailable  = errors.New("cancelled reservations have no ticket")
)

// PeriodSource provides the pricing periods in force
type PeriodSource interface {
	PricingPeriods(ctx context.Context) ([]pricing.Period, error)
}

// UserFinder resolves reservation owners
type UserFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

type Service interface {
	// Quote prices a window without booking it; gaps are reported, not rejected
	Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error)

	CreateReservation(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*ReservationResponse, error)
	ListUserReservations(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error)
	GetReservation(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) (*ReservationResponse, error)
	CancelReservation(ctx context.Context, id, callerID uuid.UUID) (*ReservationResponse, error)
	Ticket(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) ([]byte, string, error)

	// Admin operations
	ListReservations(ctx context.Context, query ReservationListQuery) (*PaginatedReservations, error)
	AdminCreateReservation(ctx context.Context, req AdminCreateReservationRequest) (*ReservationResponse, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, req AdminUpdateReservationRequest) (*ReservationResponse, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsResponse, error)

	// CompleteFinished is run by the background job
	CompleteFinished(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	periods   PeriodSource
	users     UserFinder
	publisher notifications.Publisher
	cache     cache.Service
	policy    config.BookingConfig
	now       func() time.Time
}

func NewService(
	repo Repository,
	periods PeriodSource,
	users UserFinder,
	publisher notifications.Publisher,
	cacheService cache.Service,
	policy config.BookingConfig,
) Service {
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	return &service{
		repo:      repo,
		periods:   periods,
		users:     users,
		publisher: publisher,
		cache:     cacheService,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *service) today() calendar.Date {
	return calendar.DateOf(s.now())
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	sel, err := req.Selection()
	if err != nil {
		return nil, err
	}
	list, err := s.periods.PricingPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing periods: %w", err)
	}
	quote := pricing.Calculate(sel, req.Tickets(), list)
	return &quote, nil
}

// price quotes a window and applies the reservation policy to the result
func (s *service) price(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	tickets := req.Tickets()
	if s.policy.MaxTickets > 0 && tickets > s.policy.MaxTickets {
		return nil, fmt.Errorf("%w: at most %d", ErrTooManyTickets, s.policy.MaxTickets)
	}

	quote, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}
	if quote.HasGaps() {
		logger.GetDefault().LogPricingGap(ctx, quote.DateStart.String(), quote.DateEnd.String(), len(quote.Gaps))
		if !s.policy.AllowPricingGaps {
			return nil, ErrPricingGap
		}
	}
	if quote.Total <= 0 {
		return nil, ErrZeroTotal
	}
	return quote, nil
}

func (s *service) CreateReservation(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*ReservationResponse, error) {
	if !req.DateStart.IsZero() && req.DateStart.Before(s.today()) {
		return nil, ErrDateInPast
	}
	return s.create(ctx, userID, req.QuoteRequest)
}

func (s *service) AdminCreateReservation(ctx context.Context, req AdminCreateReservationRequest) (*ReservationResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, users.ErrUserNotFound
	}
	return s.create(ctx, userID, req.QuoteRequest)
}

func (s *service) create(ctx context.Context, userID uuid.UUID, req QuoteRequest) (*ReservationResponse, error) {
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}

	reservation := &Reservation{
		BookingRef:    generateBookingRef(),
		UserID:        userID,
		PeriodID:      firstPeriodID(quote),
		DateStart:     quote.DateStart,
		DateEnd:       quote.DateEnd,
		NumberTickets: quote.TicketCount,
		TotalPrice:    quote.Total,
		Status:        StatusConfirmed,
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	reservation.User = owner

	logger.GetDefault().LogReservationCreated(ctx, reservation.ID.String(), userID.String(), reservation.NumberTickets, reservation.TotalPrice)
	s.invalidate(ctx, userID)
	s.publish(ctx, notifications.EventReservationConfirmed, reservation)

	resp := reservation.ToResponse()
	return &resp, nil
}

func (s *service) ListUserReservations(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error) {
	var out []ReservationResponse
	err := s.cache.GetOrSet(ctx, constants.BuildUserBookingsKey(userID.String()), constants.TTL_USER_BOOKINGS, func() (interface{}, error) {
		list, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list reservations: %w", err)
		}
		resp := make([]ReservationResponse, len(list))
		for i := range list {
			resp[i] = list[i].ToResponse()
		}
		return resp, nil
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []ReservationResponse{}
	}
	return out, nil
}

// load fetches a reservation the caller is allowed to see
func (s *service) load(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && reservation.UserID != callerID {
		return nil, ErrForbidden
	}
	return reservation, nil
}

func (s *service) GetReservation(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) (*ReservationResponse, error) {
	reservation, err := s.load(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}
	resp := reservation.ToResponse()
	return &resp, nil
}

func (s *service) CancelReservation(ctx context.Context, id, callerID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.load(ctx, id, callerID, false)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanBeCancelled() {
		return nil, ErrNotCancellable
	}
	if !reservation.CancellableOn(s.today()) {
		return nil, ErrCancellationClosed
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled, &now); err != nil {
		return nil, err
	}
	reservation.Cancel(now)

	logger.GetDefault().LogReservationCancelled(ctx, id.String(), callerID.String())
	s.invalidate(ctx, reservation.UserID)
	s.publish(ctx, notifications.EventReservationCancelled, reservation)

	resp := reservation.ToResponse()
	return &resp, nil
}

func (s *service) Ticket(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) ([]byte, string, error) {
	reservation, err := s.load(ctx, id, callerID, isAdmin)
	if err != nil {
		return nil, "", err
	}
	if reservation.IsCancelled() {
		return nil, "", ErrTicketUnavailable
	}
	pdf, err := RenderTicket(reservation)
	if err != nil {
		return nil, "", err
	}
	return pdf, reservation.TicketFilename(), nil
}

func (s *service) ListReservations(ctx context.Context, query ReservationListQuery) (*PaginatedReservations, error) {
	query.normalize()
	list, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	resp := make([]ReservationResponse, len(list))
	for i := range list {
		resp[i] = list[i].ToResponse()
	}
	return &PaginatedReservations{
		Reservations: resp,
		Pagination:   response.NewPagination(query.Page, query.Limit, total),
	}, nil
}

func (s *service) UpdateReservation(ctx context.Context, id uuid.UUID, req AdminUpdateReservationRequest) (*ReservationResponse, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DateStart != nil || req.DateEnd != nil || req.NumberTickets != nil {
		q := QuoteRequest{DateStart: reservation.DateStart, DateEnd: &reservation.DateEnd, NumberTickets: &reservation.NumberTickets}
		if req.DateStart != nil {
			q.DateStart = *req.DateStart
		}
		if req.DateEnd != nil {
			q.DateEnd = req.DateEnd
		}
		if req.NumberTickets != nil {
			q.NumberTickets = req.NumberTickets
		}

		quote, err := s.price(ctx, q)
		if err != nil {
			return nil, err
		}
		reservation.DateStart = quote.DateStart
		reservation.DateEnd = quote.DateEnd
		reservation.NumberTickets = quote.TicketCount
		reservation.TotalPrice = quote.Total
		reservation.PeriodID = firstPeriodID(quote)
		reservation.Period = nil
	}

	if req.Status != nil && *req.Status != reservation.Status {
		reservation.Status = *req.Status
		if reservation.Status == StatusCancelled {
			now := s.now()
			reservation.CancelledAt = &now
		} else {
			reservation.CancelledAt = nil
		}
	}

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.invalidate(ctx, reservation.UserID)
	s.publish(ctx, notifications.EventReservationUpdated, reservation)

	resp := reservation.ToResponse()
	return &resp, nil
}

func (s *service) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, reservation.UserID)
	return nil
}

func (s *service) Stats(ctx context.Context) (*StatsResponse, error) {
	now := s.now()
	var out StatsResponse
	err := s.cache.GetOrSet(ctx, constants.BuildBookingStatsKey(calendar.DateOf(now).String()), constants.TTL_BOOKING_STATS, func() (interface{}, error) {
		return s.computeStats(ctx, now)
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// computeStats aggregates the previous calendar day, month and year
func (s *service) computeStats(ctx context.Context, now time.Time) (*StatsResponse, error) {
	loc := now.Location()
	y, m, d := now.Date()

	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	thisMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	thisYear := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)

	daily, err := s.repo.TotalsBetween(ctx, today.AddDate(0, 0, -1), today)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	monthly, err := s.repo.TotalsBetween(ctx, thisMonth.AddDate(0, -1, 0), thisMonth)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}
	yearly, err := s.repo.TotalsBetween(ctx, thisYear.AddDate(-1, 0, 0), thisYear)
	if err != nil {
		return nil, fmt.Errorf("yearly stats: %w", err)
	}

	return &StatsResponse{
		DailyRate:      daily.Tickets,
		MonthlyRate:    monthly.Tickets,
		YearlyRate:     yearly.Tickets,
		DailyRevenue:   daily.Revenue,
		MonthlyRevenue: monthly.Revenue,
		YearlyRevenue:  yearly.Revenue,
	}, nil
}

func (s *service) CompleteFinished(ctx context.Context) (int64, error) {
	n, err := s.repo.CompleteFinished(ctx, s.today())
	if err != nil {
		return 0, fmt.Errorf("failed to complete reservations: %w", err)
	}
	if n > 0 {
		s.invalidate(ctx, uuid.Nil)
	}
	return n, nil
}

// invalidate drops the owner's cached list and every stats entry. A nil
// owner clears every visitor's list.
func (s *service) invalidate(ctx context.Context, userID uuid.UUID) {
	var err error
	if userID == uuid.Nil {
		err = s.cache.DeletePattern(ctx, constants.CACHE_KEY_USER_BOOKINGS+"*")
	} else {
		err = s.cache.Delete(ctx, constants.BuildUserBookingsKey(userID.String()))
	}
	if err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate reservation cache", "error", err)
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_BOOKING_STATS); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate stats cache", "error", err)
	}
}

// publish never fails the request; delivery problems are logged
func (s *service) publish(ctx context.Context, eventType notifications.EventType, r *Reservation) {
	event := notifications.NewReservationEvent(eventType)
	event.ReservationID = r.ID
	event.BookingRef = r.BookingRef
	event.DateStart = r.DateStart
	event.DateEnd = r.DateEnd
	event.NumberTickets = r.NumberTickets
	event.TotalPrice = r.TotalPrice
	event.RecipientID = r.UserID
	if r.User != nil {
		event.RecipientEmail = r.User.Email
		event.RecipientName = r.User.FullName()
	}

	if err := s.publisher.PublishReservation(ctx, event); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish reservation event", err, map[string]interface{}{
			"reservation_id": r.ID.String(),
			"type":           string(eventType),
		})
	}
}

// firstPeriodID is the period of the window's first day, if any
func firstPeriodID(q *pricing.Quote) *uuid.UUID {
	if len(q.Days) == 0 || q.Days[0].PeriodID == "" {
		return nil
	}
	id, err := uuid.Parse(q.Days[0].PeriodID)
	if err != nil {
		return nil
	}
	return &id
}
