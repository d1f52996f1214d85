package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zombieland/internal/calendar"
)

var ErrReservationNotFound = errors.New("reservation not found")

// Totals aggregates active reservations over a time window
type Totals struct {
	Tickets int64   `gorm:"column:tickets"`
	Revenue float64 `gorm:"column:revenue"`
}

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	List(ctx context.Context, query ReservationListQuery) ([]Reservation, int64, error)
	Update(ctx context.Context, reservation *Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CompleteFinished marks confirmed reservations that ended before today as completed
	CompleteFinished(ctx context.Context, today calendar.Date) (int64, error)
	// TotalsBetween sums tickets and revenue of reservations created in [from, to)
	TotalsBetween(ctx context.Context, from, to time.Time) (Totals, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Period").
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Preload("Period").
		Where("user_id = ?", userID).
		Order("date_start DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) List(ctx context.Context, query ReservationListQuery) ([]Reservation, int64, error) {
	query.normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&Reservation{}).Scopes(listFilters(query)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Scopes(listFilters(query)).
		Select("reservations.*").
		Preload("User").
		Preload("Period").
		Order("reservations.date_start DESC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&reservations).Error

	return reservations, total, err
}

// listFilters applies the admin search: free text over visitor names,
// period name and dates, plus exact period and status filters
func listFilters(query ReservationListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("LEFT JOIN users ON users.id = reservations.user_id").
			Joins("LEFT JOIN periods ON periods.id = reservations.period_id")

		if search := strings.TrimSpace(query.Search); search != "" {
			like := "%" + search + "%"
			db = db.Where(
				"users.first_name ILIKE ? OR users.last_name ILIKE ? OR periods.name ILIKE ? OR "+
					"CAST(reservations.date_start AS TEXT) LIKE ? OR CAST(reservations.date_end AS TEXT) LIKE ?",
				like, like, like, like, like,
			)
		}
		if query.PeriodID != "" {
			if periodID, err := uuid.Parse(query.PeriodID); err == nil {
				db = db.Where("reservations.period_id = ?", periodID)
			}
		}
		if query.Status != "" {
			db = db.Where("reservations.status = ?", query.Status)
		}
		return db
	}
}

func (r *repository) Update(ctx context.Context, reservation *Reservation) error {
	result := r.db.WithContext(ctx).
		Model(reservation).
		Select("period_id", "date_start", "date_end", "number_tickets", "total_price", "status", "cancelled_at").
		Updates(reservation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Reservation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) CompleteFinished(ctx context.Context, today calendar.Date) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("status = ? AND date_end < ?", StatusConfirmed, today).
		Updates(map[string]interface{}{
			"status":     StatusCompleted,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *repository) TotalsBetween(ctx context.Context, from, to time.Time) (Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Select("COALESCE(SUM(number_tickets), 0) AS tickets, COALESCE(SUM(total_price), 0) AS revenue").
		Where("status <> ?", StatusCancelled).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&totals).Error
	return totals, err
}
