package periods

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPeriodNotFound = errors.New("period not found")
	ErrInvalidRange   = errors.New("date_end must not be before date_start")
	ErrDatesRequired  = errors.New("date_start and date_end are required")
)

type Repository interface {
	Create(ctx context.Context, period *Period) error
	GetByID(ctx context.Context, id uuid.UUID) (*Period, error)
	List(ctx context.Context) ([]Period, error)
	Update(ctx context.Context, period *Period) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, period *Period) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Period, error) {
	var period Period
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	return &period, nil
}

// List returns every period ordered by start date
func (r *repository) List(ctx context.Context) ([]Period, error) {
	var periods []Period
	err := r.db.WithContext(ctx).Order("date_start ASC").Order("id ASC").Find(&periods).Error
	return periods, err
}

func (r *repository) Update(ctx context.Context, period *Period) error {
	result := r.db.WithContext(ctx).Model(period).Select("name", "date_start", "date_end", "price").Updates(period)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPeriodNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Period{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPeriodNotFound
	}
	return nil
}
