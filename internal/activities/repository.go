package activities

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("a category with a similar name already exists")
	ErrInvalidTitle     = errors.New("title must contain at least one alphanumeric character")
)

type Repository interface {
	// Activities
	CreateActivity(ctx context.Context, activity *Activity) error
	GetActivityByID(ctx context.Context, id uuid.UUID) (*Activity, error)
	ListActivities(ctx context.Context, query ActivityListQuery) ([]Activity, int64, error)
	// UpdateActivity saves scalar fields and, when media is non-nil, replaces the media list
	UpdateActivity(ctx context.Context, activity *Activity, media *[]string) error
	DeleteActivity(ctx context.Context, id uuid.UUID) error
	ActivitySlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)

	// Categories
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateActivity(ctx context.Context, activity *Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repository) GetActivityByID(ctx context.Context, id uuid.UUID) (*Activity, error) {
	var activity Activity
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Multimedias").
		Where("id = ?", id).
		First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *repository) ListActivities(ctx context.Context, query ActivityListQuery) ([]Activity, int64, error) {
	query.normalize()

	db := r.db.WithContext(ctx).Model(&Activity{})
	if query.Search != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(query.Search)) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if query.CategoryID != "" {
		if categoryID, err := uuid.Parse(query.CategoryID); err == nil {
			db = db.Where("category_id = ?", categoryID)
		}
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Activity
	err := db.Preload("Category").
		Preload("Multimedias").
		Order("title ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&list).Error
	return list, total, err
}

func (r *repository) UpdateActivity(ctx context.Context, activity *Activity, media *[]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(activity).Select("title", "slug", "description", "category_id").Updates(activity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrActivityNotFound
		}
		if media == nil {
			return nil
		}

		if err := tx.Where("activity_id = ?", activity.ID).Delete(&Multimedia{}).Error; err != nil {
			return err
		}
		activity.Multimedias = buildMultimedias(activity.ID, *media)
		if len(activity.Multimedias) == 0 {
			return nil
		}
		return tx.Create(&activity.Multimedias).Error
	})
}

func (r *repository) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Activity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *repository) ActivitySlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Activity{}).Where("slug = ?", slug)
	if exclude != uuid.Nil {
		db = db.Where("id <> ?", exclude)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// DeleteCategory detaches the category's activities before removing it
func (r *repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Activity{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

func buildMultimedias(activityID uuid.UUID, urls []string) []Multimedia {
	out := make([]Multimedia, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, Multimedia{URL: u, ActivityID: activityID})
		}
	}
	return out
}
