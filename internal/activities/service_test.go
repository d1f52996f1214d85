package activities

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"zombieland/pkg/cache"
)

type fakeRepo struct {
	activities map[uuid.UUID]*Activity
	categories map[uuid.UUID]*Category
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{activities: map[uuid.UUID]*Activity{}, categories: map[uuid.UUID]*Category{}}
}

func (r *fakeRepo) CreateActivity(_ context.Context, a *Activity) error {
	a.ID = uuid.New()
	for i := range a.Multimedias {
		a.Multimedias[i].ID = uuid.New()
		a.Multimedias[i].ActivityID = a.ID
	}
	r.activities[a.ID] = a
	return nil
}

func (r *fakeRepo) GetActivityByID(_ context.Context, id uuid.UUID) (*Activity, error) {
	a, ok := r.activities[id]
	if !ok {
		return nil, ErrActivityNotFound
	}
	cp := *a
	if cp.CategoryID != nil {
		cp.Category = r.categories[*cp.CategoryID]
	}
	return &cp, nil
}

func (r *fakeRepo) ListActivities(_ context.Context, q ActivityListQuery) ([]Activity, int64, error) {
	var out []Activity
	for _, a := range r.activities {
		if q.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(q.Search)) {
			continue
		}
		if q.CategoryID != "" && (a.CategoryID == nil || a.CategoryID.String() != q.CategoryID) {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) UpdateActivity(_ context.Context, a *Activity, media *[]string) error {
	if _, ok := r.activities[a.ID]; !ok {
		return ErrActivityNotFound
	}
	if media != nil {
		a.Multimedias = buildMultimedias(a.ID, *media)
	}
	cp := *a
	r.activities[a.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteActivity(_ context.Context, id uuid.UUID) error {
	if _, ok := r.activities[id]; !ok {
		return ErrActivityNotFound
	}
	delete(r.activities, id)
	return nil
}

func (r *fakeRepo) ActivitySlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	for _, a := range r.activities {
		if a.Slug == slug && a.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateCategory(_ context.Context, c *Category) error {
	c.ID = uuid.New()
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (*Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeRepo) GetCategoryBySlug(_ context.Context, slug string) (*Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *fakeRepo) ListCategories(context.Context) ([]Category, error) {
	var out []Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	for _, a := range r.activities {
		if a.CategoryID != nil && *a.CategoryID == id {
			a.CategoryID = nil
		}
	}
	delete(r.categories, id)
	return nil
}

func TestCreateActivityWithCategoryAndMedia(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, cache.NewNoop())
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Sensations fortes"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	a, err := svc.CreateActivity(ctx, CreateActivityRequest{
		Title:       "Le Manège Hanté",
		Description: "Un manège infesté.",
		CategoryID:  cat.ID.String(),
		Multimedias: []string{"https://cdn.zombieland.fr/manege.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}
	if a.Slug != "le-manege-hante" {
		t.Fatalf("slug = %q", a.Slug)
	}
	if a.Category == nil || a.Category.Slug != "sensations-fortes" {
		t.Fatalf("category = %+v", a.Category)
	}
	if len(a.Multimedias) != 1 || a.Multimedias[0].URL != "https://cdn.zombieland.fr/manege.jpg" {
		t.Fatalf("multimedias = %+v", a.Multimedias)
	}
}

func TestCreateActivitySlugCollision(t *testing.T) {
	svc := NewService(newFakeRepo(), cache.NewNoop())
	ctx := context.Background()

	first, err := svc.CreateActivity(ctx, CreateActivityRequest{Title: "Zombie Run"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.CreateActivity(ctx, CreateActivityRequest{Title: "Zombie run!"})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.Slug != "zombie-run" || second.Slug != "zombie-run-2" {
		t.Fatalf("slugs = %q, %q", first.Slug, second.Slug)
	}
}

func TestCreateActivityUnknownCategory(t *testing.T) {
	svc := NewService(newFakeRepo(), cache.NewNoop())

	_, err := svc.CreateActivity(context.Background(), CreateActivityRequest{Title: "Zombie Run", CategoryID: uuid.NewString()})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestUpdateActivityReplacesMedia(t *testing.T) {
	svc := NewService(newFakeRepo(), cache.NewNoop())
	ctx := context.Background()

	a, err := svc.CreateActivity(ctx, CreateActivityRequest{Title: "Zombie Run", Multimedias: []string{"https://x.fr/a.jpg", "https://x.fr/b.jpg"}})
	if err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	media := []string{"https://x.fr/c.jpg"}
	title := "Zombie Run Nocturne"
	got, err := svc.UpdateActivity(ctx, a.ID, UpdateActivityRequest{Title: &title, Multimedias: &media})
	if err != nil {
		t.Fatalf("UpdateActivity: %v", err)
	}
	if got.Slug != "zombie-run-nocturne" || len(got.Multimedias) != 1 || got.Multimedias[0].URL != "https://x.fr/c.jpg" {
		t.Fatalf("unexpected activity %+v", got)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	svc := NewService(newFakeRepo(), cache.NewNoop())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Famille"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: " famille "}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("err = %v, want ErrCategoryExists", err)
	}
}

func TestDeleteCategoryDetachesActivities(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, cache.NewNoop())
	ctx := context.Background()

	cat, _ := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Famille"})
	a, _ := svc.CreateActivity(ctx, CreateActivityRequest{Title: "Mini Zombies", CategoryID: cat.ID.String()})

	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	got, err := svc.GetActivity(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("category still attached: %v", got.CategoryID)
	}
}

func TestListActivitiesPagination(t *testing.T) {
	svc := NewService(newFakeRepo(), cache.NewNoop())
	ctx := context.Background()
	for _, title := range []string{"Zombie Run", "Laser Game", "Le Manège Hanté"} {
		if _, err := svc.CreateActivity(ctx, CreateActivityRequest{Title: title}); err != nil {
			t.Fatalf("CreateActivity: %v", err)
		}
	}

	page, err := svc.ListActivities(ctx, ActivityListQuery{Search: "zombie"})
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(page.Activities) != 1 || page.Pagination.Limit != 12 || page.Pagination.Page != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}
