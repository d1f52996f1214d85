package activities

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zombieland/internal/shared/constants"
	"zombieland/internal/shared/middleware"
	"zombieland/pkg/cache"
)

func asRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uuid.NewString())
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func newTestRouter(caller gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupActivityRoutes(r.Group("/api/v1"), NewController(NewService(newFakeRepo(), cache.NewNoop())), caller)
	return r
}

func TestPublicActivityRoutes(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	for _, path := range []string{"/api/v1/activities", "/api/v1/categories"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
	}
}

func TestCreateActivityRequiresAdmin(t *testing.T) {
	body := `{"title":"Zombie Run"}`
	for role, want := range map[string]int{constants.RoleUser: http.StatusForbidden, constants.RoleAdmin: http.StatusCreated} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/activities", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(asRole(role)).ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("%s: status = %d, want %d", role, w.Code, want)
		}
	}
}

func TestCreateActivityRejectsBadMediaURL(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/activities", bytes.NewBufferString(`{"title":"Zombie Run","multimedias":["not a url"]}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(asRole(constants.RoleAdmin)).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetActivityNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(asRole(constants.RoleUser)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/activities/"+uuid.NewString(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
