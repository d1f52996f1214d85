package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zombieland/internal/shared/middleware"
	"zombieland/pkg/cache"
)

// asCaller stands in for the JWT middleware
func asCaller(id uuid.UUID, role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id.String())
		c.Set(middleware.ContextUserRole, string(role))
		c.Next()
	}
}

func newTestRouter(repo *fakeRepo, caller gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupUserRoutes(r.Group("/api/v1"), NewController(NewService(repo, cache.NewNoop())), caller)
	return r
}

func TestGetMeReturnsProfile(t *testing.T) {
	u := sampleUser(RoleUser)
	r := newTestRouter(newFakeRepo(u), asCaller(u.ID, RoleUser))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data UserResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Email != u.Email {
		t.Fatalf("email = %q", resp.Data.Email)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatal("password must never be serialized")
	}
}

func TestUpdateMeValidatesBody(t *testing.T) {
	u := sampleUser(RoleUser)
	r := newTestRouter(newFakeRepo(u), asCaller(u.ID, RoleUser))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/me", bytes.NewBufferString(`{"first_name":"R"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	u := sampleUser(RoleUser)
	r := newTestRouter(newFakeRepo(u), asCaller(u.ID, RoleUser))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAdminDeleteUnknownUser(t *testing.T) {
	admin := sampleUser(RoleAdmin)
	r := newTestRouter(newFakeRepo(admin), asCaller(admin.ID, RoleAdmin))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/"+uuid.NewString(), nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestListRolesIsPublic(t *testing.T) {
	r := newTestRouter(newFakeRepo(), func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
