package bookings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zombieland/internal/pricing"
	"zombieland/internal/shared/config"
	"zombieland/internal/shared/constants"
	"zombieland/internal/shared/middleware"
)

func asCaller(id uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id.String())
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func newTestRouter(f fixture, caller gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupBookingRoutes(r.Group("/api/v1"), NewController(f.svc), caller)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestQuoteEndpointIsPublic(t *testing.T) {
	f := newFixture(t, config.BookingConfig{})
	r := newTestRouter(f, func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	w := postJSON(r, "/api/v1/quotes", `{"date_start":"2024-11-09","date_end":"2024-11-12","number_tickets":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data pricing.Quote `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Total != 140 {
		t.Fatalf("total = %v, want 140", resp.Data.Total)
	}
}

func TestQuoteEndpointRejectsZeroTickets(t *testing.T) {
	f := newFixture(t, config.BookingConfig{})
	r := newTestRouter(f, asCaller(uuid.New(), constants.RoleUser))

	w := postJSON(r, "/api/v1/quotes", `{"date_start":"2024-11-09","number_tickets":0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateReservationGapIsUnprocessable(t *testing.T) {
	f := newFixture(t, config.BookingConfig{})
	r := newTestRouter(f, asCaller(f.visitor.ID, constants.RoleUser))

	w := postJSON(r, "/api/v1/bookings", `{"date_start":"2024-11-19","date_end":"2024-11-22","number_tickets":1}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestCreateReservationEndpoint(t *testing.T) {
	f := newFixture(t, config.BookingConfig{})
	r := newTestRouter(f, asCaller(f.visitor.ID, constants.RoleUser))

	w := postJSON(r, "/api/v1/bookings", `{"date_start":"2024-11-09","date_end":"2024-11-12","number_tickets":2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data ReservationResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.TotalPrice != 140 || resp.Data.UserID != f.visitor.ID {
		t.Fatalf("unexpected reservation %+v", resp.Data)
	}
}

func TestGetReservationOfAnotherVisitorIsForbidden(t *testing.T) {
	res := confirmed(uuid.New(), "2024-11-09", "2024-11-12")
	f := newFixture(t, config.BookingConfig{}, res)
	r := newTestRouter(f, asCaller(uuid.New(), constants.RoleUser))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+res.ID.String(), nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestDownloadTicket(t *testing.T) {
	owner := uuid.New()
	res := confirmed(owner, "2024-11-09", "2024-11-12")
	f := newFixture(t, config.BookingConfig{}, res)
	r := newTestRouter(f, asCaller(owner, constants.RoleUser))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+res.ID.String()+"/ticket", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestCancelStartedReservationConflicts(t *testing.T) {
	owner := uuid.New()
	res := confirmed(owner, "2024-10-15", "2024-10-16")
	f := newFixture(t, config.BookingConfig{}, res)
	r := newTestRouter(f, asCaller(owner, constants.RoleUser))

	w := postJSON(r, "/api/v1/bookings/"+res.ID.String()+"/cancel", ``)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestAdminStatsRequiresAdmin(t *testing.T) {
	f := newFixture(t, config.BookingConfig{})

	w := httptest.NewRecorder()
	newTestRouter(f, asCaller(uuid.New(), constants.RoleUser)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/stats", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	newTestRouter(f, asCaller(uuid.New(), constants.RoleAdmin)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAdminListPaginates(t *testing.T) {
	f := newFixture(t, config.BookingConfig{}, confirmed(uuid.New(), "2024-11-09", "2024-11-12"))
	r := newTestRouter(f, asCaller(uuid.New(), constants.RoleAdmin))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings?page=1&limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data PaginatedReservations `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Pagination.Total != 1 || resp.Data.Pagination.Limit != 5 {
		t.Fatalf("unexpected pagination %+v", resp.Data.Pagination)
	}
}
