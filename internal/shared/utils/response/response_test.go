package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit int
		total       int64
		wantPages   int
	}{
		{1, 10, 0, 0},
		{1, 10, 10, 1},
		{2, 10, 11, 2},
		{1, 0, 5, 0},
	}
	for _, tt := range tests {
		if got := NewPagination(tt.page, tt.limit, tt.total); got.TotalPages != tt.wantPages {
			t.Errorf("NewPagination(%d,%d,%d).TotalPages = %d, want %d", tt.page, tt.limit, tt.total, got.TotalPages, tt.wantPages)
		}
	}
}

func TestValidationErrorListsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type body struct {
		Email string `validate:"required,email"`
	}
	err := validator.New().Struct(body{Email: "nope"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ValidationError(c, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Status string       `json:"status"`
		Errors []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "error" || len(resp.Errors) != 1 || resp.Errors[0].Field != "Email" || resp.Errors[0].Rule != "email" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
