package response_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusconnect/campusconnect-server/internal/errors"
	"github.com/campusconnect/campusconnect-server/internal/http/response"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"status": "ok"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, http.StatusBadRequest, "bad input", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"error":"bad input"`)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleError_DomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        errors.NotFound("user not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   "user not found",
		},
		{
			name:       "forbidden",
			err:        errors.Forbidden("not available in production"),
			wantStatus: http.StatusForbidden,
			wantBody:   "not available in production",
		},
		{
			name:       "validation with details",
			err:        errors.ValidationWithDetails("validation failed", map[string]string{"email": "is required"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"email":"is required"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.HandleError(rec, tt.err, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), tt.wantBody),
				"body %q should contain %q", rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleError_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, assert.AnError, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
