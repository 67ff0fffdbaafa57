package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{apperr.NewValidationError("x"), http.StatusBadRequest},
		{fmt.Errorf("auth.Register: %w", apperr.ErrConflict), http.StatusConflict},
		{apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperr.ErrTokenMissing, http.StatusUnauthorized},
		{fmt.Errorf("jwt.ParseToken: %w", apperr.ErrTokenExpired), http.StatusUnauthorized},
		{apperr.ErrTokenInvalid, http.StatusUnauthorized},
		{fmt.Errorf("todo.Get: %w", apperr.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("todo.Get: %w", apperr.ErrNotFound), http.StatusNotFound},
		{apperr.ErrLocked, http.StatusLocked},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, _ := StatusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Run("validation reasons are returned", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)

		WriteError(w, r, sl.NewDiscardLogger(), apperr.NewValidationError("Name is required", "Password is required"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var got Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.False(t, got.Success)
		assert.Equal(t, MsgValidation, got.Message)
		assert.Equal(t, []string{"Name is required", "Password is required"}, got.Errors)
		_, err := time.Parse(time.RFC3339, got.Timestamp)
		assert.NoError(t, err)
	})

	t.Run("internal details are hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		WriteError(w, r, sl.NewDiscardLogger(), errors.New("storage.GetTodo: dial tcp 10.0.0.5:5432"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
		assert.Contains(t, w.Body.String(), MsgInternal)
	})
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Write(w, r, http.StatusCreated, OK("todo created", map[string]string{"id": "1"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"1"}`, mustField(t, w.Body.Bytes(), "data"))
	assert.NotContains(t, w.Body.String(), `"errors"`)
}

func TestValidationError(t *testing.T) {
	type query struct {
		Limit int `validate:"min=0"`
	}
	err := validator.New().Struct(query{Limit: -1})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	resp := ValidationError(verrs)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"field Limit must be at least 0"}, resp.Errors)
}

func mustField(t *testing.T, body []byte, field string) string {
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return string(m[field])
}
