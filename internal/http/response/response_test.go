package response

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, map[string]string{"id": "anime-123"}, "Anime fetched", discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Anime fetched", env.Message)
	assert.Nil(t, env.Error)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "anime-123", data["id"])
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()

	Created(w, map[string]string{"id": "ep-1"}, "Episode created", discardLogger())

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
}

func TestEnvelopeKeysAlwaysPresent(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, nil, "ok", discardLogger())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))

	for _, key := range []string{"success", "data", "message", "error"} {
		_, present := raw[key]
		assert.True(t, present, "envelope missing %q", key)
	}
	assert.Len(t, raw, 4)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad request",
			write:      func(w http.ResponseWriter) { BadRequest(w, "bad input", discardLogger()) },
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
		},
		{
			name:       "unauthorized",
			write:      func(w http.ResponseWriter) { Unauthorized(w, "token required", discardLogger()) },
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "forbidden",
			write:      func(w http.ResponseWriter) { Forbidden(w, "admins only", discardLogger()) },
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "not found",
			write:      func(w http.ResponseWriter) { NotFound(w, "no such anime", discardLogger()) },
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "too many requests",
			write:      func(w http.ResponseWriter) { TooManyRequests(w, "slow down", discardLogger()) },
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "RATE_LIMIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Error)
		})
	}
}

func TestInternalErrorIsGeneric(t *testing.T) {
	w := httptest.NewRecorder()

	InternalError(w, discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)
	assert.Equal(t, "INTERNAL", env.Error)
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.NotFound("anime not found"), discardLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "anime not found", env.Message)
	assert.Equal(t, "NOT_FOUND", env.Error)
}

func TestHandleError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()

	err := domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"email": "must be a valid email",
	})
	HandleError(w, err, discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "VALIDATION", env.Error)

	details, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "email")
}

func TestHandleError_StoreError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, store.ErrNotFound.WithMessage("episode not found"), discardLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "episode not found", env.Message)
}

func TestHandleError_UnknownErrorIsMasked(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, assert.AnError, discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
