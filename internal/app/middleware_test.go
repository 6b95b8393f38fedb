package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyMiddlewareDisabledWithoutHash(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := APIKeyMiddleware("", logger)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/sections", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyMiddlewareChecksBearerKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-key"), bcrypt.MinCost)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := APIKeyMiddleware(string(hash), logger)(okHandler())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid key", "Bearer s3cret-key", http.StatusOK},
		{"lowercase scheme", "bearer s3cret-key", http.StatusOK},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret-key", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reports/sections", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
