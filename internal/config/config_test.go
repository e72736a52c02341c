package config_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quiz-categorias/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"QUIZ_API_URL", "NEXT_PUBLIC_API_URL", "QUIZ_API_TIMEOUT", "QUIZ_USER", "PORT", "JOURNAL_DRIVER", "DATABASE_DSN", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		s, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, config.DefaultAPIURL, s.APIURL)
		assert.Equal(t, config.DefaultUser, s.UserName)
		assert.Equal(t, config.DefaultPort, s.Port)
		assert.Equal(t, config.DefaultTimeout, s.APITimeout)
		assert.Empty(t, s.JournalDriver)
	})

	t.Run("LegacyURLVariable", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEXT_PUBLIC_API_URL", "http://localhost:3000/api/")

		s, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000/api", s.APIURL)
	})

	t.Run("PrimaryURLWins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEXT_PUBLIC_API_URL", "http://legacy")
		t.Setenv("QUIZ_API_URL", "http://primary")

		s, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "http://primary", s.APIURL)
	})

	t.Run("TimeoutFormats", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("QUIZ_API_TIMEOUT", "15")
		s, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, s.APITimeout)

		t.Setenv("QUIZ_API_TIMEOUT", "250ms")
		s, err = config.Load()
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, s.APITimeout)

		t.Setenv("QUIZ_API_TIMEOUT", "soon")
		s, err = config.Load()
		require.NoError(t, err)
		assert.Equal(t, config.DefaultTimeout, s.APITimeout)
	})

	t.Run("InvalidJournalDriver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("JOURNAL_DRIVER", "mongo")

		_, err := config.Load()
		assert.ErrorIs(t, err, config.ErrInvalidJournalDriver)
	})

	t.Run("JournalNeedsDSN", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("JOURNAL_DRIVER", "sqlite")

		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestWithContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = config.ContextWithSession(ctx, "sess-1")

	entry := config.WithContext(ctx)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, "sess-1", entry.Data["session_id"])

	assert.Empty(t, config.WithContext(context.Background()).Data)
}

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	config.Error(rr, 409, "busy")

	assert.Equal(t, 409, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"busy"}`, rr.Body.String())
}
