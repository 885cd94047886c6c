package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"tracker/backend/config"
	"tracker/backend/routes"
	"tracker/backend/services"
	"tracker/backend/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithLogger(t, zap.NewNop())
}

func newTestAppWithLogger(t *testing.T, logger *zap.Logger) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:   "testsecret",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
		CORSOrigins: "*",
		CacheTTL:    time.Minute,
	}
	svc := services.New(storage.NewMemoryKV(), cfg, logger,
		services.WithClock(func() time.Time { return fixedNow }))
	return routes.NewApp(svc, cfg, logger)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			jsonData, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewBuffer(jsonData)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result), string(raw))
	}
	return resp.StatusCode, result
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, result := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, status)
	token, ok := result["token"].(string)
	require.True(t, ok)
	return token
}
