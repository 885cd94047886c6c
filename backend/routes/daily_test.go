package routes_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyEntryLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "daily@example.com")

	status, result := doJSON(t, app, "GET", "/api/daily/today", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "No entry for today", result["message"])
	assert.Contains(t, result, "entry")
	assert.Nil(t, result["entry"])

	status, result = doJSON(t, app, "POST", "/api/daily/entries", token, map[string]interface{}{
		"skillPoints": 5, "careerPoints": 5, "projectPoints": 5, "notes": "big day",
	})
	require.Equal(t, fiber.StatusCreated, status)
	entry := result["entry"].(map[string]interface{})
	assert.Equal(t, "2025-06-11", entry["entry_date"])
	assert.Equal(t, float64(3), entry["skill_points"])
	assert.Equal(t, float64(9), entry["total_score"])
	firstID := entry["id"]

	status, result = doJSON(t, app, "POST", "/api/daily/entries", token, map[string]interface{}{
		"skillPoints": 0, "careerPoints": 1, "projectPoints": -4,
	})
	require.Equal(t, fiber.StatusOK, status)
	entry = result["entry"].(map[string]interface{})
	assert.Equal(t, firstID, entry["id"])
	assert.Equal(t, float64(1), entry["total_score"])
	assert.Equal(t, "", entry["notes"])

	status, result = doJSON(t, app, "GET", "/api/daily/entries", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, result["entries"], 1)

	status, result = doJSON(t, app, "GET", "/api/daily/today", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotNil(t, result["entry"])
}

func TestCreateEntryRequiresAllPoints(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "missing@example.com")

	status, result := doJSON(t, app, "POST", "/api/daily/entries", token, map[string]int{
		"skillPoints": 0, "careerPoints": 0,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	details := result["details"].(map[string]interface{})
	assert.Equal(t, "required", details["projectPoints"])
	assert.NotContains(t, details, "skillPoints")
}

func TestDailyStats(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "stats@example.com")

	status, result := doJSON(t, app, "GET", "/api/daily/stats", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	stats := result["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["totalEntries"])
	assert.Equal(t, float64(0), stats["currentStreak"])

	doJSON(t, app, "POST", "/api/daily/entries", token, map[string]int{
		"skillPoints": 3, "careerPoints": 2, "projectPoints": 2,
	})

	status, result = doJSON(t, app, "GET", "/api/daily/stats", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	stats = result["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalEntries"])
	assert.Equal(t, float64(7), stats["totalScore"])
	assert.Equal(t, float64(7), stats["averageScore"])
	assert.Equal(t, float64(1), stats["currentStreak"])
	assert.Equal(t, float64(1), stats["longestStreak"])
}

func TestEntriesAreScopedToUser(t *testing.T) {
	app := newTestApp(t)
	alice := registerUser(t, app, "alice@example.com")
	bob := registerUser(t, app, "bob@example.com")

	doJSON(t, app, "POST", "/api/daily/entries", alice, map[string]int{
		"skillPoints": 1, "careerPoints": 1, "projectPoints": 1,
	})

	_, result := doJSON(t, app, "GET", "/api/daily/entries", bob, nil)
	assert.Empty(t, result["entries"])
}
