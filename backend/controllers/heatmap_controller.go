package controllers

import (
	"errors"
	"strconv"

	"tracker/backend/middleware"
	"tracker/backend/services"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type HeatmapController struct {
	Habits *services.HabitService
}

func NewHeatmapController(svc *services.Services) *HeatmapController {
	return &HeatmapController{Habits: svc.Habits}
}

type UpdateHabitsRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Habits []bool `json:"habits" validate:"required"`
}

// [+] GetHeatmap godoc
// @Summary Get yearly heatmap
// @Description One cell per calendar day of the year with its habit score and level
// @Tags heatmap
// @Produce json
// @Security ApiKeyAuth
// @Param year query int false "Calendar year, defaults to the current year"
// @Success 200 {object} models.Heatmap
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /heatmap/heatmap [get]
func (hc *HeatmapController) GetHeatmap(c *fiber.Ctx) error {
	year := hc.Habits.CurrentYear()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			return utils.BadRequest(c, "year must be a four-digit number")
		}
		year = y
	}

	heatmap, err := hc.Habits.Heatmap(c.UserContext(), middleware.UserID(c), year)
	if err != nil {
		return err
	}
	return c.JSON(heatmap)
}

// [+] GetHabits godoc
// @Summary Get habits for the current week
// @Description Returns the habit names and one completion vector per day, Monday to Sunday
// @Tags heatmap
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /heatmap/habits [get]
func (hc *HeatmapController) GetHabits(c *fiber.Ctx) error {
	profile, week, err := hc.Habits.CurrentWeek(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"habits":     profile.Habits,
		"weekHabits": week,
	})
}

// [+] UpdateHabits godoc
// @Summary Record habits for a day
// @Description Stores the completion vector for the date and returns the day's score
// @Tags heatmap
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param habits body UpdateHabitsRequest true "Date and completion vector"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /heatmap/habits [post]
func (hc *HeatmapController) UpdateHabits(c *fiber.Ctx) error {
	var req UpdateHabitsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return utils.ValidationError(c, "date and habits are required", fields)
	}

	score, err := hc.Habits.SetDayHabits(c.UserContext(), middleware.UserID(c), req.Date, req.Habits)
	if errors.Is(err, services.ErrInvalidDate) {
		return utils.BadRequest(c, err.Error())
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Habit tracking updated",
		"date":    req.Date,
		"score":   score,
	})
}

// [+] GetWeeklyStats godoc
// @Summary Get weekly habit statistics
// @Description Current week scores, 30-day trend, lifetime total and completion rate
// @Tags heatmap
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.WeeklyStats
// @Failure 401 {object} utils.ErrorResponse
// @Router /heatmap/stats [get]
func (hc *HeatmapController) GetWeeklyStats(c *fiber.Ctx) error {
	stats, err := hc.Habits.WeeklyStats(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
