package controllers

import (
	"errors"

	"tracker/backend/middleware"
	"tracker/backend/services"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type DailyController struct {
	Entries *services.EntryService
}

func NewDailyController(svc *services.Services) *DailyController {
	return &DailyController{Entries: svc.Entries}
}

// CreateEntryRequest uses pointers so that a missing field can be told apart from 0.
type CreateEntryRequest struct {
	SkillPoints   *int   `json:"skillPoints" validate:"required"`
	CareerPoints  *int   `json:"careerPoints" validate:"required"`
	ProjectPoints *int   `json:"projectPoints" validate:"required"`
	Notes         string `json:"notes"`
}

// [+] GetEntries godoc
// @Summary List daily entries
// @Description Returns every entry of the current user, newest first
// @Tags daily
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /daily/entries [get]
func (dc *DailyController) GetEntries(c *fiber.Ctx) error {
	entries, err := dc.Entries.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Daily entries retrieved",
		"entries": entries,
	})
}

// [+] GetToday godoc
// @Summary Get today's entry
// @Description Returns the entry for today, or null when nothing was submitted yet
// @Tags daily
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /daily/today [get]
func (dc *DailyController) GetToday(c *fiber.Ctx) error {
	entry, err := dc.Entries.Today(c.UserContext(), middleware.UserID(c))
	if errors.Is(err, services.ErrEntryNotFound) {
		return c.JSON(fiber.Map{
			"message": "No entry for today",
			"entry":   nil,
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Today entry retrieved",
		"entry":   entry,
	})
}

// [+] CreateEntry godoc
// @Summary Create or update today's entry
// @Description Points are clamped to 0..3 per category. Returns 201 on the first submission of the day, 200 afterwards
// @Tags daily
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entry body CreateEntryRequest true "Daily points"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /daily/entries [post]
func (dc *DailyController) CreateEntry(c *fiber.Ctx) error {
	var req CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return utils.ValidationError(c, "skillPoints, careerPoints, and projectPoints are required", fields)
	}

	entry, created, err := dc.Entries.SubmitToday(c.UserContext(), middleware.UserID(c), services.EntryInput{
		SkillPoints:   *req.SkillPoints,
		CareerPoints:  *req.CareerPoints,
		ProjectPoints: *req.ProjectPoints,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Daily entry created",
			"entry":   entry,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Daily entry updated",
		"entry":   entry,
	})
}

// [+] GetStats godoc
// @Summary Get entry statistics
// @Description Totals, average score and streaks over the user's entries
// @Tags daily
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /daily/stats [get]
func (dc *DailyController) GetStats(c *fiber.Ctx) error {
	stats, err := dc.Entries.Stats(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Stats retrieved",
		"stats":   stats,
	})
}
