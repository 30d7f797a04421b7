package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-service/internal/api/dto"
	"github.com/spec-kit/staff-service/internal/service"
)

// RosterHandler serves the staff roster and schedules.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs handler.
func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: rosterService}
}

// List handles GET /staff.
func (h *RosterHandler) List(c *fiber.Ctx) error {
	view, err := h.roster.Roster(c.UserContext(), service.RosterQuery{
		Search:     c.Query("search"),
		Department: c.Query("department"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRosterResponse(view)})
}

// Departments handles GET /staff/departments.
func (h *RosterHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.roster.Departments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departments})
}

// Schedule handles GET /staff/schedule.
func (h *RosterHandler) Schedule(c *fiber.Ctx) error {
	sched, err := h.roster.Schedule(c.UserContext(), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewScheduleResponse(sched)})
}

// Week handles GET /staff/schedule/week.
func (h *RosterHandler) Week(c *fiber.Ctx) error {
	week, err := h.roster.Week(c.UserContext(), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWeekResponse(week)})
}
