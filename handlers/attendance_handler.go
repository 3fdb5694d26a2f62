package handlers

import (
	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/anjiri1684/studio_tracker/models"
	"github.com/gofiber/fiber/v2"
)

// GetAttendance lists attendance, optionally bounded by startDate and endDate
// (YYYY-MM-DD, inclusive).
func (h *Handler) GetAttendance(c *fiber.Ctx) error {
	startDate, err := queryDate(c, "startDate")
	if err != nil {
		return err
	}
	endDate, err := queryDate(c, "endDate")
	if err != nil {
		return err
	}

	records, err := h.store.GetAttendanceRecords(c.UserContext(), middleware.InstructorID(c), startDate, endDate)
	if err != nil {
		return storageError(c, err, "fetch attendance")
	}
	return c.JSON(records)
}

func (h *Handler) GetTodaysClasses(c *fiber.Ctx) error {
	classes, err := h.store.GetTodaysClasses(c.UserContext(), middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch today's classes")
	}
	return c.JSON(classes)
}

func (h *Handler) CreateAttendance(c *fiber.Ctx) error {
	var req models.AttendanceInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	record, err := h.store.CreateAttendanceRecord(c.UserContext(), req, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "create attendance record")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *Handler) UpdateAttendance(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var patch models.AttendancePatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	record, err := h.store.UpdateAttendanceRecord(c.UserContext(), id, patch, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "update attendance record")
	}
	return c.JSON(record)
}
