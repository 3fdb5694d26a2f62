package handlers

import (
	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/anjiri1684/studio_tracker/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetStudents(c *fiber.Ctx) error {
	students, err := h.store.GetStudents(c.UserContext(), middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch students")
	}
	return c.JSON(students)
}

func (h *Handler) GetStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	student, err := h.store.GetStudent(c.UserContext(), id, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch student")
	}
	return c.JSON(student)
}

// CreateStudent expects {"student": {...}, "schedule": {...}} and stores both
// in one transaction.
func (h *Handler) CreateStudent(c *fiber.Ctx) error {
	var req models.CreateStudentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	student, err := h.store.CreateStudent(c.UserContext(), *req.Student, *req.Schedule, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "create student")
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

func (h *Handler) UpdateStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var patch models.StudentPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	student, err := h.store.UpdateStudent(c.UserContext(), id, patch, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "update student")
	}
	return c.JSON(student)
}

func (h *Handler) DeleteStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeleteStudent(c.UserContext(), id, middleware.InstructorID(c)); err != nil {
		return storageError(c, err, "delete student")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetStudentSchedule(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	schedule, err := h.store.GetClassSchedule(c.UserContext(), id, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch class schedule")
	}
	return c.JSON(schedule)
}

func (h *Handler) UpdateStudentSchedule(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var patch models.SchedulePatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	schedule, err := h.store.UpdateClassSchedule(c.UserContext(), id, patch, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "update class schedule")
	}
	return c.JSON(schedule)
}

func (h *Handler) GetStudentAttendance(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	records, err := h.store.GetStudentAttendance(c.UserContext(), id, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch student attendance")
	}
	return c.JSON(records)
}

func (h *Handler) GetStudentPayments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	payments, err := h.store.GetStudentPayments(c.UserContext(), id, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch student payments")
	}
	return c.JSON(payments)
}
