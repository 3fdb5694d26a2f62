package handlers

import (
	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/anjiri1684/studio_tracker/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetPayments(c *fiber.Ctx) error {
	payments, err := h.store.GetPaymentRecords(c.UserContext(), middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch payments")
	}
	return c.JSON(payments)
}

func (h *Handler) GetOverduePayments(c *fiber.Ctx) error {
	payments, err := h.store.GetOverduePayments(c.UserContext(), middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "fetch overdue payments")
	}
	return c.JSON(payments)
}

func (h *Handler) CreatePayment(c *fiber.Ctx) error {
	var req models.PaymentInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	payment, err := h.store.CreatePaymentRecord(c.UserContext(), req, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "create payment record")
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func (h *Handler) UpdatePayment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var patch models.PaymentPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	payment, err := h.store.UpdatePaymentRecord(c.UserContext(), id, patch, middleware.InstructorID(c))
	if err != nil {
		return storageError(c, err, "update payment record")
	}
	return c.JSON(payment)
}
