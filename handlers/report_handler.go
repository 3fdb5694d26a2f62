package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/anjiri1684/studio_tracker/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetReportSummary(c *fiber.Ctx) error {
	startDate, err := queryDate(c, "startDate")
	if err != nil {
		return err
	}
	endDate, err := queryDate(c, "endDate")
	if err != nil {
		return err
	}

	summary, err := h.reports.Summary(c.UserContext(), middleware.InstructorID(c), startDate, endDate)
	if err != nil {
		return storageError(c, err, "build report summary")
	}
	return c.JSON(summary)
}

// ExportPayments downloads the payment ledger as csv (default) or xlsx.
func (h *Handler) ExportPayments(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", services.FormatCSV))
	startDate, err := queryDate(c, "startDate")
	if err != nil {
		return err
	}
	endDate, err := queryDate(c, "endDate")
	if err != nil {
		return err
	}

	b := new(bytes.Buffer)
	err = h.reports.ExportPayments(c.UserContext(), b, middleware.InstructorID(c), format, startDate, endDate)
	if errors.Is(err, services.ErrUnsupportedFormat) {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported format, use csv or xlsx")
	}
	if err != nil {
		return storageError(c, err, "export payments")
	}

	filename := fmt.Sprintf("payments_%s.%s", h.store.Today().Format("2006-01-02"), format)
	c.Set("Content-Type", services.ContentType(format))
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	return c.Send(b.Bytes())
}
