package routes

import (
	"github.com/anjiri1684/studio_tracker/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, h *handlers.Handler) {
	auth := api.Group("/auth")
	auth.Get("/user", h.GetCurrentUser)
	auth.Put("/user", h.UpdateCurrentUser)
}

func DashboardRoutes(api fiber.Router, h *handlers.Handler) {
	api.Get("/dashboard/metrics", h.GetDashboardMetrics)
}

func StudentRoutes(api fiber.Router, h *handlers.Handler) {
	students := api.Group("/students")
	students.Get("/", h.GetStudents)
	students.Post("/", h.CreateStudent)
	students.Get("/:id", h.GetStudent)
	students.Put("/:id", h.UpdateStudent)
	students.Delete("/:id", h.DeleteStudent)
	students.Get("/:id/schedule", h.GetStudentSchedule)
	students.Put("/:id/schedule", h.UpdateStudentSchedule)
	students.Get("/:id/attendance", h.GetStudentAttendance)
	students.Get("/:id/payments", h.GetStudentPayments)
}

func AttendanceRoutes(api fiber.Router, h *handlers.Handler) {
	attendance := api.Group("/attendance")
	attendance.Get("/", h.GetAttendance)
	attendance.Get("/today", h.GetTodaysClasses)
	attendance.Post("/", h.CreateAttendance)
	attendance.Put("/:id", h.UpdateAttendance)
}

func PaymentRoutes(api fiber.Router, h *handlers.Handler) {
	payments := api.Group("/payments")
	payments.Get("/", h.GetPayments)
	payments.Get("/overdue", h.GetOverduePayments)
	payments.Post("/", h.CreatePayment)
	payments.Put("/:id", h.UpdatePayment)
}

func ReportRoutes(api fiber.Router, h *handlers.Handler) {
	reports := api.Group("/reports")
	reports.Get("/summary", h.GetReportSummary)
	reports.Get("/payments/export", h.ExportPayments)
}

func UploadRoutes(api fiber.Router, h *handlers.Handler) {
	api.Get("/uploads/signature", h.GenerateUploadSignature)
}
