package models

type StudentStatusCounts struct {
	Active   int `json:"active"`
	Trial    int `json:"trial"`
	Inactive int `json:"inactive"`
}

type PaymentBucket struct {
	Count  int    `json:"count"`
	Amount Amount `json:"amount"`
}

type PaymentStatusTotals struct {
	Paid    PaymentBucket `json:"paid"`
	Pending PaymentBucket `json:"pending"`
	Overdue PaymentBucket `json:"overdue"`
}

// ReportSummary backs the reports page. Overdue payments are also counted
// under Pending since they are stored as pending.
type ReportSummary struct {
	TotalRevenue   Amount              `json:"totalRevenue"`
	TotalStudents  int                 `json:"totalStudents"`
	Students       StudentStatusCounts `json:"students"`
	AttendanceRate float64             `json:"attendanceRate"`
	TotalClasses   int                 `json:"totalClasses"`
	Payments       PaymentStatusTotals `json:"payments"`
	Dashboard      DashboardMetrics    `json:"dashboard"`
}
