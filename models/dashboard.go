package models

type WeeklyAttendance struct {
	Attended int64 `json:"attended"`
	Total    int64 `json:"total"`
}

type DashboardMetrics struct {
	TotalStudents    int64            `json:"totalStudents"`
	WeeklyAttendance WeeklyAttendance `json:"weeklyAttendance"`
	PendingPayments  int64            `json:"pendingPayments"`
	OverdueFees      int64            `json:"overdueFees"`
}
