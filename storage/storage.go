// Package storage is the data-access layer. Every student-scoped operation
// filters by the owning instructor so one tenant never sees another's rows.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/studio_tracker/database"
	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a row is absent or owned by another instructor.
var ErrNotFound = errors.New("record not found")

// ErrEmailTaken is returned when a user's email already belongs to another id.
var ErrEmailTaken = errors.New("email belongs to another user")

type Storage interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpsertUser(ctx context.Context, user models.User) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	GetStudents(ctx context.Context, instructorID uuid.UUID) ([]models.StudentWithScheduleAndPayment, error)
	GetStudent(ctx context.Context, id, instructorID uuid.UUID) (*models.StudentWithScheduleAndPayment, error)
	CreateStudent(ctx context.Context, student models.StudentInput, schedule models.ScheduleInput, instructorID uuid.UUID) (*models.Student, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, patch models.StudentPatch, instructorID uuid.UUID) (*models.Student, error)
	DeleteStudent(ctx context.Context, id, instructorID uuid.UUID) error

	GetClassSchedule(ctx context.Context, studentID, instructorID uuid.UUID) (*models.ClassSchedule, error)
	UpdateClassSchedule(ctx context.Context, studentID uuid.UUID, patch models.SchedulePatch, instructorID uuid.UUID) (*models.ClassSchedule, error)

	GetAttendanceRecords(ctx context.Context, instructorID uuid.UUID, startDate, endDate *models.Date) ([]models.AttendanceWithStudent, error)
	GetStudentAttendance(ctx context.Context, studentID, instructorID uuid.UUID) ([]models.AttendanceRecord, error)
	CreateAttendanceRecord(ctx context.Context, record models.AttendanceInput, instructorID uuid.UUID) (*models.AttendanceRecord, error)
	UpdateAttendanceRecord(ctx context.Context, id uuid.UUID, patch models.AttendancePatch, instructorID uuid.UUID) (*models.AttendanceRecord, error)
	GetTodaysClasses(ctx context.Context, instructorID uuid.UUID) ([]models.TodaysClass, error)

	GetPaymentRecords(ctx context.Context, instructorID uuid.UUID) ([]models.PaymentWithStudent, error)
	GetStudentPayments(ctx context.Context, studentID, instructorID uuid.UUID) ([]models.PaymentRecord, error)
	CreatePaymentRecord(ctx context.Context, record models.PaymentInput, instructorID uuid.UUID) (*models.PaymentRecord, error)
	UpdatePaymentRecord(ctx context.Context, id uuid.UUID, patch models.PaymentPatch, instructorID uuid.UUID) (*models.PaymentRecord, error)
	GetOverduePayments(ctx context.Context, instructorID uuid.UUID) ([]models.PaymentWithStudent, error)

	GetDashboardMetrics(ctx context.Context, instructorID uuid.UUID) (*models.DashboardMetrics, error)

	// Today returns the current calendar date in the studio's time zone.
	Today() time.Time
	Ping(ctx context.Context) error
}

// DatabaseStorage implements Storage with GORM.
type DatabaseStorage struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

type Option func(*DatabaseStorage)

// WithClock overrides the time source used for "today" and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *DatabaseStorage) { s.now = now }
}

// WithLocation sets the studio time zone. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *DatabaseStorage) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewDatabaseStorage(db *gorm.DB, opts ...Option) *DatabaseStorage {
	s := &DatabaseStorage{db: db, loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DatabaseStorage) Today() time.Time {
	return s.now().In(s.loc)
}

func (s *DatabaseStorage) today() models.Date {
	return models.DateOf(s.Today())
}

func (s *DatabaseStorage) Ping(ctx context.Context) error {
	return database.Ping(ctx, s.db)
}

// ownedStudents restricts a query on a student_id column to the instructor's students.
func (s *DatabaseStorage) ownedStudents(instructorID uuid.UUID) *gorm.DB {
	return s.db.Model(&models.Student{}).Select("id").Where("instructor_id = ?", instructorID)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
