package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/studio_tracker/database"
	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Wednesday, 14 October 2026.
var wednesday = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestDB(t *testing.T, clock *testClock) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: clock.Now,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestStore(t *testing.T) (*DatabaseStorage, *testClock) {
	t.Helper()
	clock := &testClock{now: wednesday}
	db := newTestDB(t, clock)
	return NewDatabaseStorage(db, WithClock(clock.Now), WithLocation(time.UTC)), clock
}

func newInstructor(t *testing.T, s *DatabaseStorage, email string) uuid.UUID {
	t.Helper()
	user, err := s.UpsertUser(context.Background(), models.User{ID: uuid.New(), Email: &email})
	require.NoError(t, err)
	return user.ID
}

func newStudent(t *testing.T, s *DatabaseStorage, instructorID uuid.UUID, name, status string, day int, start string) *models.Student {
	t.Helper()
	student, err := s.CreateStudent(context.Background(),
		models.StudentInput{Name: name, Status: status},
		models.ScheduleInput{DayOfWeek: &day, StartTime: start, Duration: 60},
		instructorID,
	)
	require.NoError(t, err)
	return student
}

func newPayment(t *testing.T, s *DatabaseStorage, instructorID, studentID uuid.UUID, amount string, due models.Date, status string) *models.PaymentRecord {
	t.Helper()
	a := models.MustAmount(amount)
	payment, err := s.CreatePaymentRecord(context.Background(), models.PaymentInput{
		StudentID:   studentID,
		Amount:      &a,
		PaymentDate: due,
		DueDate:     due,
		Status:      status,
		PaymentType: "monthly",
	}, instructorID)
	require.NoError(t, err)
	return payment
}

func strPtr(s string) *string { return &s }
