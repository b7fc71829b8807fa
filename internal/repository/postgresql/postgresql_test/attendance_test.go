package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// setupTestDB connects once per process and skips the suite when no test
// database is configured.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn, 5, 1)
		require.NoError(t, err, "failed to connect to test database")
	}
	return testDB
}

func truncateAttendances(t *testing.T, db *database.DB) {
	t.Helper()
	_, err := db.Exec(context.Background(), "TRUNCATE TABLE attendances CASCADE")
	require.NoError(t, err)
}

func TestAttendanceRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	truncateAttendances(t, db)
	ctx := context.Background()

	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(8 * time.Hour)

	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       day,
		CheckIn:    &checkIn,
		Status:     attendance.StatusPresent,
		WorkHours:  decimal.Zero,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, attendance.StatusPresent, got.Status)

	missing, err := repo.GetByEmployeeAndDate(ctx, "emp-1", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	truncateAttendances(t, db)
	ctx := context.Background()

	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       day,
		Status:     attendance.StatusAbsent,
		WorkHours:  decimal.Zero,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       day,
		Status:     attendance.StatusAbsent,
		WorkHours:  decimal.Zero,
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

func TestAttendanceRepository_BulkInsertSkipsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	truncateAttendances(t, db)
	ctx := context.Background()

	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       day,
		Status:     attendance.StatusPresent,
		WorkHours:  decimal.Zero,
	})
	require.NoError(t, err)

	result, err := repo.BulkInsert(ctx, []attendance.Attendance{
		{EmployeeID: "emp-1", Date: day, Status: attendance.StatusAbsent, WorkHours: decimal.Zero},
		{EmployeeID: "emp-2", Date: day, Status: attendance.StatusAbsent, WorkHours: decimal.Zero},
		{EmployeeID: "emp-3", Date: day, Status: attendance.StatusOnLeave, WorkHours: decimal.Zero},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.SkippedDuplicates)

	// The pre-existing row keeps its original status.
	got, err := repo.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusPresent, got.Status)
}

func TestAttendanceRepository_ListUncheckedOutAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	truncateAttendances(t, db)
	ctx := context.Background()

	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(8 * time.Hour)
	checkOut := day.Add(17 * time.Hour)

	open, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       day,
		CheckIn:    &checkIn,
		Status:     attendance.StatusPresent,
		WorkHours:  decimal.Zero,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-2",
		Date:       day,
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Status:     attendance.StatusPresent,
		WorkHours:  decimal.NewFromInt(9),
	})
	require.NoError(t, err)

	unchecked, err := repo.ListUncheckedOut(ctx, day)
	require.NoError(t, err)
	require.Len(t, unchecked, 1)
	assert.Equal(t, "emp-1", unchecked[0].EmployeeID)

	open.CheckOut = &checkOut
	open.RecalculateWorkHours()
	require.NoError(t, repo.Update(ctx, open))

	unchecked, err = repo.ListUncheckedOut(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, unchecked)
}
