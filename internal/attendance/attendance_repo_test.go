package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoTest(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewRepository(gdb), mock
}

func TestRepository_InsertIfAbsent(t *testing.T) {
	in := ClockTime(8 * 3600)

	t.Run("inserted", func(t *testing.T) {
		repo, mock := newRepoTest(t)
		mock.ExpectQuery(`INSERT INTO "attendance" .* ON CONFLICT \("employee_id","record_date"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))

		row := &Attendance{EmployeeID: 1, RecordDate: "2026-03-02", CheckInTime: &in, Status: StatusPresent, VerificationMethod: MethodManual}
		ok, err := repo.InsertIfAbsent(context.Background(), row)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(41), row.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict", func(t *testing.T) {
		repo, mock := newRepoTest(t)
		mock.ExpectQuery(`INSERT INTO "attendance" .* ON CONFLICT`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ok, err := repo.InsertIfAbsent(context.Background(), &Attendance{EmployeeID: 1, RecordDate: "2026-03-02", CheckInTime: &in, Status: StatusPresent, VerificationMethod: MethodManual})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpsertFull_RefreshesFromStoredRow(t *testing.T) {
	repo, mock := newRepoTest(t)
	created := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO "attendance" .* ON CONFLICT \("employee_id","record_date"\) DO UPDATE SET .* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(17, created))

	in, out := ClockTime(8*3600), ClockTime(16*3600)
	row := &Attendance{
		EmployeeID: 1, RecordDate: "2026-02-10", CheckInTime: &in, CheckOutTime: &out,
		Status: StatusCheckedOut, VerificationMethod: MethodManual,
		CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.UpsertFull(context.Background(), row))
	assert.Equal(t, int64(17), row.ID)
	assert.True(t, created.Equal(row.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteForDate_RemovesCorrectionsFirst(t *testing.T) {
	repo, mock := newRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM attendance_corrections").
		WithArgs(int64(1), "2026-03-02").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "attendance"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sqlDB, err := repo.(*repository).db.DB()
	require.NoError(t, err)
	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	n, err := repo.WithTx(tx).DeleteForDate(context.Background(), 1, "2026-03-02")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAll_AppliesScope(t *testing.T) {
	repo, mock := newRepoTest(t)

	mock.ExpectQuery(`SELECT a\.\*, e\.employee_id AS employee_code.*JOIN employees e ON e\.id = a\.employee_id WHERE .*e\.department = .*a\.status = |WHERE .*a\.status = .*e\.department = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "record_date", "check_in_time", "status", "employee_code", "first_name", "last_name", "department"}).
			AddRow(3, 1, "2026-03-02", "09:40:00", StatusLate, "EMP001", "Sara", "Amrani", "IT"))

	scope := domain.ScopeFor(domain.ScopeDepartment, domain.Actor{ID: 9, Department: "IT"})
	rows, err := repo.FindAll(context.Background(), scope, AttendanceFilter{Status: StatusLate})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EMP001", rows[0].EmployeeCode)
	assert.Equal(t, Date("2026-03-02"), rows[0].RecordDate)
	assert.Equal(t, "09:40", rows[0].CheckInTime.HHMM())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DailyCounts(t *testing.T) {
	repo, mock := newRepoTest(t)

	mock.ExpectQuery("COUNT\\(DISTINCT employee_id\\) FILTER").
		WithArgs("2026-03-02").
		WillReturnRows(sqlmock.NewRows([]string{"total_employees", "present", "checked_out", "late"}).AddRow(10, 7, 3, 2))

	c, err := repo.DailyCounts(context.Background(), "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, DailyCounts{TotalEmployees: 10, Present: 7, CheckedOut: 3, Late: 2}, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}
