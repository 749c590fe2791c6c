package employee

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoTest(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewRepository(gdb), mock, func() { sqlDB.Close() }
}

func TestRepository_Purge(t *testing.T) {
	t.Run("deletes dependents then employee inside the transaction", func(t *testing.T) {
		repo, mock, done := newRepoTest(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM attendance_corrections").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM attendance WHERE").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 20))
		mock.ExpectExec("DELETE FROM face_encodings").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM notifications").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec("DELETE FROM salary_components").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 6))
		mock.ExpectExec("DELETE FROM salary_payments").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM salary_configs").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM employees").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		sqlDB, err := repo.(*repository).db.DB()
		require.NoError(t, err)
		sqlTx, err := sqlDB.Begin()
		require.NoError(t, err)

		counts, err := repo.WithTx(sqlTx).Purge(context.Background(), 7)
		require.NoError(t, err)
		require.NoError(t, sqlTx.Commit())

		assert.Equal(t, int64(20), counts.AttendanceRecords)
		assert.Equal(t, int64(6), counts.SalaryComponents)
		assert.Equal(t, int64(4), counts.Notifications)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing employee is not found", func(t *testing.T) {
		repo, mock, done := newRepoTest(t)
		defer done()

		for i := 0; i < len(purgeSteps); i++ {
			mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectExec("DELETE FROM employees").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Purge(context.Background(), 99)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_FindByRef(t *testing.T) {
	t.Run("falls back to employee code", func(t *testing.T) {
		repo, mock, done := newRepoTest(t)
		defer done()

		rows := sqlmock.NewRows([]string{"id", "employee_id", "first_name", "last_name", "department"}).
			AddRow(3, "EMP003", "Ali", "K", "IT")
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employee_id = \$1`).
			WillReturnRows(rows)

		empl, err := repo.FindByRef(context.Background(), "emp003")
		require.NoError(t, err)
		assert.Equal(t, int64(3), empl.ID)
		assert.Equal(t, "Ali K", empl.FullName())
	})
}
