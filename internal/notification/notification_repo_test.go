package notification

import (
	"context"
	"database/sql/driver"
	"testing"

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

var notificationColumns = []string{"id", "user_id", "is_system", "title", "message", "type", "priority", "read_status"}

func TestRepository_FindVisible(t *testing.T) {
	tests := []struct {
		name  string
		v     Visibility
		query string
		args  []driver.Value
	}{
		{
			name:  "admin sees every row",
			v:     Visibility{UserID: 1, Role: domain.RoleAdmin},
			query: `SELECT \* FROM "notifications" ORDER BY notifications.created_at DESC, notifications.id DESC LIMIT \$1`,
			args:  []driver.Value{20},
		},
		{
			name:  "manager sees own department plus system",
			v:     Visibility{UserID: 2, Role: domain.RoleManager, Department: "IT"},
			query: `SELECT \* FROM "notifications" WHERE \(?notifications.is_system = \$1 OR notifications.user_id IN \(SELECT id FROM employees WHERE department = \$2\)\)? ORDER BY .* LIMIT \$3`,
			args:  []driver.Value{true, "IT", 20},
		},
		{
			name:  "employee sees own plus system",
			v:     Visibility{UserID: 7, Role: domain.RoleEmployee, Department: "IT"},
			query: `SELECT \* FROM "notifications" WHERE \(?notifications.is_system = \$1 OR notifications.user_id = \$2\)? ORDER BY .* LIMIT \$3`,
			args:  []driver.Value{true, int64(7), 20},
		},
		{
			name:  "unknown role sees system only",
			v:     Visibility{UserID: 9, Role: "contractor"},
			query: `SELECT \* FROM "notifications" WHERE notifications.is_system = \$1 ORDER BY .* LIMIT \$2`,
			args:  []driver.Value{true, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoTest(t)

			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(notificationColumns).
					AddRow(int64(5), nil, true, "Maintenance", "Tonight", TypeSystem, PriorityLow, false))

			rows, err := repo.FindVisible(context.Background(), tt.v, 20)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.True(t, rows[0].IsSystem)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_MarkAllAsRead_OnlyOwnAndSystemRows(t *testing.T) {
	for _, v := range []Visibility{
		{UserID: 1, Role: domain.RoleAdmin},
		{UserID: 2, Role: domain.RoleManager, Department: "IT"},
		{UserID: 7, Role: domain.RoleEmployee},
	} {
		t.Run(v.Role, func(t *testing.T) {
			repo, mock := newRepoTest(t)

			mock.ExpectExec(`UPDATE "notifications" SET .* WHERE notifications.read_status = \$4 AND \(+notifications.user_id = \$5 OR notifications.is_system = \$6\)+`).
				WithArgs(sqlmock.AnyArg(), true, sqlmock.AnyArg(), false, v.UserID, true).
				WillReturnResult(sqlmock.NewResult(0, 3))

			n, err := repo.MarkAllAsRead(context.Background(), v)
			require.NoError(t, err)
			assert.Equal(t, int64(3), n)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_MarkAsRead_ScopedToOwner(t *testing.T) {
	repo, mock := newRepoTest(t)

	mock.ExpectExec(`UPDATE "notifications" SET .* WHERE notifications.id = \$4 AND \(+notifications.user_id = \$5 OR notifications.is_system = \$6\)+`).
		WithArgs(sqlmock.AnyArg(), true, sqlmock.AnyArg(), int64(11), int64(7), true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.MarkAsRead(context.Background(), 7, 11)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
