package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	attendanceerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/attendance/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/events"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testLoc = time.FixedZone("UTC+1", 3600)

// memRepo keeps one row per (employee, date) like the unique constraint.
type memRepo struct {
	rows        map[string]*Attendance
	corrections []Correction
	nextID      int64
	updates     int

	insertFn func(ctx context.Context, a *Attendance) (bool, error)
	deleteFn func(ctx context.Context, employeeID int64, date Date) (int64, error)
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]*Attendance{}}
}

func key(employeeID int64, date Date) string {
	return fmt.Sprintf("%d|%s", employeeID, date)
}

func (m *memRepo) WithTx(*sql.Tx) Repository { return m }

func (m *memRepo) InsertIfAbsent(ctx context.Context, a *Attendance) (bool, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, a)
	}
	k := key(a.EmployeeID, a.RecordDate)
	if _, ok := m.rows[k]; ok {
		return false, nil
	}
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.rows[k] = &cp
	return true, nil
}

func (m *memRepo) FindForDate(_ context.Context, employeeID int64, date Date) (*Attendance, error) {
	if a, ok := m.rows[key(employeeID, date)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) FindOpenForDate(ctx context.Context, employeeID int64, date Date) (*Attendance, error) {
	a, err := m.FindForDate(ctx, employeeID, date)
	if err != nil || a.CheckInTime == nil || a.CheckOutTime != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *memRepo) FindByID(_ context.Context, id int64) (*Attendance, error) {
	for _, a := range m.rows {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) Update(_ context.Context, a *Attendance) error {
	m.updates++
	cp := *a
	m.rows[key(a.EmployeeID, a.RecordDate)] = &cp
	return nil
}

func (m *memRepo) UpsertFull(_ context.Context, a *Attendance) error {
	k := key(a.EmployeeID, a.RecordDate)
	if old, ok := m.rows[k]; ok {
		a.ID = old.ID
		a.CreatedAt = old.CreatedAt
	} else {
		m.nextID++
		a.ID = m.nextID
	}
	cp := *a
	m.rows[k] = &cp
	return nil
}

func (m *memRepo) DeleteForDate(ctx context.Context, employeeID int64, date Date) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, employeeID, date)
	}
	k := key(employeeID, date)
	if _, ok := m.rows[k]; !ok {
		return 0, nil
	}
	delete(m.rows, k)
	return 1, nil
}

func (m *memRepo) CreateCorrection(_ context.Context, c *Correction) error {
	m.corrections = append(m.corrections, *c)
	return nil
}

func (m *memRepo) ListCorrections(_ context.Context, attendanceID int64) ([]Correction, error) {
	var out []Correction
	for _, c := range m.corrections {
		if c.AttendanceID == attendanceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepo) FindAll(context.Context, domain.Scope, AttendanceFilter) ([]AttendanceRow, error) {
	return nil, nil
}

func (m *memRepo) DailyCounts(context.Context, Date) (DailyCounts, error) {
	return DailyCounts{}, nil
}

type fakeEmployees map[string]*employee.Employee

func (f fakeEmployees) FindByRef(_ context.Context, ref string) (*employee.Employee, error) {
	if e, ok := f[strings.ToUpper(ref)]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type recordingNotifier struct {
	events []events.NotificationRequestedEvent
}

func (r *recordingNotifier) Publish(_ context.Context, evt events.NotificationRequestedEvent) {
	r.events = append(r.events, evt)
}

type testEnv struct {
	svc      *service
	repo     *memRepo
	notifier *recordingNotifier
	sqlMock  sqlmock.Sqlmock
	now      time.Time
}

func (e *testEnv) setNow(hhmm string) {
	c, _ := ParseClock(hhmm)
	e.now = time.Date(2026, 3, 2, 0, 0, 0, 0, testLoc).Add(time.Duration(c) * time.Second)
}

var admin = domain.Actor{ID: 100, Role: domain.RoleAdmin}

func setupService(t *testing.T) *testEnv {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	emp1 := &employee.Employee{ID: 1, EmployeeCode: "EMP001", FirstName: "Sara", LastName: "Amrani", Department: "IT", IsActive: true}
	emps := fakeEmployees{
		"1":      emp1,
		"EMP001": emp1,
		"EMP002": {ID: 2, EmployeeCode: "EMP002", FirstName: "Old", LastName: "Timer", IsActive: false},
	}

	env := &testEnv{repo: newMemRepo(), notifier: &recordingNotifier{}, sqlMock: mock}
	env.setNow("08:00")
	env.svc = NewService(db, env.repo, emps, env.notifier, testLoc).(*service)
	env.svc.now = func() time.Time { return env.now }
	return env
}

func ptr(s string) *string { return &s }

func TestMarkAttendance_CheckInThenCheckOutScenario(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	resp, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)
	assert.Equal(t, CheckTypeCheckIn, resp.CheckType)
	assert.Equal(t, "Sara Amrani", resp.EmployeeName)
	assert.Equal(t, StatusPresent, resp.Attendance.Status)
	require.NotNil(t, resp.Attendance.CheckIn)
	assert.Equal(t, "08:00", resp.Attendance.CheckIn.HHMM())
	assert.Nil(t, resp.Attendance.CheckOut)
	assert.Len(t, env.repo.rows, 1)

	env.setNow("16:30")
	resp, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckOut: ptr("16:30")})
	require.NoError(t, err)
	assert.Equal(t, CheckTypeCheckOut, resp.CheckType)
	assert.Equal(t, "08:00", resp.Attendance.CheckIn.HHMM())
	assert.Equal(t, "16:30", resp.Attendance.CheckOut.HHMM())
	require.NotNil(t, resp.Attendance.HoursWorked)
	assert.Equal(t, 8.50, *resp.Attendance.HoursWorked)
	assert.Equal(t, StatusCheckedOut, resp.Attendance.Status)
	assert.Len(t, env.repo.rows, 1)

	require.Len(t, env.notifier.events, 2)
	assert.Equal(t, events.NotificationKindAttendance, env.notifier.events[0].Kind)
	assert.Equal(t, CheckTypeCheckIn, env.notifier.events[0].CheckType)
	assert.Equal(t, CheckTypeCheckOut, env.notifier.events[1].CheckType)
	assert.Equal(t, "EMP001", env.notifier.events[1].EmployeeIdentifier)
}

func TestMarkAttendance_RejectsSecondCheckOut(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)
	env.setNow("17:00")
	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckType: CheckTypeCheckOut})
	require.NoError(t, err)
	updates := env.repo.updates

	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckOut: ptr("18:00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyComplete)

	var complete *AlreadyCompleteError
	require.True(t, errors.As(err, &complete))
	assert.Equal(t, "17:00", complete.Record.CheckOut.HHMM())
	assert.Equal(t, updates, env.repo.updates)
}

func TestMarkAttendance_LateBoundary(t *testing.T) {
	tests := []struct {
		checkIn string
		date    string
		want    string
	}{
		{"09:15", "", StatusPresent},
		{"09:16", "", StatusLate},
		{"09:16", "2026-02-27", StatusPresent},
		{"09:16", "2026-03-09", StatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.checkIn+"_"+tt.date, func(t *testing.T) {
			env := setupService(t)
			env.setNow("10:00")
			resp, err := env.svc.MarkAttendance(context.Background(), admin, MarkAttendanceRequest{
				EmployeeID: "1",
				CheckIn:    ptr(tt.checkIn),
				Date:       tt.date,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Attendance.Status)
		})
	}
}

func TestMarkAttendance_NowBasedLateFlag(t *testing.T) {
	env := setupService(t)
	env.setNow("09:16")

	resp, err := env.svc.MarkAttendance(context.Background(), admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Attendance.Status)
}

func TestMarkAttendance_RoleGate(t *testing.T) {
	for _, role := range []string{domain.RoleManager, domain.RoleEmployee} {
		env := setupService(t)
		actor := domain.Actor{ID: 1, Role: role, Department: "IT"}

		_, err := env.svc.MarkAttendance(context.Background(), actor, MarkAttendanceRequest{EmployeeID: "EMP001"})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceDenied, role)

		_, err = env.svc.HandleFullAttendance(context.Background(), actor, FullAttendanceRequest{EmployeeID: "EMP001"})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceDenied, role)

		err = env.svc.ResetTodayAttendance(context.Background(), actor, "EMP001")
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceDenied, role)

		assert.Empty(t, env.repo.rows)
		assert.Empty(t, env.notifier.events)
	}
}

func TestMarkAttendance_UnknownOrInactiveEmployee(t *testing.T) {
	env := setupService(t)

	_, err := env.svc.MarkAttendance(context.Background(), admin, MarkAttendanceRequest{EmployeeID: "EMP404"})
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)

	_, err = env.svc.MarkAttendance(context.Background(), admin, MarkAttendanceRequest{EmployeeID: "EMP002"})
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
}

func TestMarkAttendance_FullCorrection(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	env.sqlMock.ExpectBegin()
	env.sqlMock.ExpectCommit()

	resp, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{
		EmployeeID: "EMP001",
		CheckIn:    ptr("07:30"),
		CheckOut:   ptr("15:45"),
	})
	require.NoError(t, err)
	assert.Equal(t, "correction", resp.CheckType)
	assert.Equal(t, 8.25, *resp.Attendance.HoursWorked)
	assert.Equal(t, StatusCheckedOut, resp.Attendance.Status)
	assert.Equal(t, MethodManualCorrection, resp.Attendance.VerificationMethod)

	require.Len(t, env.repo.corrections, 1)
	c := env.repo.corrections[0]
	assert.Equal(t, "08:00", c.OldCheckIn.HHMM())
	assert.Nil(t, c.OldCheckOut)
	assert.Equal(t, "07:30", c.NewCheckIn.HHMM())
	assert.Equal(t, admin.ID, c.CorrectedBy)

	last := env.notifier.events[len(env.notifier.events)-1]
	assert.Equal(t, "attendance_updated", last.Type)
	assert.NoError(t, env.sqlMock.ExpectationsWereMet())
}

func TestMarkAttendance_MissingFieldCases(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	// A row without check-in can only be completed with one.
	env.repo.rows[key(1, "2026-03-02")] = &Attendance{ID: 9, EmployeeID: 1, RecordDate: "2026-03-02", Status: StatusNotChecked}
	_, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, attendanceerrors.ErrCheckInRequired)

	resp, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckIn: ptr("08:10")})
	require.NoError(t, err)
	assert.Equal(t, CheckTypeCheckIn, resp.CheckType)
	assert.Equal(t, StatusPresent, resp.Attendance.Status)

	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckType: CheckTypeManual})
	assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutRequired)
}

func TestMarkAttendance_LostInsertRace(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	env.repo.insertFn = func(_ context.Context, a *Attendance) (bool, error) {
		// another request stored the check-in first
		in := ClockTime(7 * 3600)
		env.repo.rows[key(a.EmployeeID, a.RecordDate)] = &Attendance{
			ID: 5, EmployeeID: a.EmployeeID, RecordDate: a.RecordDate, CheckInTime: &in, Status: StatusPresent,
		}
		return false, nil
	}

	env.setNow("15:00")
	resp, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckIn: ptr("07:00"), CheckType: CheckTypeCheckIn})
	assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutRequired)
	assert.Empty(t, resp.CheckType)
	assert.Len(t, env.repo.rows, 1)
}

func TestMarkAttendance_InvalidInput(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckIn: ptr("8am")})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTimeFormat)

	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", Date: "02/03/2026"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)

	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckOut: ptr("17:00")})
	assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckInToday)
	assert.Empty(t, env.repo.rows)
}

func TestCheckOut(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.CheckOut(ctx, admin, "EMP001")
	assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckInToday)

	_, err = env.svc.CheckIn(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	env.setNow("17:00")
	resp, err := env.svc.CheckOut(ctx, admin, "1")
	require.NoError(t, err)
	assert.Equal(t, 9.0, *resp.Attendance.HoursWorked)
	assert.Equal(t, StatusCheckedOut, resp.Attendance.Status)
}

func TestFacialCheckIn_SetsMethod(t *testing.T) {
	env := setupService(t)

	resp, err := env.svc.FacialCheckIn(context.Background(), admin, MarkAttendanceRequest{EmployeeID: "EMP001", CheckType: CheckTypeManual})
	require.NoError(t, err)
	assert.Equal(t, MethodFacial, resp.Attendance.VerificationMethod)
}

func TestHandleFullAttendance(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	resp, err := env.svc.HandleFullAttendance(ctx, admin, FullAttendanceRequest{
		EmployeeID: "EMP001", CheckIn: "09:30", CheckOut: "18:00", Date: "2026-02-20",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, resp.Status)
	assert.Equal(t, 8.5, *resp.HoursWorked)

	resp, err = env.svc.HandleFullAttendance(ctx, admin, FullAttendanceRequest{
		EmployeeID: "EMP001", CheckIn: "09:30", CheckOut: "18:00", Date: "2026-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)

	// a complete day is not silently replaced
	_, err = env.svc.HandleFullAttendance(ctx, admin, FullAttendanceRequest{
		EmployeeID: "EMP001", CheckIn: "08:00", CheckOut: "12:00", Date: "2026-03-02", Status: StatusPresent,
	})
	var complete *AlreadyCompleteError
	require.ErrorAs(t, err, &complete)
	assert.Equal(t, "EMP001", complete.Record.EmployeeCode)
	assert.Equal(t, StatusLate, complete.Record.Status)
	assert.Len(t, env.repo.rows, 2)
	assert.Empty(t, env.repo.corrections)

	_, err = env.svc.HandleFullAttendance(ctx, admin, FullAttendanceRequest{
		EmployeeID: "EMP001", CheckIn: "08:00", CheckOut: "08:00", Date: "2026-03-02",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidHours)
}

func TestHandleFullAttendance_RejectsDuplicateCompleteDay(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	first, err := env.svc.HandleFullAttendance(ctx, admin, FullAttendanceRequest{
		EmployeeID: "EMP001", CheckIn: "08:00", CheckOut: "16:00", Date: "2026-02-10",
	})
	require.NoError(t, err)

	_, err = env.svc.HandleFullAttendance(ctx, admin, FullAttendanceRequest{
		EmployeeID: "EMP001", CheckIn: "10:00", CheckOut: "11:00", Date: "2026-02-10",
	})
	var complete *AlreadyCompleteError
	require.ErrorAs(t, err, &complete)
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyComplete)
	assert.Equal(t, first.ID, complete.Record.ID)

	stored, err := env.repo.FindForDate(ctx, 1, "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "08:00", stored.CheckInTime.HHMM())
	assert.Equal(t, "16:00", stored.CheckOutTime.HHMM())
	assert.Empty(t, env.repo.corrections)
}

func TestHandleFullAttendance_CompletesPartialDayWithCorrection(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	// 08:00 check-in today leaves an open row
	_, err := env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)
	open, err := env.repo.FindForDate(ctx, 1, "2026-03-02")
	require.NoError(t, err)

	env.sqlMock.ExpectBegin()
	env.sqlMock.ExpectCommit()
	resp, err := env.svc.HandleFullAttendance(ctx, admin, FullAttendanceRequest{
		EmployeeID: "EMP001", CheckIn: "08:30", CheckOut: "17:00", Date: "2026-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, open.ID, resp.ID)
	assert.Equal(t, 8.5, *resp.HoursWorked)
	assert.Len(t, env.repo.rows, 1)

	require.Len(t, env.repo.corrections, 1)
	c := env.repo.corrections[0]
	assert.Equal(t, open.ID, c.AttendanceID)
	assert.Equal(t, admin.ID, c.CorrectedBy)
	assert.Equal(t, "08:00", c.OldCheckIn.HHMM())
	assert.Nil(t, c.OldCheckOut)
	assert.Equal(t, "17:00", c.NewCheckOut.HHMM())
	assert.Equal(t, "full attendance", c.Reason)
	assert.NoError(t, env.sqlMock.ExpectationsWereMet())
}

func TestUpdateAttendance(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.UpdateAttendance(ctx, admin, 1, UpdateAttendanceRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrNoFieldsToUpdate)

	_, err = env.svc.UpdateAttendance(ctx, admin, 99, UpdateAttendanceRequest{Status: ptr(StatusLate)})
	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)

	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	env.sqlMock.ExpectBegin()
	env.sqlMock.ExpectCommit()
	resp, err := env.svc.UpdateAttendance(ctx, admin, 1, UpdateAttendanceRequest{CheckIn: ptr("08:00"), CheckOut: ptr("12:15")})
	require.NoError(t, err)
	assert.Equal(t, 4.25, *resp.HoursWorked)
	assert.Equal(t, "EMP001", resp.EmployeeCode)
	assert.Equal(t, "Sara Amrani", resp.EmployeeName)
	assert.Equal(t, "IT", resp.Department)
	require.Len(t, env.repo.corrections, 1)
	assert.Equal(t, "manual update", env.repo.corrections[0].Reason)

	env.sqlMock.ExpectBegin()
	env.sqlMock.ExpectCommit()
	resp, err = env.svc.UpdateAttendance(ctx, admin, 1, UpdateAttendanceRequest{CheckOut: ptr("13:00")})
	require.NoError(t, err)
	// only one side supplied: hours left as they were
	assert.Equal(t, 4.25, *resp.HoursWorked)
	assert.NoError(t, env.sqlMock.ExpectationsWereMet())
}

func TestResetTodayAttendance(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	env.sqlMock.ExpectBegin()
	env.sqlMock.ExpectRollback()
	err := env.svc.ResetTodayAttendance(ctx, admin, "EMP001")
	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)

	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	env.sqlMock.ExpectBegin()
	env.sqlMock.ExpectCommit()
	require.NoError(t, env.svc.ResetTodayAttendance(ctx, admin, "EMP001"))
	assert.Empty(t, env.repo.rows)

	last := env.notifier.events[len(env.notifier.events)-1]
	assert.Equal(t, events.NotificationKindSystem, last.Kind)
	assert.Equal(t, "attendance_reset", last.Type)
	assert.NoError(t, env.sqlMock.ExpectationsWereMet())
}

func TestCheckTodayStatus(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	self := domain.Actor{ID: 1, Role: domain.RoleEmployee}

	resp, err := env.svc.CheckTodayStatus(ctx, domain.ScopeFor(domain.ScopeSelf, self), "")
	require.NoError(t, err)
	assert.Equal(t, StatusNotChecked, resp.Status)
	assert.Nil(t, resp.Attendance)

	_, err = env.svc.MarkAttendance(ctx, admin, MarkAttendanceRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	resp, err = env.svc.CheckTodayStatus(ctx, domain.ScopeFor(domain.ScopeSelf, self), "EMP001")
	require.NoError(t, err)
	assert.True(t, resp.HasCheckedIn)
	assert.False(t, resp.HasCheckedOut)

	other := domain.Actor{ID: 7, Role: domain.RoleManager, Department: "Sales"}
	_, err = env.svc.CheckTodayStatus(ctx, domain.ScopeFor(domain.ScopeDepartment, other), "EMP001")
	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceDenied)
}

func TestComputeStats(t *testing.T) {
	s := computeStats("2026-03-02", DailyCounts{TotalEmployees: 3, Present: 2, CheckedOut: 1, Late: 1})
	assert.Equal(t, int64(1), s.CurrentlyInOffice)
	assert.Equal(t, int64(1), s.Absent)
	assert.Equal(t, int64(1), s.OnTime)
	assert.Equal(t, 66.67, s.AttendanceRate)

	s = computeStats("2026-03-02", DailyCounts{})
	assert.Equal(t, 0.0, s.AttendanceRate)

	// stale present count larger than the active headcount
	s = computeStats("2026-03-02", DailyCounts{TotalEmployees: 2, Present: 3})
	assert.Equal(t, 100.0, s.AttendanceRate)
	assert.Equal(t, int64(0), s.Absent)
}

func TestGetAttendanceStats_AdminOnly(t *testing.T) {
	env := setupService(t)
	_, err := env.svc.GetAttendanceStats(context.Background(), domain.Actor{ID: 1, Role: domain.RoleManager})
	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceDenied)

	resp, err := env.svc.GetAttendanceStats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, Date("2026-03-02"), resp.Date)
}
