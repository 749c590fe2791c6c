package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	attendanceerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/attendance/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	manualUpdateReason   = "manual update"
	fullAttendanceReason = "full attendance"
)

// EmployeeFinder resolves a numeric id or EMP### code.
type EmployeeFinder interface {
	FindByRef(ctx context.Context, ref string) (*employee.Employee, error)
}

// AlreadyCompleteError rejects a check on a day that already has both times.
// It carries the stored record so the client can offer a correction.
type AlreadyCompleteError struct {
	Record AttendanceResponse
}

func (e *AlreadyCompleteError) Error() string {
	return attendanceerrors.ErrAlreadyComplete.Error()
}

func (e *AlreadyCompleteError) Unwrap() error {
	return attendanceerrors.ErrAlreadyComplete
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	MarkAttendance(ctx context.Context, actor domain.Actor, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
	CheckIn(ctx context.Context, actor domain.Actor, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
	FacialCheckIn(ctx context.Context, actor domain.Actor, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
	CheckOut(ctx context.Context, actor domain.Actor, employeeRef string) (MarkAttendanceResponse, error)
	HandleFullAttendance(ctx context.Context, actor domain.Actor, req FullAttendanceRequest) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, actor domain.Actor, id int64, req UpdateAttendanceRequest) (AttendanceResponse, error)
	ResetTodayAttendance(ctx context.Context, actor domain.Actor, employeeRef string) error
	GetAllAttendance(ctx context.Context, scope domain.Scope, filter AttendanceFilter) ([]AttendanceResponse, error)
	CheckTodayStatus(ctx context.Context, scope domain.Scope, employeeRef string) (TodayStatusResponse, error)
	GetAttendanceStats(ctx context.Context, actor domain.Actor) (StatsResponse, error)
	ListCorrections(ctx context.Context, actor domain.Actor, attendanceID int64) ([]CorrectionResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeFinder
	notifier  notification.Notifier
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeFinder,
	notifier notification.Notifier,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		notifier:  notifier,
		loc:       loc,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *service) today() Date {
	return DateOf(s.clock())
}

// at is the wall clock instant of c on date in the configured zone.
func (s *service) at(date Date, c ClockTime) time.Time {
	d, err := time.ParseInLocation(dateLayout, string(date), s.loc)
	if err != nil {
		return s.clock()
	}
	return d.Add(time.Duration(c) * time.Second)
}

// Writes are reserved to admins. Routes enforce the same rule through the
// policy; this keeps the service safe when called from other entry points.
func requireWriter(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return attendanceerrors.ErrAttendanceDenied
	}
	return nil
}

func (s *service) resolveEmployee(ctx context.Context, ref string) (*employee.Employee, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperror.RequiredField("employeeId")
	}
	empl, err := s.employees.FindByRef(ctx, ref)
	if err != nil {
		if isNotFound(err) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if empl == nil || !empl.IsActive {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}
	return empl, nil
}

func (s *service) inTx(ctx context.Context, fn func(qtx Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func parseOptionalClock(raw *string) (*ClockTime, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	c, err := ParseClock(*raw)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func methodFor(checkType string) string {
	if checkType == CheckTypeFacial {
		return MethodFacial
	}
	return MethodManual
}

// arrivalStatus flags a late arrival only on the current day.
func arrivalStatus(isToday bool, checkIn ClockTime) string {
	if isToday && isLateClock(checkIn) {
		return StatusLate
	}
	return StatusPresent
}

func completeStatus(requested string, isToday bool, checkIn ClockTime) string {
	if requested != "" {
		return requested
	}
	if isToday && isLateClock(checkIn) {
		return StatusLate
	}
	return StatusCheckedOut
}

func (s *service) CheckIn(ctx context.Context, actor domain.Actor, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
	req.CheckType = CheckTypeManual
	return s.MarkAttendance(ctx, actor, req)
}

func (s *service) FacialCheckIn(ctx context.Context, actor domain.Actor, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
	req.CheckType = CheckTypeFacial
	return s.MarkAttendance(ctx, actor, req)
}

// markInput is a validated MarkAttendanceRequest.
type markInput struct {
	req      MarkAttendanceRequest
	empl     *employee.Employee
	date     Date
	isToday  bool
	now      time.Time
	checkIn  *ClockTime
	checkOut *ClockTime
	method   string
}

func (s *service) MarkAttendance(ctx context.Context, actor domain.Actor, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
	if err := requireWriter(actor); err != nil {
		return MarkAttendanceResponse{}, err
	}

	empl, err := s.resolveEmployee(ctx, string(req.EmployeeID))
	if err != nil {
		return MarkAttendanceResponse{}, err
	}

	now := s.clock()
	in := markInput{req: req, empl: empl, now: now, date: DateOf(now), method: methodFor(req.CheckType)}
	if strings.TrimSpace(req.Date) != "" {
		if in.date, err = ParseDate(req.Date); err != nil {
			return MarkAttendanceResponse{}, err
		}
	}
	in.isToday = in.date == DateOf(now)

	if in.checkIn, err = parseOptionalClock(req.CheckIn); err != nil {
		return MarkAttendanceResponse{}, err
	}
	if in.checkOut, err = parseOptionalClock(req.CheckOut); err != nil {
		return MarkAttendanceResponse{}, err
	}
	if req.Status != "" && !validStatus(req.Status) {
		return MarkAttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	existing, err := s.repo.FindForDate(ctx, empl.ID, in.date)
	if err != nil && !isNotFound(err) {
		return MarkAttendanceResponse{}, err
	}

	if existing == nil {
		resp, inserted, err := s.handleNewCheckIn(ctx, in)
		if err != nil || inserted {
			return resp, err
		}
		// Lost the insert race: continue against the row that won.
		existing, err = s.repo.FindForDate(ctx, empl.ID, in.date)
		if err != nil {
			return MarkAttendanceResponse{}, err
		}
	}

	return s.handleExistingRecord(ctx, actor, in, existing)
}

func (s *service) handleNewCheckIn(ctx context.Context, in markInput) (MarkAttendanceResponse, bool, error) {
	if in.checkIn == nil && (in.checkOut != nil || in.req.CheckType == CheckTypeCheckOut) {
		return MarkAttendanceResponse{}, false, attendanceerrors.ErrNoCheckInToday
	}

	checkIn := ClockOf(in.now)
	if in.checkIn != nil {
		checkIn = *in.checkIn
	}

	row := &Attendance{
		EmployeeID:         in.empl.ID,
		RecordDate:         in.date,
		CheckInTime:        &checkIn,
		Status:             arrivalStatus(in.isToday, checkIn),
		VerificationMethod: in.method,
		Notes:              in.req.Notes,
		ShiftName:          in.req.ShiftName,
	}
	message := "Check-in recorded"
	if in.checkOut != nil {
		h, err := hoursBetween(checkIn, *in.checkOut)
		if err != nil {
			return MarkAttendanceResponse{}, false, err
		}
		row.CheckOutTime = in.checkOut
		row.setHours(h)
		row.Status = completeStatus(in.req.Status, in.isToday, checkIn)
		message = "Attendance recorded"
	}

	inserted, err := s.repo.InsertIfAbsent(ctx, row)
	if err != nil || !inserted {
		return MarkAttendanceResponse{}, false, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("attendance check-in",
		zap.Int64("employee_id", in.empl.ID),
		zap.String("date", string(in.date)),
		zap.String("check_in", checkIn.HHMM()),
		zap.String("status", row.Status),
	)
	s.notifier.Publish(ctx, notification.AttendanceEvent(in.empl.EmployeeCode, CheckTypeCheckIn, s.at(in.date, checkIn)))

	return MarkAttendanceResponse{
		CheckType:    CheckTypeCheckIn,
		EmployeeName: in.empl.FullName(),
		Attendance:   s.withEmployee(mapToResponse(*row), in.empl),
		Message:      message,
	}, true, nil
}

func (s *service) handleExistingRecord(ctx context.Context, actor domain.Actor, in markInput, existing *Attendance) (MarkAttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	switch {
	case in.checkIn != nil && in.checkOut != nil:
		h, err := hoursBetween(*in.checkIn, *in.checkOut)
		if err != nil {
			return MarkAttendanceResponse{}, err
		}
		old := *existing
		existing.CheckInTime = in.checkIn
		existing.CheckOutTime = in.checkOut
		existing.setHours(h)
		existing.Status = completeStatus(in.req.Status, in.isToday, *in.checkIn)
		existing.VerificationMethod = MethodManualCorrection
		if in.req.Notes != nil {
			existing.Notes = in.req.Notes
		}

		err = s.inTx(ctx, func(qtx Repository) error {
			if err := qtx.Update(ctx, existing); err != nil {
				return err
			}
			return qtx.CreateCorrection(ctx, correctionOf(old, *existing, actor.ID, "full correction"))
		})
		if err != nil {
			return MarkAttendanceResponse{}, err
		}

		log.Info("attendance corrected", zap.Int64("attendance_id", existing.ID))
		s.notifier.Publish(ctx, notification.UserEvent(
			in.empl.ID,
			"Attendance corrected",
			fmt.Sprintf("Your attendance for %s was corrected to %s - %s", existing.RecordDate, in.checkIn.HHMM(), in.checkOut.HHMM()),
			notification.TypeAttendanceUpdated,
			map[string]any{"attendance_id": existing.ID, "date": string(existing.RecordDate)},
		))
		return s.markResponse("correction", "Attendance corrected", in.empl, *existing), nil

	case existing.hasCheckIn() && !existing.hasCheckOut() && (in.checkOut != nil || in.req.CheckType == CheckTypeCheckOut):
		checkOut := ClockOf(in.now)
		if in.checkOut != nil {
			checkOut = *in.checkOut
		}
		h, err := hoursBetween(*existing.CheckInTime, checkOut)
		if err != nil {
			return MarkAttendanceResponse{}, err
		}
		existing.CheckOutTime = &checkOut
		existing.setHours(h)
		existing.Status = StatusCheckedOut
		if err := s.repo.Update(ctx, existing); err != nil {
			return MarkAttendanceResponse{}, err
		}

		log.Info("attendance check-out",
			zap.Int64("attendance_id", existing.ID),
			zap.String("check_out", checkOut.HHMM()),
			zap.Float64("hours", h),
		)
		s.notifier.Publish(ctx, notification.AttendanceEvent(in.empl.EmployeeCode, CheckTypeCheckOut, s.at(existing.RecordDate, checkOut)))
		return s.markResponse(CheckTypeCheckOut, "Check-out recorded", in.empl, *existing), nil

	case existing.hasCheckIn() && existing.hasCheckOut():
		return MarkAttendanceResponse{}, &AlreadyCompleteError{Record: s.withEmployee(mapToResponse(*existing), in.empl)}

	case !existing.hasCheckIn() && in.checkIn != nil:
		existing.CheckInTime = in.checkIn
		existing.Status = arrivalStatus(in.isToday, *in.checkIn)
		existing.VerificationMethod = in.method
		if err := s.repo.Update(ctx, existing); err != nil {
			return MarkAttendanceResponse{}, err
		}

		s.notifier.Publish(ctx, notification.AttendanceEvent(in.empl.EmployeeCode, CheckTypeCheckIn, s.at(existing.RecordDate, *in.checkIn)))
		return s.markResponse(CheckTypeCheckIn, "Check-in recorded", in.empl, *existing), nil

	default:
		if existing.hasCheckIn() {
			return MarkAttendanceResponse{}, attendanceerrors.ErrCheckOutRequired
		}
		return MarkAttendanceResponse{}, attendanceerrors.ErrCheckInRequired
	}
}

func (s *service) markResponse(checkType, message string, empl *employee.Employee, a Attendance) MarkAttendanceResponse {
	return MarkAttendanceResponse{
		CheckType:    checkType,
		EmployeeName: empl.FullName(),
		Attendance:   s.withEmployee(mapToResponse(a), empl),
		Message:      message,
	}
}

func (s *service) withEmployee(resp AttendanceResponse, empl *employee.Employee) AttendanceResponse {
	resp.EmployeeCode = empl.EmployeeCode
	resp.EmployeeName = empl.FullName()
	resp.Department = empl.Department
	return resp
}

func correctionOf(old, updated Attendance, correctedBy int64, reason string) *Correction {
	return &Correction{
		AttendanceID: updated.ID,
		EmployeeID:   updated.EmployeeID,
		CorrectedBy:  correctedBy,
		OldCheckIn:   old.CheckInTime,
		OldCheckOut:  old.CheckOutTime,
		OldStatus:    old.Status,
		NewCheckIn:   updated.CheckInTime,
		NewCheckOut:  updated.CheckOutTime,
		NewStatus:    updated.Status,
		Reason:       reason,
	}
}

func (s *service) CheckOut(ctx context.Context, actor domain.Actor, employeeRef string) (MarkAttendanceResponse, error) {
	if err := requireWriter(actor); err != nil {
		return MarkAttendanceResponse{}, err
	}
	empl, err := s.resolveEmployee(ctx, employeeRef)
	if err != nil {
		return MarkAttendanceResponse{}, err
	}

	now := s.clock()
	open, err := s.repo.FindOpenForDate(ctx, empl.ID, DateOf(now))
	if err != nil {
		if isNotFound(err) {
			return MarkAttendanceResponse{}, attendanceerrors.ErrNoCheckInToday
		}
		return MarkAttendanceResponse{}, err
	}

	checkOut := ClockOf(now)
	h, err := hoursBetween(*open.CheckInTime, checkOut)
	if err != nil {
		return MarkAttendanceResponse{}, err
	}
	open.CheckOutTime = &checkOut
	open.setHours(h)
	open.Status = StatusCheckedOut
	if err := s.repo.Update(ctx, open); err != nil {
		return MarkAttendanceResponse{}, err
	}

	s.notifier.Publish(ctx, notification.AttendanceEvent(empl.EmployeeCode, CheckTypeCheckOut, s.at(open.RecordDate, checkOut)))
	return s.markResponse(CheckTypeCheckOut, "Check-out recorded", empl, *open), nil
}

func (s *service) HandleFullAttendance(ctx context.Context, actor domain.Actor, req FullAttendanceRequest) (AttendanceResponse, error) {
	if err := requireWriter(actor); err != nil {
		return AttendanceResponse{}, err
	}
	empl, err := s.resolveEmployee(ctx, string(req.EmployeeID))
	if err != nil {
		return AttendanceResponse{}, err
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return AttendanceResponse{}, err
	}
	checkIn, err := ParseClock(req.CheckIn)
	if err != nil {
		return AttendanceResponse{}, err
	}
	checkOut, err := ParseClock(req.CheckOut)
	if err != nil {
		return AttendanceResponse{}, err
	}
	h, err := hoursBetween(checkIn, checkOut)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if req.Status != "" && !validStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	row := &Attendance{
		EmployeeID:         empl.ID,
		RecordDate:         date,
		CheckInTime:        &checkIn,
		CheckOutTime:       &checkOut,
		Status:             completeStatus(req.Status, date == s.today(), checkIn),
		VerificationMethod: methodFor(req.CheckType),
		Notes:              req.Notes,
		ShiftName:          req.ShiftName,
		UpdatedAt:          s.clock(),
	}
	row.setHours(h)

	existing, err := s.repo.FindForDate(ctx, empl.ID, date)
	if err != nil && !isNotFound(err) {
		return AttendanceResponse{}, err
	}
	if existing != nil && existing.hasCheckIn() && existing.hasCheckOut() {
		return AttendanceResponse{}, &AlreadyCompleteError{Record: s.withEmployee(mapToResponse(*existing), empl)}
	}

	if existing == nil {
		err = s.repo.UpsertFull(ctx, row)
	} else {
		// A partial row for the day is completed; the overwrite is audited.
		err = s.inTx(ctx, func(qtx Repository) error {
			if err := qtx.UpsertFull(ctx, row); err != nil {
				return err
			}
			return qtx.CreateCorrection(ctx, correctionOf(*existing, *row, actor.ID, fullAttendanceReason))
		})
	}
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.notifier.Publish(ctx, notification.UserEvent(
		empl.ID,
		"Attendance recorded",
		fmt.Sprintf("Attendance for %s recorded: %s - %s", date, checkIn.HHMM(), checkOut.HHMM()),
		notification.TypeAttendanceUpdated,
		map[string]any{"attendance_id": row.ID, "date": string(date)},
	))
	return s.withEmployee(mapToResponse(*row), empl), nil
}

func (s *service) UpdateAttendance(ctx context.Context, actor domain.Actor, id int64, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	if err := requireWriter(actor); err != nil {
		return AttendanceResponse{}, err
	}
	if req.CheckIn == nil && req.CheckOut == nil && req.Status == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoFieldsToUpdate
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	old := *row

	if req.CheckIn != nil {
		c, err := ParseClock(*req.CheckIn)
		if err != nil {
			return AttendanceResponse{}, err
		}
		row.CheckInTime = &c
	}
	if req.CheckOut != nil {
		c, err := ParseClock(*req.CheckOut)
		if err != nil {
			return AttendanceResponse{}, err
		}
		row.CheckOutTime = &c
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
		}
		row.Status = *req.Status
	}
	if req.CheckIn != nil && req.CheckOut != nil {
		h, err := hoursBetween(*row.CheckInTime, *row.CheckOutTime)
		if err != nil {
			return AttendanceResponse{}, err
		}
		row.setHours(h)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = manualUpdateReason
	}

	err = s.inTx(ctx, func(qtx Repository) error {
		if err := qtx.Update(ctx, row); err != nil {
			return err
		}
		return qtx.CreateCorrection(ctx, correctionOf(old, *row, actor.ID, reason))
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.notifier.Publish(ctx, notification.UserEvent(
		row.EmployeeID,
		"Attendance updated",
		fmt.Sprintf("Your attendance for %s was updated", row.RecordDate),
		notification.TypeAttendanceUpdated,
		map[string]any{"attendance_id": row.ID, "reason": reason},
	))

	resp := mapToResponse(*row)
	empl, err := s.employees.FindByRef(ctx, strconv.FormatInt(row.EmployeeID, 10))
	if err != nil || empl == nil {
		contextutil.GetLogger(ctx, s.logger).Warn("attendance updated but employee lookup failed",
			zap.Int64("attendance_id", row.ID),
			zap.Int64("employee_id", row.EmployeeID),
			zap.Error(err),
		)
		return resp, nil
	}
	return s.withEmployee(resp, empl), nil
}

func (s *service) ResetTodayAttendance(ctx context.Context, actor domain.Actor, employeeRef string) error {
	if err := requireWriter(actor); err != nil {
		return err
	}
	empl, err := s.resolveEmployee(ctx, employeeRef)
	if err != nil {
		return err
	}

	today := s.today()
	err = s.inTx(ctx, func(qtx Repository) error {
		n, err := qtx.DeleteForDate(ctx, empl.ID, today)
		if err != nil {
			return err
		}
		if n == 0 {
			return attendanceerrors.ErrAttendanceNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("attendance reset",
		zap.Int64("employee_id", empl.ID),
		zap.Int64("actor_id", actor.ID),
		zap.String("date", string(today)),
	)
	s.notifier.Publish(ctx, notification.SystemEvent(
		"Attendance reset",
		fmt.Sprintf("Today's attendance for %s (%s) was reset", empl.FullName(), empl.EmployeeCode),
		notification.TypeAttendanceReset,
		map[string]any{"employee_id": empl.ID, "date": string(today), "reset_by": actor.ID},
	))
	return nil
}

func (s *service) GetAllAttendance(ctx context.Context, scope domain.Scope, filter AttendanceFilter) ([]AttendanceResponse, error) {
	for _, d := range []string{filter.Date, filter.StartDate, filter.EndDate} {
		if d == "" {
			continue
		}
		if _, err := ParseDate(d); err != nil {
			return nil, err
		}
	}
	filter.EmployeeCode = strings.ToUpper(strings.TrimSpace(filter.EmployeeCode))

	rows, err := s.repo.FindAll(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	out := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapRowToResponse(r))
	}
	return out, nil
}

func (s *service) CheckTodayStatus(ctx context.Context, scope domain.Scope, employeeRef string) (TodayStatusResponse, error) {
	if strings.TrimSpace(employeeRef) == "" && scope.EmployeeID > 0 {
		employeeRef = fmt.Sprint(scope.EmployeeID)
	}
	empl, err := s.resolveEmployee(ctx, employeeRef)
	if err != nil {
		return TodayStatusResponse{}, err
	}
	if !scope.Allows(empl.ID, empl.Department) {
		return TodayStatusResponse{}, attendanceerrors.ErrAttendanceDenied
	}

	today := s.today()
	resp := TodayStatusResponse{
		EmployeeID:   empl.ID,
		EmployeeCode: empl.EmployeeCode,
		EmployeeName: empl.FullName(),
		Date:         today,
		Status:       StatusNotChecked,
	}

	row, err := s.repo.FindForDate(ctx, empl.ID, today)
	if err != nil {
		if isNotFound(err) {
			return resp, nil
		}
		return TodayStatusResponse{}, err
	}

	a := s.withEmployee(mapToResponse(*row), empl)
	resp.Attendance = &a
	resp.Status = row.Status
	resp.HasCheckedIn = row.hasCheckIn()
	resp.HasCheckedOut = row.hasCheckOut()
	return resp, nil
}

func (s *service) GetAttendanceStats(ctx context.Context, actor domain.Actor) (StatsResponse, error) {
	if !actor.IsAdmin() {
		return StatsResponse{}, attendanceerrors.ErrAttendanceDenied
	}

	today := s.today()
	c, err := s.repo.DailyCounts(ctx, today)
	if err != nil {
		return StatsResponse{}, err
	}
	return computeStats(today, c), nil
}

func computeStats(date Date, c DailyCounts) StatsResponse {
	resp := StatsResponse{
		Date:              date,
		TotalEmployees:    c.TotalEmployees,
		Present:           c.Present,
		CheckedOut:        c.CheckedOut,
		Late:              c.Late,
		CurrentlyInOffice: c.Present - c.CheckedOut,
		Absent:            c.TotalEmployees - c.Present,
		OnTime:            c.Present - c.Late,
	}
	if resp.Absent < 0 {
		resp.Absent = 0
	}
	if c.TotalEmployees > 0 {
		rate := decimal.NewFromInt(c.Present).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(c.TotalEmployees))
		if rate.GreaterThan(decimal.NewFromInt(100)) {
			rate = decimal.NewFromInt(100)
		}
		resp.AttendanceRate, _ = rate.Round(2).Float64()
	}
	return resp
}

func (s *service) ListCorrections(ctx context.Context, actor domain.Actor, attendanceID int64) ([]CorrectionResponse, error) {
	if err := requireWriter(actor); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, attendanceID); err != nil {
		if isNotFound(err) {
			return nil, attendanceerrors.ErrAttendanceNotFound
		}
		return nil, err
	}

	rows, err := s.repo.ListCorrections(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	out := make([]CorrectionResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, mapCorrection(c))
	}
	return out, nil
}
