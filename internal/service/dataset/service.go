package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/domain/holiday"
	"github.com/dawamhq/attendance-engine-go/internal/domain/leave"
	"github.com/dawamhq/attendance-engine-go/internal/domain/punch"
	"github.com/dawamhq/attendance-engine-go/internal/domain/rule"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/validator"
)

// Service stages the engine's input signals: the employee directory, raw
// punches, rules, adjustments, imported effects, leaves and holidays.
type Service interface {
	CreateEmployee(ctx context.Context, in attendance.EmployeeInput) (employee.Employee, error)
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	ImportPunches(ctx context.Context, in []attendance.PunchInput) (int, error)
	CreateRule(ctx context.Context, in attendance.RuleInput) (rule.SpecialRule, error)
	CreateAdjustment(ctx context.Context, in attendance.AdjustmentInput) (adjustment.Adjustment, error)
	ImportEffects(ctx context.Context, in []attendance.EffectInput) (int, error)
	CreateLeave(ctx context.Context, in attendance.LeaveInput) (leave.Leave, error)
	CreateHoliday(ctx context.Context, in attendance.HolidayInput) (holiday.OfficialHoliday, error)
}

type service struct {
	logger *slog.Logger

	employeeRepo   employee.EmployeeRepository
	punchRepo      punch.PunchRepository
	ruleRepo       rule.RuleRepository
	adjustmentRepo adjustment.AdjustmentRepository
	effectRepo     adjustment.EffectRepository
	leaveRepo      leave.LeaveRepository
	holidayRepo    holiday.HolidayRepository
}

func NewService(
	logger *slog.Logger,
	employeeRepo employee.EmployeeRepository,
	punchRepo punch.PunchRepository,
	ruleRepo rule.RuleRepository,
	adjustmentRepo adjustment.AdjustmentRepository,
	effectRepo adjustment.EffectRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo holiday.HolidayRepository,
) Service {
	return &service{
		logger:         logger,
		employeeRepo:   employeeRepo,
		punchRepo:      punchRepo,
		ruleRepo:       ruleRepo,
		adjustmentRepo: adjustmentRepo,
		effectRepo:     effectRepo,
		leaveRepo:      leaveRepo,
		holidayRepo:    holidayRepo,
	}
}

func (s *service) CreateEmployee(ctx context.Context, in attendance.EmployeeInput) (employee.Employee, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(in.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if in.ShiftStart != "" && !validator.IsValidClockTime(in.ShiftStart) {
		errs = append(errs, validator.ValidationError{Field: "shift_start", Message: "shift_start must be HH:MM"})
	}
	if len(errs) > 0 {
		return employee.Employee{}, errs
	}

	return s.employeeRepo.Create(ctx, employee.Employee{
		Code:            in.Code,
		FullName:        in.FullName,
		ShiftStart:      in.ShiftStart,
		HireDate:        parseOptionalDate(in.HireDate),
		TerminationDate: parseOptionalDate(in.TerminationDate),
		Department:      in.Department,
		Sector:          in.Sector,
		Section:         in.Section,
		Branch:          in.Branch,
	})
}

func (s *service) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *service) ImportPunches(ctx context.Context, in []attendance.PunchInput) (int, error) {
	var errs validator.ValidationErrors
	punches := make([]punch.Punch, 0, len(in))

	for i, p := range in {
		if validator.IsEmpty(p.EmployeeCode) {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].employee_code",
				Message: "employee_code is required",
			})
			continue
		}
		at, err := time.Parse(time.RFC3339, p.PunchedAt)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].punched_at",
				Message: "punched_at must be RFC3339",
			})
			continue
		}
		punches = append(punches, punch.Punch{EmployeeCode: p.EmployeeCode, PunchedAt: at})
	}
	if len(errs) > 0 {
		return 0, errs
	}

	inserted, err := s.punchRepo.CreateBatch(ctx, punches)
	if err != nil {
		return 0, fmt.Errorf("import punches: %w", err)
	}

	s.logger.InfoContext(ctx, "punches imported",
		slog.Int("received", len(in)),
		slog.Int("inserted", inserted),
	)
	return inserted, nil
}

func (s *service) CreateRule(ctx context.Context, in attendance.RuleInput) (rule.SpecialRule, error) {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(in.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(in.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	ruleTypes := []string{
		string(rule.RuleCustomShift),
		string(rule.RuleAttendanceExempt),
		string(rule.RuleOvernightStay),
	}
	if !validator.IsInSlice(in.Type, ruleTypes) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: custom_shift, attendance_exempt, overnight_stay"})
	}
	if in.ShiftStart != "" && !validator.IsValidClockTime(in.ShiftStart) {
		errs = append(errs, validator.ValidationError{Field: "shift_start", Message: "shift_start must be HH:MM"})
	}
	if in.ShiftEnd != "" && !validator.IsValidClockTime(in.ShiftEnd) {
		errs = append(errs, validator.ValidationError{Field: "shift_end", Message: "shift_end must be HH:MM"})
	}
	if len(errs) > 0 {
		return rule.SpecialRule{}, errs
	}

	return s.ruleRepo.Create(ctx, rule.SpecialRule{
		Scope:      rule.ParseScope(in.Scope),
		StartDate:  start,
		EndDate:    end,
		Priority:   in.Priority,
		Type:       rule.RuleType(in.Type),
		ShiftStart: in.ShiftStart,
		ShiftEnd:   in.ShiftEnd,
		Note:       in.Note,
	})
}

func (s *service) CreateAdjustment(ctx context.Context, in attendance.AdjustmentInput) (adjustment.Adjustment, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(in.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	}
	date, dateOK := validator.IsValidDate(in.Date)
	if !dateOK {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(in.Type, adjustment.TypeValues) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "unknown adjustment type"})
	}

	typ := adjustment.Type(in.Type)
	fromTime, toTime := in.FromTime, in.ToTime
	if typ.IsFullDay() {
		// sentinel markers, real clock times make no sense for these types
		fromTime, toTime = "00:00:00", "23:59:59"
	} else {
		if fromTime != "" && !validator.IsValidClockTime(fromTime) {
			errs = append(errs, validator.ValidationError{Field: "from_time", Message: "from_time must be HH:MM[:SS]"})
		}
		if toTime != "" && !validator.IsValidClockTime(toTime) {
			errs = append(errs, validator.ValidationError{Field: "to_time", Message: "to_time must be HH:MM[:SS]"})
		}
	}
	if len(errs) > 0 {
		return adjustment.Adjustment{}, errs
	}

	return s.adjustmentRepo.Create(ctx, adjustment.Adjustment{
		EmployeeCode: in.EmployeeCode,
		Date:         date,
		Type:         typ,
		FromTime:     fromTime,
		ToTime:       toTime,
		Note:         in.Note,
	})
}

func (s *service) ImportEffects(ctx context.Context, in []attendance.EffectInput) (int, error) {
	var errs validator.ValidationErrors
	effects := make([]adjustment.ImportedEffect, 0, len(in))

	for i, e := range in {
		if validator.IsEmpty(e.EmployeeCode) {
			errs = append(errs, validator.ValidationError{
				Field:   "effects[" + validator.Itoa(i) + "].employee_code",
				Message: "employee_code is required",
			})
			continue
		}
		date, ok := validator.IsValidDate(e.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effects[" + validator.Itoa(i) + "].date",
				Message: "date must be in YYYY-MM-DD format",
			})
			continue
		}
		// the raw label is preserved as-is; mapping happens at processing time
		effects = append(effects, adjustment.ImportedEffect{
			EmployeeCode: e.EmployeeCode,
			Date:         date,
			RawType:      e.Type,
			FromTime:     e.FromTime,
			ToTime:       e.ToTime,
		})
	}
	if len(errs) > 0 {
		return 0, errs
	}

	inserted, err := s.effectRepo.CreateBatch(ctx, effects)
	if err != nil {
		return 0, fmt.Errorf("import effects: %w", err)
	}

	s.logger.InfoContext(ctx, "effects imported", slog.Int("inserted", inserted))
	return inserted, nil
}

func (s *service) CreateLeave(ctx context.Context, in attendance.LeaveInput) (leave.Leave, error) {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(in.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(in.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if !validator.IsInSlice(in.Type, []string{string(leave.TypeOfficial), string(leave.TypeCollections)}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: official, collections"})
	}
	if len(errs) > 0 {
		return leave.Leave{}, errs
	}

	return s.leaveRepo.Create(ctx, leave.Leave{
		Type:      leave.Type(in.Type),
		Scope:     rule.ParseScope(in.Scope),
		StartDate: start,
		EndDate:   end,
		Note:      in.Note,
	})
}

func (s *service) CreateHoliday(ctx context.Context, in attendance.HolidayInput) (holiday.OfficialHoliday, error) {
	date, ok := validator.IsValidDate(in.Date)
	if !ok {
		return holiday.OfficialHoliday{}, validator.ValidationErrors{{
			Field: "date", Message: "date must be in YYYY-MM-DD format",
		}}
	}

	return s.holidayRepo.Create(ctx, holiday.OfficialHoliday{Date: date, Name: in.Name})
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &t
}
