package attendance

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

// Service implements attendance.AttendanceService on top of the engine and
// the staging repositories.
type Service struct {
	engine *Engine
	logger *slog.Logger

	employeeRepo   employee.EmployeeRepository
	punchRepo      punch.PunchRepository
	ruleRepo       rule.RuleRepository
	adjustmentRepo adjustment.AdjustmentRepository
	effectRepo     adjustment.EffectRepository
	leaveRepo      leave.LeaveRepository
	holidayRepo    holiday.HolidayRepository
	recordRepo     attendance.RecordRepository
}

func NewService(
	engine *Engine,
	logger *slog.Logger,
	employeeRepo employee.EmployeeRepository,
	punchRepo punch.PunchRepository,
	ruleRepo rule.RuleRepository,
	adjustmentRepo adjustment.AdjustmentRepository,
	effectRepo adjustment.EffectRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo holiday.HolidayRepository,
	recordRepo attendance.RecordRepository,
) *Service {
	return &Service{
		engine:         engine,
		logger:         logger,
		employeeRepo:   employeeRepo,
		punchRepo:      punchRepo,
		ruleRepo:       ruleRepo,
		adjustmentRepo: adjustmentRepo,
		effectRepo:     effectRepo,
		leaveRepo:      leaveRepo,
		holidayRepo:    holidayRepo,
		recordRepo:     recordRepo,
	}
}

func (s *Service) Process(ctx context.Context, req attendance.ProcessRequest) (attendance.ProcessResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ProcessResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	ds, err := s.loadDataset(ctx, start, end)
	if err != nil {
		return attendance.ProcessResponse{}, err
	}

	records, err := s.engine.Run(ds, optionsFromRequest(req, start, end))
	if err != nil {
		return attendance.ProcessResponse{}, fmt.Errorf("run engine: %w", err)
	}

	stored, err := s.recordRepo.UpsertBatch(ctx, records)
	if err != nil {
		return attendance.ProcessResponse{}, fmt.Errorf("persist records: %w", err)
	}

	s.logger.InfoContext(ctx, "attendance range processed",
		slog.String("start_date", req.StartDate),
		slog.String("end_date", req.EndDate),
		slog.Int("records", len(stored)),
	)

	return attendance.ProcessResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Records:   recordsToResponses(stored),
	}, nil
}

func (s *Service) Preview(ctx context.Context, req attendance.PreviewRequest) (attendance.ProcessResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ProcessResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	records, err := s.engine.Run(datasetFromPayload(req.Dataset), optionsFromRequest(req.ProcessRequest, start, end))
	if err != nil {
		return attendance.ProcessResponse{}, fmt.Errorf("run engine: %w", err)
	}

	return attendance.ProcessResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Records:   recordsToResponses(records),
	}, nil
}

func (s *Service) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("list records: %w", err)
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    recordsToResponses(records),
	}, nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return recordToResponse(rec), nil
}

// loadDataset pulls everything the engine needs for the range. The punch
// window is padded a day on each side so timezone conversion and overnight
// reattribution see the punches that belong to the boundary days.
func (s *Service) loadDataset(ctx context.Context, start, end time.Time) (Dataset, error) {
	var ds Dataset
	var err error

	if ds.Employees, err = s.employeeRepo.List(ctx); err != nil {
		return Dataset{}, fmt.Errorf("load employees: %w", err)
	}
	if ds.Punches, err = s.punchRepo.ListBetween(ctx, start.AddDate(0, 0, -1), end.AddDate(0, 0, 2)); err != nil {
		return Dataset{}, fmt.Errorf("load punches: %w", err)
	}
	if ds.Rules, err = s.ruleRepo.ListActiveBetween(ctx, start, end); err != nil {
		return Dataset{}, fmt.Errorf("load rules: %w", err)
	}
	if ds.Adjustments, err = s.adjustmentRepo.ListBetween(ctx, start, end); err != nil {
		return Dataset{}, fmt.Errorf("load adjustments: %w", err)
	}
	if ds.Effects, err = s.effectRepo.ListBetween(ctx, start, end); err != nil {
		return Dataset{}, fmt.Errorf("load effects: %w", err)
	}
	if ds.Leaves, err = s.leaveRepo.ListActiveBetween(ctx, start, end); err != nil {
		return Dataset{}, fmt.Errorf("load leaves: %w", err)
	}
	if ds.Holidays, err = s.holidayRepo.ListBetween(ctx, start, end); err != nil {
		return Dataset{}, fmt.Errorf("load holidays: %w", err)
	}

	return ds, nil
}

func optionsFromRequest(req attendance.ProcessRequest, start, end time.Time) Options {
	return Options{
		StartDate:                start,
		EndDate:                  end,
		EmployeeCodes:            req.EmployeeCodes,
		WorkedOnHolidayOverrides: req.WorkedOnHolidayOverrides,
		TimezoneOffsetMinutes:    req.TimezoneOffsetMinutes,
		DefaultPermissionMinutes: req.DefaultPermissionMinutes,
		DefaultHalfDayMinutes:    req.DefaultHalfDayMinutes,
	}
}
