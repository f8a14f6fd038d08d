package attendance

import (
	"strings"

	"github.com/dawamhq/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// PROCESS / PREVIEW DTOs
// ========================================

// ProcessRequest asks the service to load the dataset for a date range,
// run the engine and persist the resulting records.
type ProcessRequest struct {
	StartDate                string          `json:"start_date"` // YYYY-MM-DD
	EndDate                  string          `json:"end_date"`   // YYYY-MM-DD
	EmployeeCodes            []string        `json:"employee_codes,omitempty"`
	WorkedOnHolidayOverrides map[string]bool `json:"worked_on_holiday_overrides,omitempty"` // key: "<code>__<YYYY-MM-DD>"
	TimezoneOffsetMinutes    *int            `json:"timezone_offset_minutes,omitempty"`
	DefaultPermissionMinutes *int            `json:"default_permission_minutes,omitempty"`
	DefaultHalfDayMinutes    *int            `json:"default_half_day_minutes,omitempty"`
}

func (r *ProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.TimezoneOffsetMinutes != nil && (*r.TimezoneOffsetMinutes < -12*60 || *r.TimezoneOffsetMinutes > 14*60) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone_offset_minutes",
			Message: "timezone_offset_minutes must be between -720 and 840",
		})
	}
	if r.DefaultPermissionMinutes != nil && *r.DefaultPermissionMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_permission_minutes",
			Message: "default_permission_minutes must be positive",
		})
	}
	if r.DefaultHalfDayMinutes != nil && *r.DefaultHalfDayMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_half_day_minutes",
			Message: "default_half_day_minutes must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Input payload shapes mirror what the import pipeline produces: dates are
// YYYY-MM-DD, punch instants are RFC3339, clock times are HH:MM[:SS].

type EmployeeInput struct {
	Code            string  `json:"code"`
	FullName        string  `json:"full_name,omitempty"`
	ShiftStart      string  `json:"shift_start,omitempty"` // HH:MM
	HireDate        *string `json:"hire_date,omitempty"`
	TerminationDate *string `json:"termination_date,omitempty"`
	Department      string  `json:"department,omitempty"`
	Sector          string  `json:"sector,omitempty"`
	Section         string  `json:"section,omitempty"`
	Branch          string  `json:"branch,omitempty"`
}

type PunchInput struct {
	EmployeeCode string `json:"employee_code"`
	PunchedAt    string `json:"punched_at"` // RFC3339
}

type RuleInput struct {
	Scope      string `json:"scope"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Priority   int    `json:"priority"`
	Type       string `json:"type"`
	ShiftStart string `json:"shift_start,omitempty"`
	ShiftEnd   string `json:"shift_end,omitempty"`
	Note       string `json:"note,omitempty"`
}

type LeaveInput struct {
	Type      string `json:"type"`
	Scope     string `json:"scope"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Note      string `json:"note,omitempty"`
}

type HolidayInput struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type AdjustmentInput struct {
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
	Type         string `json:"type"`
	FromTime     string `json:"from_time,omitempty"`
	ToTime       string `json:"to_time,omitempty"`
	Note         string `json:"note,omitempty"`
}

type EffectInput struct {
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
	Type         string `json:"type"` // free-text label, normalized by the engine
	FromTime     string `json:"from_time,omitempty"`
	ToTime       string `json:"to_time,omitempty"`
}

// DatasetPayload is an inline input snapshot for preview runs.
type DatasetPayload struct {
	Employees   []EmployeeInput   `json:"employees"`
	Punches     []PunchInput      `json:"punches,omitempty"`
	Rules       []RuleInput       `json:"rules,omitempty"`
	Leaves      []LeaveInput      `json:"leaves,omitempty"`
	Holidays    []HolidayInput    `json:"holidays,omitempty"`
	Adjustments []AdjustmentInput `json:"adjustments,omitempty"`
	Effects     []EffectInput     `json:"effects,omitempty"`
}

// PreviewRequest runs the engine over an inline snapshot without touching
// storage.
type PreviewRequest struct {
	ProcessRequest
	Dataset DatasetPayload `json:"dataset"`
}

func (r *PreviewRequest) Validate() error {
	if err := r.ProcessRequest.Validate(); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if len(r.Dataset.Employees) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "dataset.employees",
			Message: "at least one employee is required",
		})
	}
	for i, p := range r.Dataset.Punches {
		if validator.IsEmpty(p.EmployeeCode) {
			errs = append(errs, validator.ValidationError{
				Field:   "dataset.punches[" + validator.Itoa(i) + "].employee_code",
				Message: "employee_code is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RECORD RESPONSE DTOs
// ========================================

type PenaltyResponse struct {
	Type    string `json:"type"`
	Value   string `json:"value"` // exact decimal, e.g. "0.5"
	Minutes *int   `json:"minutes,omitempty"`
}

type RecordResponse struct {
	ID           string `json:"id,omitempty"`
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`

	CheckIn  *string `json:"check_in,omitempty"`  // HH:MM:SS local
	CheckOut *string `json:"check_out,omitempty"` // HH:MM:SS local

	TotalHours    string `json:"total_hours"`
	OvertimeHours int    `json:"overtime_hours"`

	Status    string            `json:"status"`
	Penalties []PenaltyResponse `json:"penalties"`
	Notes     []string          `json:"notes,omitempty"`

	MissionStart   *string `json:"mission_start,omitempty"`
	MissionEnd     *string `json:"mission_end,omitempty"`
	HalfDayExcused bool    `json:"half_day_excused,omitempty"`

	IsOfficialHoliday       bool  `json:"is_official_holiday,omitempty"`
	WorkedOnOfficialHoliday *bool `json:"worked_on_official_holiday,omitempty"`

	CompDaysFriday        int `json:"comp_days_friday,omitempty"`
	CompDaysOfficial      int `json:"comp_days_official,omitempty"`
	CompDaysTotal         int `json:"comp_days_total,omitempty"`
	CompDaysUsed          int `json:"comp_days_used,omitempty"`
	LeaveDeductionDays    int `json:"leave_deduction_days,omitempty"`
	ExcusedAbsenceDays    int `json:"excused_absence_days,omitempty"`
	TerminationPeriodDays int `json:"termination_period_days,omitempty"`
}

type ProcessResponse struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Records   []RecordResponse `json:"records"`
}

// ========================================
// LIST DTOs
// ========================================

type RecordFilter struct {
	EmployeeCode *string `json:"employee_code,omitempty"`
	Status       *string `json:"status,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, employee_code, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 31 // one month per employee by default
	}
	if f.Limit > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 500",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_code", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_code, status",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}
