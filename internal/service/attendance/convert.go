package attendance

import (
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

// parseDatePtr tolerates absent or malformed optional dates. Legacy exports
// carry free-text in the hire and termination columns; an unparseable value
// means the date is simply unknown.
func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &t
}

func parseDate(s string) time.Time {
	t, _ := validator.IsValidDate(s)
	return t
}

func parseInstant(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// datasetFromPayload materializes an inline preview payload into engine
// input. Rows that cannot be interpreted at all are skipped rather than
// failing the whole run.
func datasetFromPayload(p attendance.DatasetPayload) Dataset {
	ds := Dataset{}

	for _, in := range p.Employees {
		ds.Employees = append(ds.Employees, employee.Employee{
			Code:            in.Code,
			FullName:        in.FullName,
			ShiftStart:      in.ShiftStart,
			HireDate:        parseDatePtr(in.HireDate),
			TerminationDate: parseDatePtr(in.TerminationDate),
			Department:      in.Department,
			Sector:          in.Sector,
			Section:         in.Section,
			Branch:          in.Branch,
		})
	}

	for _, in := range p.Punches {
		at, ok := parseInstant(in.PunchedAt)
		if !ok {
			continue
		}
		ds.Punches = append(ds.Punches, punch.Punch{
			EmployeeCode: in.EmployeeCode,
			PunchedAt:    at,
		})
	}

	for _, in := range p.Rules {
		ds.Rules = append(ds.Rules, rule.SpecialRule{
			Scope:      rule.ParseScope(in.Scope),
			StartDate:  parseDate(in.StartDate),
			EndDate:    parseDate(in.EndDate),
			Priority:   in.Priority,
			Type:       rule.RuleType(in.Type),
			ShiftStart: in.ShiftStart,
			ShiftEnd:   in.ShiftEnd,
			Note:       in.Note,
		})
	}

	for _, in := range p.Leaves {
		ds.Leaves = append(ds.Leaves, leave.Leave{
			Type:      leave.Type(in.Type),
			Scope:     rule.ParseScope(in.Scope),
			StartDate: parseDate(in.StartDate),
			EndDate:   parseDate(in.EndDate),
			Note:      in.Note,
		})
	}

	for _, in := range p.Holidays {
		ds.Holidays = append(ds.Holidays, holiday.OfficialHoliday{
			Date: parseDate(in.Date),
			Name: in.Name,
		})
	}

	for _, in := range p.Adjustments {
		ds.Adjustments = append(ds.Adjustments, adjustment.Adjustment{
			EmployeeCode: in.EmployeeCode,
			Date:         parseDate(in.Date),
			Type:         adjustment.Type(in.Type),
			FromTime:     in.FromTime,
			ToTime:       in.ToTime,
			Note:         in.Note,
		})
	}

	for _, in := range p.Effects {
		ds.Effects = append(ds.Effects, adjustment.ImportedEffect{
			EmployeeCode: in.EmployeeCode,
			Date:         parseDate(in.Date),
			RawType:      in.Type,
			FromTime:     in.FromTime,
			ToTime:       in.ToTime,
		})
	}

	return ds
}

func clockPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

func recordToResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeCode: rec.EmployeeCode,
		Date:         rec.Date.Format("2006-01-02"),

		CheckIn:  clockPtr(rec.CheckIn),
		CheckOut: clockPtr(rec.CheckOut),

		TotalHours:    rec.TotalHours.String(),
		OvertimeHours: rec.OvertimeHours,

		Status:    string(rec.Status),
		Penalties: make([]attendance.PenaltyResponse, 0, len(rec.Penalties)),
		Notes:     rec.Notes,

		MissionStart:   clockPtr(rec.MissionStart),
		MissionEnd:     clockPtr(rec.MissionEnd),
		HalfDayExcused: rec.HalfDayExcused,

		IsOfficialHoliday:       rec.IsOfficialHoliday,
		WorkedOnOfficialHoliday: rec.WorkedOnOfficialHoliday,

		CompDaysFriday:        rec.CompDaysFriday,
		CompDaysOfficial:      rec.CompDaysOfficial,
		CompDaysTotal:         rec.CompDaysTotal,
		CompDaysUsed:          rec.CompDaysUsed,
		LeaveDeductionDays:    rec.LeaveDeductionDays,
		ExcusedAbsenceDays:    rec.ExcusedAbsenceDays,
		TerminationPeriodDays: rec.TerminationPeriodDays,
	}

	for _, p := range rec.Penalties {
		resp.Penalties = append(resp.Penalties, attendance.PenaltyResponse{
			Type:    string(p.Type),
			Value:   p.Value.String(),
			Minutes: p.Minutes,
		})
	}

	return resp
}

func recordsToResponses(records []attendance.Record) []attendance.RecordResponse {
	out := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, recordToResponse(rec))
	}
	return out
}
