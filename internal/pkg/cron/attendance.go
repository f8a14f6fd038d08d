package cron

import (
	"context"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
)

// AttendanceJobs reprocesses recently closed days so late-arriving signals
// (imported effects, manual adjustments, reattributed punches) are folded in
// without an operator asking for it.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	offsetMinutes     int
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, offsetMinutes int) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		offsetMinutes:     offsetMinutes,
	}
}

// Register adds the recurring jobs to the scheduler.
func (j *AttendanceJobs) Register(s *Scheduler) {
	s.AddJob("process-recent-days", 6*time.Hour, j.ProcessRecentDays)
}

// ProcessRecentDays reruns the engine over the trailing three local calendar
// days. Re-processing is idempotent, so overlap between runs is harmless.
func (j *AttendanceJobs) ProcessRecentDays(ctx context.Context) error {
	today := time.Now().UTC().Add(time.Duration(j.offsetMinutes) * time.Minute)

	req := attendance.ProcessRequest{
		StartDate: today.AddDate(0, 0, -3).Format("2006-01-02"),
		EndDate:   today.AddDate(0, 0, -1).Format("2006-01-02"),
	}

	_, err := j.attendanceService.Process(ctx, req)
	return err
}
