package attendance

import "errors"

var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)
