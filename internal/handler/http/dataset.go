package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/handler/http/response"
	"github.com/dawamhq/attendance-engine-go/internal/service/dataset"
)

type DatasetHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	ImportPunches(w http.ResponseWriter, r *http.Request)
	CreateRule(w http.ResponseWriter, r *http.Request)
	CreateAdjustment(w http.ResponseWriter, r *http.Request)
	ImportEffects(w http.ResponseWriter, r *http.Request)
	CreateLeave(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
}

type datasetHandlerImpl struct {
	datasetService dataset.Service
}

func NewDatasetHandler(datasetService dataset.Service) DatasetHandler {
	return &datasetHandlerImpl{
		datasetService: datasetService,
	}
}

type employeeResponse struct {
	Code            string  `json:"code"`
	FullName        string  `json:"full_name,omitempty"`
	ShiftStart      string  `json:"shift_start,omitempty"`
	HireDate        *string `json:"hire_date,omitempty"`
	TerminationDate *string `json:"termination_date,omitempty"`
	Department      string  `json:"department,omitempty"`
	Sector          string  `json:"sector,omitempty"`
	Section         string  `json:"section,omitempty"`
	Branch          string  `json:"branch,omitempty"`
}

func toEmployeeResponse(emp employee.Employee) employeeResponse {
	datePtr := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format("2006-01-02")
		return &s
	}
	return employeeResponse{
		Code:            emp.Code,
		FullName:        emp.FullName,
		ShiftStart:      emp.ShiftStart,
		HireDate:        datePtr(emp.HireDate),
		TerminationDate: datePtr(emp.TerminationDate),
		Department:      emp.Department,
		Sector:          emp.Sector,
		Section:         emp.Section,
		Branch:          emp.Branch,
	}
}

// CreateEmployee implements DatasetHandler.
func (h *datasetHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req attendance.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	emp, err := h.datasetService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", toEmployeeResponse(emp))
}

// ListEmployees implements DatasetHandler.
func (h *datasetHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.datasetService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toEmployeeResponse(emp))
	}
	response.Success(w, out)
}

// ImportPunches implements DatasetHandler.
func (h *datasetHandlerImpl) ImportPunches(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Punches []attendance.PunchInput `json:"punches"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	inserted, err := h.datasetService.ImportPunches(r.Context(), req.Punches)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punches imported", map[string]int{"inserted": inserted})
}

// CreateRule implements DatasetHandler.
func (h *datasetHandlerImpl) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req attendance.RuleInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.datasetService.CreateRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rule created", map[string]string{"id": created.ID})
}

// CreateAdjustment implements DatasetHandler.
func (h *datasetHandlerImpl) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdjustmentInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.datasetService.CreateAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment created", map[string]string{"id": created.ID})
}

// ImportEffects implements DatasetHandler.
func (h *datasetHandlerImpl) ImportEffects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Effects []attendance.EffectInput `json:"effects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	inserted, err := h.datasetService.ImportEffects(r.Context(), req.Effects)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Effects imported", map[string]int{"inserted": inserted})
}

// CreateLeave implements DatasetHandler.
func (h *datasetHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req attendance.LeaveInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.datasetService.CreateLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave created", map[string]string{"id": created.ID})
}

// CreateHoliday implements DatasetHandler.
func (h *datasetHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req attendance.HolidayInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.datasetService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", map[string]string{"id": created.ID})
}
