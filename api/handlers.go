/*
handlers.go - HTTP API handlers for the scheduling/payroll service

PURPOSE:
  Exposes the schedule service and the payroll engine over REST. Handles
  HTTP request/response and JSON translation; all business rules live in
  the schedule and payroll packages.

ENDPOINTS:
  Clients:
    GET    /api/clients                      List clients
    POST   /api/clients                      Create client
    GET    /api/clients/{id}                 Get client
    DELETE /api/clients/{id}                 Delete client and its schedules

  Workers:
    GET    /api/workers                      List workers
    POST   /api/workers                      Create worker
    GET    /api/workers/{id}                 Get worker
    DELETE /api/workers/{id}                 Delete worker

  Schedules:
    GET    /api/schedules                    List schedules
    POST   /api/schedules                    Create schedule
    GET    /api/schedules/{id}               Get schedule
    DELETE /api/schedules/{id}               Delete schedule (cascades)
    GET    /api/schedules/{id}/workers       List attached workers
    POST   /api/schedules/{id}/workers       Attach worker
    GET    /api/schedules/{id}/payroll       Per-worker breakdown + totals

  Schedule workers:
    GET    /api/schedule-workers/{id}                Get relationship
    DELETE /api/schedule-workers/{id}                Detach (removes periods)
    PUT    /api/schedule-workers/{id}/terms          Replace financial terms
    POST   /api/schedule-workers/{id}/paid           Set settlement flag
    GET    /api/schedule-workers/{id}/periods        List periods
    POST   /api/schedule-workers/{id}/periods        Add period
    GET    /api/schedule-workers/{id}/payroll        Recompute statement

  Periods:
    PUT    /api/periods/{id}                 Edit a day's hours
    DELETE /api/periods/{id}                 Remove a day

  Estimate:
    POST   /api/estimate                     Flat-hours quick estimate

ERROR HANDLING:
  - 400: Unparseable body, bad dates/times, invalid terms
  - 404: Unknown IDs
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
	"github.com/gonami-gennnmja/remit-planner-sub000/schedule"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *schedule.Service
}

func NewHandler(svc *schedule.Service) *Handler {
	return &Handler{Service: svc}
}

// =============================================================================
// CLIENTS
// =============================================================================

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.ListClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}
	dtos := make([]ClientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, toClientDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c, err := h.Service.CreateClient(r.Context(), schedule.Client{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Memo:    req.Memo,
	})
	if err != nil {
		writeDomainError(w, "Failed to create client", err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientDTO(c))
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Client(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to get client", err)
		return
	}
	writeJSON(w, http.StatusOK, toClientDTO(c))
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "Failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// WORKERS
// =============================================================================

func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Service.ListWorkers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workers", err)
		return
	}
	dtos := make([]WorkerDTO, 0, len(workers))
	for _, wk := range workers {
		dtos = append(dtos, toWorkerDTO(wk))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	wk, err := h.Service.CreateWorker(r.Context(), schedule.Worker{
		Name:  req.Name,
		Phone: req.Phone,
		Memo:  req.Memo,
	})
	if err != nil {
		writeDomainError(w, "Failed to create worker", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkerDTO(wk))
}

func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	wk, err := h.Service.Worker(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to get worker", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerDTO(wk))
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteWorker(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "Failed to delete worker", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCHEDULES
// =============================================================================

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Service.ListSchedules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}
	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		dtos = append(dtos, toScheduleDTO(s))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sch := schedule.Schedule{ClientID: req.ClientID, Title: req.Title, Memo: req.Memo}
	var err error
	if req.StartDate != "" {
		if sch.StartDate, err = payroll.ParseDate(req.StartDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
			return
		}
	}
	if req.EndDate != "" {
		if sch.EndDate, err = payroll.ParseDate(req.EndDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
			return
		}
	}

	created, err := h.Service.CreateSchedule(r.Context(), sch)
	if err != nil {
		writeDomainError(w, "Failed to create schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(created))
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to get schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(s))
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "Failed to delete schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCHEDULE WORKERS
// =============================================================================

func (h *Handler) ListScheduleWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Service.ListScheduleWorkers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedule workers", err)
		return
	}
	dtos := make([]ScheduleWorkerDTO, 0, len(workers))
	for _, sw := range workers {
		dtos = append(dtos, toScheduleWorkerDTO(sw))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) AttachWorker(w http.ResponseWriter, r *http.Request) {
	var req AttachWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	terms, err := parseTerms(req.Terms)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid terms", err)
		return
	}

	in := schedule.AttachInput{
		ScheduleID:   chi.URLParam(r, "id"),
		WorkerID:     req.WorkerID,
		Terms:        terms,
		BreakMinutes: req.BreakMinutes,
	}
	for _, d := range req.WorkDays {
		date, err := payroll.ParseDate(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid work day (use YYYY-MM-DD)", err)
			return
		}
		in.WorkDays = append(in.WorkDays, date)
	}
	if req.Start != "" {
		if in.Start, err = payroll.ParseClock(req.Start); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_time (use HH:MM)", err)
			return
		}
	}
	if req.End != "" {
		if in.End, err = payroll.ParseClock(req.End); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_time (use HH:MM)", err)
			return
		}
	}

	sw, err := h.Service.AttachWorker(r.Context(), in)
	if err != nil {
		writeDomainError(w, "Failed to attach worker", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleWorkerDTO(sw))
}

func (h *Handler) GetScheduleWorker(w http.ResponseWriter, r *http.Request) {
	sw, err := h.Service.ScheduleWorker(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to get schedule worker", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleWorkerDTO(sw))
}

func (h *Handler) UpdateTerms(w http.ResponseWriter, r *http.Request) {
	var req TermsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	terms, err := parseTerms(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid terms", err)
		return
	}
	sw, err := h.Service.UpdateTerms(r.Context(), chi.URLParam(r, "id"), terms)
	if err != nil {
		writeDomainError(w, "Failed to update terms", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleWorkerDTO(sw))
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	sw, err := h.Service.MarkPaid(r.Context(), chi.URLParam(r, "id"), req.Paid)
	if err != nil {
		writeDomainError(w, "Failed to update settlement", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleWorkerDTO(sw))
}

func (h *Handler) DetachWorker(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DetachWorker(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "Failed to detach worker", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PERIODS
// =============================================================================

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.ListPeriods(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list periods", err)
		return
	}
	dtos := make([]PeriodDTO, 0, len(periods))
	for _, p := range periods {
		dtos = append(dtos, toPeriodDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) AddPeriod(w http.ResponseWriter, r *http.Request) {
	wp, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}
	p, err := h.Service.AddPeriod(r.Context(), chi.URLParam(r, "id"), wp)
	if err != nil {
		writeDomainError(w, "Failed to add period", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPeriodDTO(p))
}

func (h *Handler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	wp, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}
	p, err := h.Service.UpdatePeriod(r.Context(), chi.URLParam(r, "id"), wp)
	if err != nil {
		writeDomainError(w, "Failed to update period", err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(p))
}

func (h *Handler) RemovePeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemovePeriod(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "Failed to remove period", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request) (payroll.WorkPeriod, bool) {
	var req PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return payroll.WorkPeriod{}, false
	}

	var wp payroll.WorkPeriod
	var err error
	if wp.Date, err = payroll.ParseDate(req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return payroll.WorkPeriod{}, false
	}
	if req.Start != "" {
		if wp.Start, err = payroll.ParseClock(req.Start); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_time (use HH:MM)", err)
			return payroll.WorkPeriod{}, false
		}
	}
	if req.End != "" {
		if wp.End, err = payroll.ParseClock(req.End); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_time (use HH:MM)", err)
			return payroll.WorkPeriod{}, false
		}
	}
	if req.BreakMinutes < 0 {
		writeError(w, http.StatusBadRequest, "break_minutes must not be negative", nil)
		return payroll.WorkPeriod{}, false
	}
	wp.BreakMinutes = req.BreakMinutes
	return wp, true
}

// =============================================================================
// PAYROLL
// =============================================================================

func (h *Handler) WorkerPayroll(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.Payroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to compute payroll", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatementDTO(st))
}

func (h *Handler) SchedulePayroll(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.SchedulePayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to compute schedule payroll", err)
		return
	}
	dto := ScheduleStatementDTO{
		ScheduleID: st.ScheduleID,
		Workers:    make([]StatementDTO, 0, len(st.Workers)),
		TotalGross: st.TotalGross.String(),
		TotalNet:   st.TotalNet.String(),
	}
	for _, ws := range st.Workers {
		dto.Workers = append(dto.Workers, toStatementDTO(ws))
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	wage, err := decimal.NewFromString(req.HourlyWage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hourly_wage", err)
		return
	}
	hours, err := decimal.NewFromString(req.Hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hours", err)
		return
	}

	est, err := payroll.QuickEstimate(wage, hours, req.TaxWithheld)
	if err != nil {
		writeDomainError(w, "Failed to estimate", err)
		return
	}
	writeJSON(w, http.StatusOK, EstimateDTO{
		Gross: est.Gross.String(),
		Tax:   est.Tax.String(),
		Net:   est.Net.String(),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors to HTTP statuses: unknown IDs are
// 404, validation failures 400, anything else 500.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, schedule.ErrNameRequired),
		errors.Is(err, schedule.ErrTitleRequired),
		errors.Is(err, schedule.ErrDateRequired),
		errors.Is(err, schedule.ErrScheduleRange),
		errors.Is(err, payroll.ErrNonPositiveWage),
		errors.Is(err, payroll.ErrNegativeAllowance),
		errors.Is(err, payroll.ErrNegativeHours):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
