package attendancehandler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/audit"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Audit   audit.Recorder
}

func NewHandler(service *attendance.Service, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleUpsert)
		r.Get("/employee/{employeeCode}", h.handleListForEmployee)
		r.Put("/{recordID}", h.handleUpdate)
		r.Delete("/{recordID}", h.handleDelete)
	})
}

type upsertRequest struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date" validate:"required"`
	CheckIn    *string `json:"checkIn"`
	CheckOut   *string `json:"checkOut"`
	Status     string  `json:"status" validate:"omitempty,oneof=present absent half_day leave"`
}

type updateRequest struct {
	Date     *string `json:"date"`
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Status   *string `json:"status" validate:"omitempty,oneof=present absent half_day leave"`
}

type recordView struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	Date         string   `json:"date"`
	CheckIn      *string  `json:"checkIn"`
	CheckOut     *string  `json:"checkOut"`
	Status       string   `json:"status"`
	WorkHours    *float64 `json:"workHours"`
}

func toView(rec attendance.Record) recordView {
	return recordView{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeCode,
		EmployeeName: rec.EmployeeName,
		Date:         shared.FormatDate(rec.Date),
		CheckIn:      rec.CheckIn,
		CheckOut:     rec.CheckOut,
		Status:       string(rec.Status),
		WorkHours:    rec.WorkHours,
	}
}

func toViews(records []attendance.Record) []recordView {
	out := make([]recordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toView(rec))
	}
	return out
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	records, err := h.Service.List(r.Context(), actor, r.URL.Query().Get("employeeId"), from, to)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, toViews(records), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	records, err := h.Service.ListForEmployee(r.Context(), actor, chi.URLParam(r, "employeeCode"), from, to)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, toViews(records), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	var payload upsertRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.Status = strings.ToLower(strings.TrimSpace(payload.Status))
	if payload.Status == "" {
		payload.Status = string(attendance.StatusPresent)
	}

	v := shared.NewValidator()
	v.Struct(payload)
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rec, err := h.Service.Upsert(r.Context(), actor, attendance.UpsertInput{
		EmployeeCode: payload.EmployeeID,
		Date:         date,
		CheckIn:      payload.CheckIn,
		CheckOut:     payload.CheckOut,
		Status:       payload.Status,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := toView(rec)
	shared.RecordAudit(r, h.Audit, actor.UserID, "attendance.upsert", "attendance", rec.ID, nil, view)
	api.Created(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	var payload updateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	if payload.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*payload.Status))
		payload.Status = &status
	}

	v := shared.NewValidator()
	v.Struct(payload)
	date := v.OptionalDate("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "recordID")
	rec, err := h.Service.Update(r.Context(), actor, id, attendance.UpdateInput{
		Date:     date,
		CheckIn:  payload.CheckIn,
		CheckOut: payload.CheckOut,
		Status:   payload.Status,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := toView(rec)
	shared.RecordAudit(r, h.Audit, actor.UserID, "attendance.update", "attendance", id, nil, view)
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "recordID")
	deleted, err := h.Service.Delete(r.Context(), actor, id)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, actor.UserID, "attendance.delete", "attendance", id, toView(deleted), nil)
	api.Message(w, "Attendance record deleted successfully", middleware.GetRequestID(r.Context()))
}

// dateRange reads the optional startDate and endDate query parameters.
func dateRange(w http.ResponseWriter, r *http.Request) (from, to *time.Time, ok bool) {
	v := shared.NewValidator()
	query := r.URL.Query()
	startRaw, endRaw := query.Get("startDate"), query.Get("endDate")
	from = v.OptionalDate("startDate", &startRaw)
	to = v.OptionalDate("endDate", &endRaw)
	if from != nil && to != nil && to.Before(*from) {
		v.Add("endDate", "must not be before startDate")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return nil, nil, false
	}
	return from, to, true
}
