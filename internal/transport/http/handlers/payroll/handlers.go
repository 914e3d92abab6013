package payrollhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/payroll"
	"dayflow/internal/requestctx"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Audit   audit.Recorder
}

func NewHandler(service *payroll.Service, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleUpsert)
		r.Get("/{recordID}", h.handleGet)
		r.Put("/{recordID}", h.handleUpdate)
		r.Delete("/{recordID}", h.handleDelete)
		r.Get("/{recordID}/payslip", h.handlePayslip)
	})
}

type upsertRequest struct {
	EmployeeID  string           `json:"employeeId" validate:"required"`
	Month       int              `json:"month" validate:"required,gte=1,lte=12"`
	Year        int              `json:"year" validate:"required,gte=2000,lte=2100"`
	BasicSalary *decimal.Decimal `json:"basicSalary" validate:"required"`
	Allowances  *decimal.Decimal `json:"allowances"`
	Deductions  *decimal.Decimal `json:"deductions"`
}

type updateRequest struct {
	Month       *int             `json:"month" validate:"omitempty,gte=1,lte=12"`
	Year        *int             `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	BasicSalary *decimal.Decimal `json:"basicSalary"`
	Allowances  *decimal.Decimal `json:"allowances"`
	Deductions  *decimal.Decimal `json:"deductions"`
	Status      *string          `json:"status" validate:"omitempty,oneof=pending processed paid"`
	PaidOn      *string          `json:"paidOn"`
}

type recordView struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	Month        int         `json:"month"`
	Year         int         `json:"year"`
	BasicSalary  json.Number `json:"basicSalary"`
	Allowances   json.Number `json:"allowances"`
	Deductions   json.Number `json:"deductions"`
	NetSalary    json.Number `json:"netSalary"`
	Status       string      `json:"status"`
	PaidOn       *string     `json:"paidOn"`
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toView(r payroll.Record) recordView {
	return recordView{
		ID:           r.ID,
		EmployeeID:   r.EmployeeCode,
		EmployeeName: r.EmployeeName,
		Month:        r.Month,
		Year:         r.Year,
		BasicSalary:  money(r.BasicSalary),
		Allowances:   money(r.Allowances),
		Deductions:   money(r.Deductions),
		NetSalary:    money(r.NetSalary),
		Status:       string(r.Status),
		PaidOn:       shared.FormatOptionalDate(r.PaidOn),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	v := shared.NewValidator()
	month := intQuery(v, "month", query.Get("month"))
	year := intQuery(v, "year", query.Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	records, err := h.Service.List(r.Context(), actor, query.Get("employeeId"), month, year)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	out := make([]recordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toView(rec))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	rec, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "recordID"))
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, toView(rec), middleware.GetRequestID(r.Context()))
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
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rec, err := h.Service.Upsert(r.Context(), actor, payroll.UpsertInput{
		EmployeeCode: payload.EmployeeID,
		Month:        payload.Month,
		Year:         payload.Year,
		BasicSalary:  *payload.BasicSalary,
		Allowances:   payload.Allowances,
		Deductions:   payload.Deductions,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := toView(rec)
	shared.RecordAudit(r, h.Audit, actor.UserID, "payroll.upsert", "payroll", rec.ID, nil, view)
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
	paidOn := v.OptionalDate("paidOn", payload.PaidOn)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "recordID")
	before, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	rec, err := h.Service.Update(r.Context(), actor, id, payroll.UpdateInput{
		Month:       payload.Month,
		Year:        payload.Year,
		BasicSalary: payload.BasicSalary,
		Allowances:  payload.Allowances,
		Deductions:  payload.Deductions,
		Status:      payload.Status,
		PaidOn:      paidOn,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := toView(rec)
	shared.RecordAudit(r, h.Audit, actor.UserID, "payroll.update", "payroll", id, toView(before), view)
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
	shared.RecordAudit(r, h.Audit, actor.UserID, "payroll.delete", "payroll", id, toView(deleted), nil)
	api.Message(w, "Payroll record deleted successfully", middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	rec, doc, err := h.Service.Payslip(r.Context(), actor, chi.URLParam(r, "recordID"))
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	filename := fmt.Sprintf("payslip-%s-%04d-%02d.pdf", rec.EmployeeCode, rec.Year, rec.Month)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		requestctx.Logger(r.Context()).Warn("payslip write failed", "err", err)
	}
}

func intQuery(v *shared.Validator, field, raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(field, "must be a whole number")
		return 0
	}
	return n
}
