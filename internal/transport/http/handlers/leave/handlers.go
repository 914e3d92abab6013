package leavehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/leave"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Audit   audit.Recorder
}

func NewHandler(service *leave.Service, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/balance/{employeeCode}", h.handleBalance)
		r.Get("/{requestID}", h.handleGet)
		r.Put("/{requestID}", h.handleDecide)
		r.Delete("/{requestID}", h.handleDelete)
	})
}

type createRequest struct {
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType" validate:"required,oneof=annual sick personal unpaid"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

type decideRequest struct {
	Status   string  `json:"status" validate:"required,oneof=pending approved rejected"`
	Comments *string `json:"comments"`
}

type requestView struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	LeaveType    string  `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedOn    string  `json:"appliedOn"`
	ReviewedBy   *string `json:"reviewedBy,omitempty"`
	ReviewedOn   *string `json:"reviewedOn,omitempty"`
	Comments     *string `json:"comments,omitempty"`
}

func toView(req leave.Request) requestView {
	return requestView{
		ID:           req.ID,
		EmployeeID:   req.EmployeeCode,
		EmployeeName: req.EmployeeName,
		LeaveType:    string(req.Category),
		StartDate:    shared.FormatDate(req.StartDate),
		EndDate:      shared.FormatDate(req.EndDate),
		Days:         req.Days,
		Reason:       req.Reason,
		Status:       string(req.Status),
		AppliedOn:    shared.FormatDate(req.AppliedOn),
		ReviewedBy:   req.ReviewerName,
		ReviewedOn:   shared.FormatOptionalDate(req.ReviewedOn),
		Comments:     req.Comments,
	}
}

type categoryCounts struct {
	Annual   int `json:"annual"`
	Sick     int `json:"sick"`
	Personal int `json:"personal"`
}

type balanceView struct {
	Annual    int            `json:"annual"`
	Sick      int            `json:"sick"`
	Personal  int            `json:"personal"`
	Used      categoryCounts `json:"used"`
	Available categoryCounts `json:"available"`
}

func toBalanceView(b leave.Balance) balanceView {
	return balanceView{
		Annual:   b.Annual,
		Sick:     b.Sick,
		Personal: b.Personal,
		Used: categoryCounts{
			Annual:   b.UsedAnnual,
			Sick:     b.UsedSick,
			Personal: b.UsedPersonal,
		},
		Available: categoryCounts{
			Annual:   b.Annual - b.UsedAnnual,
			Sick:     b.Sick - b.UsedSick,
			Personal: b.Personal - b.UsedPersonal,
		},
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	requests, err := h.Service.List(r.Context(), actor, query.Get("employeeId"), query.Get("status"))
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	out := make([]requestView, 0, len(requests))
	for _, req := range requests {
		out = append(out, toView(req))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	req, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "requestID"))
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, toView(req), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	balance, err := h.Service.Balance(r.Context(), actor, chi.URLParam(r, "employeeCode"))
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, toBalanceView(balance), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	var payload createRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.LeaveType = strings.ToLower(strings.TrimSpace(payload.LeaveType))

	v := shared.NewValidator()
	v.Struct(payload)
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), actor, leave.CreateInput{
		EmployeeCode: payload.EmployeeID,
		Category:     payload.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       payload.Reason,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := toView(created)
	shared.RecordAudit(r, h.Audit, actor.UserID, "leave.create", "leave_request", created.ID, nil, view)
	api.Created(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	var payload decideRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.Status = strings.ToLower(strings.TrimSpace(payload.Status))
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "requestID")
	updated, err := h.Service.Decide(r.Context(), actor, id, leave.DecideInput{
		Status:   payload.Status,
		Comments: payload.Comments,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := toView(updated)
	shared.RecordAudit(r, h.Audit, actor.UserID, "leave.decide", "leave_request", id, nil, view)
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "requestID")
	deleted, err := h.Service.Delete(r.Context(), actor, id)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, actor.UserID, "leave.delete", "leave_request", id, toView(deleted), nil)
	api.Message(w, "Leave request deleted successfully", middleware.GetRequestID(r.Context()))
}
