package employeeshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/employees"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service *employees.Service
	Audit   audit.Recorder
}

func NewHandler(service *employees.Service, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{userID}", h.handleGet)
		r.Put("/{userID}", h.handleUpdate)
		r.Delete("/{userID}", h.handleDelete)
	})
}

type createRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	EmployeeID string  `json:"employeeId" validate:"required,max=32"`
	FirstName  string  `json:"firstName" validate:"required,max=100"`
	LastName   string  `json:"lastName" validate:"required,max=100"`
	Role       string  `json:"role" validate:"omitempty,oneof=employee hr admin"`
	Department string  `json:"department" validate:"max=100"`
	Position   string  `json:"position" validate:"max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=32"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	JoinDate   *string `json:"joinDate"`
}

type updateRequest struct {
	FirstName  *string `json:"firstName" validate:"omitempty,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=32"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	Avatar     *string `json:"avatar" validate:"omitempty,max=2048"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	Role       *string `json:"role" validate:"omitempty,oneof=employee hr admin"`
	Password   *string `json:"password" validate:"omitempty,min=6"`
}

// UserView is the public shape of an account; it never carries the password.
type UserView struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	EmployeeID string  `json:"employeeId"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Avatar     *string `json:"avatar"`
	JoinDate   string  `json:"joinDate"`
}

func ToView(e employees.Employee) UserView {
	return UserView{
		ID:         e.ID,
		Email:      e.Email,
		EmployeeID: e.EmployeeCode,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Role:       e.Role,
		Department: e.Department,
		Position:   e.Position,
		Phone:      e.Phone,
		Address:    e.Address,
		Avatar:     e.Avatar,
		JoinDate:   shared.FormatDate(e.JoinDate),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	list, err := h.Service.List(r.Context(), actor)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	out := make([]UserView, 0, len(list))
	for _, e := range list {
		out = append(out, ToView(e))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	emp, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "userID"))
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, ToView(emp), middleware.GetRequestID(r.Context()))
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
	v := shared.NewValidator()
	v.Struct(payload)
	joinDate := v.OptionalDate("joinDate", payload.JoinDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), actor, employees.CreateInput{
		Email:        payload.Email,
		Password:     payload.Password,
		EmployeeCode: payload.EmployeeID,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Role:         payload.Role,
		Department:   payload.Department,
		Position:     payload.Position,
		Phone:        payload.Phone,
		Address:      payload.Address,
		JoinDate:     joinDate,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := ToView(created)
	shared.RecordAudit(r, h.Audit, actor.UserID, "users.create", "user", created.ID, nil, view)
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
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id := chi.URLParam(r, "userID")
	updated, err := h.Service.Update(r.Context(), actor, id, employees.UpdateInput{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Phone:      payload.Phone,
		Address:    payload.Address,
		Avatar:     payload.Avatar,
		Department: payload.Department,
		Position:   payload.Position,
		Role:       payload.Role,
		Password:   payload.Password,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := ToView(updated)
	shared.RecordAudit(r, h.Audit, actor.UserID, "users.update", "user", id, nil, view)
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "userID")
	deleted, err := h.Service.Delete(r.Context(), actor, id)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, actor.UserID, "users.delete", "user", id, ToView(deleted), nil)
	api.Message(w, "User deleted successfully", middleware.GetRequestID(r.Context()))
}
