package authhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employees"
	employeeshandler "dayflow/internal/transport/http/handlers/employees"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Auth        *auth.Service
	Employees   *employees.Service
	Audit       audit.Recorder
	AllowSignup bool
	// Throttle wraps the credential endpoints; nil leaves them unthrottled.
	Throttle func(http.Handler) http.Handler
}

func NewHandler(authSvc *auth.Service, employeeSvc *employees.Service, auditSvc audit.Recorder, allowSignup bool) *Handler {
	return &Handler{Auth: authSvc, Employees: employeeSvc, Audit: auditSvc, AllowSignup: allowSignup}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.Throttle != nil {
				r.Use(h.Throttle)
			}
			r.Post("/login", h.HandleLogin)
			r.Post("/signup", h.HandleSignup)
		})
		r.With(middleware.RequireAuth).Get("/me", h.HandleMe)
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	EmployeeID string  `json:"employeeId" validate:"required,max=32"`
	FirstName  string  `json:"firstName" validate:"required,max=100"`
	LastName   string  `json:"lastName" validate:"required,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=32"`
}

type sessionView struct {
	Token string                    `json:"token"`
	User  employeeshandler.UserView `json:"user"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	session, err := h.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	actor := auth.Actor{UserID: session.UserID, Role: session.Role}
	user, err := h.Employees.Get(r.Context(), actor, session.UserID)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, session.UserID, "auth.login", "user", session.UserID, nil, nil)
	api.Success(w, sessionView{Token: session.Token, User: employeeshandler.ToView(user)}, middleware.GetRequestID(r.Context()))
}

// HandleSignup creates an employee account and signs the caller in.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if !h.AllowSignup {
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", middleware.GetRequestID(r.Context()))
		return
	}
	var payload signupRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Employees.Register(r.Context(), employees.CreateInput{
		Email:        payload.Email,
		Password:     payload.Password,
		EmployeeCode: payload.EmployeeID,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Phone:        payload.Phone,
	})
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	session, err := h.Auth.Issue(created.ID, created.EmployeeCode, created.Role)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	view := employeeshandler.ToView(created)
	shared.RecordAudit(r, h.Audit, created.ID, "auth.signup", "user", created.ID, nil, view)
	api.Created(w, sessionView{Token: session.Token, User: view}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	user, err := h.Employees.Get(r.Context(), actor, actor.UserID)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, employeeshandler.ToView(user), middleware.GetRequestID(r.Context()))
}
