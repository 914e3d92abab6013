package reportshandler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/reports"
	"dayflow/internal/requestctx"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Service *reports.Service
	Now     func() time.Time
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.handleStats)
	r.Get("/reports/attendance.xlsx", h.handleAttendanceExport)
}

type statsView struct {
	TotalEmployees   int `json:"totalEmployees"`
	PresentToday     int `json:"presentToday"`
	OnLeave          int `json:"onLeave"`
	PendingApprovals int `json:"pendingApprovals"`
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	stats, err := h.Service.Stats(r.Context(), actor, h.Now().UTC())
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	api.Success(w, statsView{
		TotalEmployees:   stats.TotalEmployees,
		PresentToday:     stats.PresentToday,
		OnLeave:          stats.OnLeave,
		PendingApprovals: stats.PendingApprovals,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAttendanceExport(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	v := shared.NewValidator()
	startRaw, endRaw := query.Get("startDate"), query.Get("endDate")
	from := v.OptionalDate("startDate", &startRaw)
	to := v.OptionalDate("endDate", &endRaw)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	doc, err := h.Service.AttendanceWorkbook(r.Context(), actor, query.Get("employeeId"), from, to)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	filename := fmt.Sprintf("attendance-%s.xlsx", h.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		requestctx.Logger(r.Context()).Warn("attendance export write failed", "err", err)
	}
}
