package audithandler

import (
	"context"
	"encoding/csv"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/auth"
	"dayflow/internal/requestctx"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

const exportPageSize = 500

// Reader is the read side of the audit trail.
type Reader interface {
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, includeDetails bool, limit, offset int) ([]audit.Event, error)
}

type Handler struct {
	Service Reader
}

func NewHandler(service Reader) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExport)
	})
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) bool {
	actor, ok := middleware.CurrentActor(w, r)
	if !ok {
		return false
	}
	if !auth.Can(actor, auth.ActionAuditRead, auth.Target{}) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

func filterFrom(r *http.Request) audit.Filter {
	query := r.URL.Query()
	return audit.Filter{
		Action:     query.Get("action"),
		EntityType: query.Get("entityType"),
		ActorUser:  query.Get("actorUserId"),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	filter := filterFrom(r)
	includeDetails := r.URL.Query().Get("includeDetails") == "true"

	total, err := h.Service.Count(r.Context(), filter)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("audit count failed", "err", err)
	}
	events, err := h.Service.List(r.Context(), filter, includeDetails, page.Limit, page.Offset)
	if err != nil {
		api.FromError(w, r, err)
		return
	}
	shared.WriteTotal(w, total)
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	filter := filterFrom(r)
	logger := requestctx.Logger(r.Context())

	// Fetch the first page before writing headers so a failure can still be reported as JSON.
	events, err := h.Service.List(r.Context(), filter, false, exportPageSize, 0)
	if err != nil {
		api.FromError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "actor_user_id", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}); err != nil {
		logger.Warn("audit export header failed", "err", err)
		return
	}
	for offset := 0; ; offset += exportPageSize {
		if offset > 0 {
			events, err = h.Service.List(r.Context(), filter, false, exportPageSize, offset)
			if err != nil {
				logger.Warn("audit export page failed", "err", err, "offset", offset)
				break
			}
		}
		for _, evt := range events {
			row := []string{evt.ID, deref(evt.ActorID), evt.Action, evt.EntityType, evt.EntityID, deref(evt.RequestID), deref(evt.IP), evt.CreatedAt.UTC().Format(time.RFC3339)}
			if err := writer.Write(row); err != nil {
				logger.Warn("audit export row failed", "err", err)
				return
			}
		}
		if len(events) < exportPageSize {
			break
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Warn("audit export flush failed", "err", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
