package shared

import (
	"net/http"

	"dayflow/internal/domain/audit"
	"dayflow/internal/requestctx"
)

// RecordAudit writes an audit entry for a completed mutation. Failures are
// logged and never fail the request.
func RecordAudit(r *http.Request, recorder audit.Recorder, actorID, action, entityType, entityID string, before, after any) {
	if recorder == nil {
		return
	}
	err := recorder.Record(r.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(r.Context()),
		IP:         ClientIP(r),
		Before:     before,
		After:      after,
	})
	if err != nil {
		requestctx.Logger(r.Context()).Warn("audit "+action+" failed", "err", err)
	}
}
