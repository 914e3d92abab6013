package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dayflow/internal/apperrors"
	"dayflow/internal/requestctx"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.New(apperrors.ErrValidation, "bad"), http.StatusBadRequest},
		{apperrors.New(apperrors.ErrBusinessRule, "insufficient"), http.StatusBadRequest},
		{apperrors.New(apperrors.ErrDuplicate, "dup"), http.StatusBadRequest},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", apperrors.ErrForbidden), http.StatusForbidden},
		{apperrors.New(apperrors.ErrNotFound, "gone"), http.StatusNotFound},
		{apperrors.New(apperrors.ErrConflict, "decided"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if status, _ := StatusFor(c.err); status != c.status {
			t.Fatalf("%v: expected %d, got %d", c.err, c.status, status)
		}
	}
}

func TestFromErrorUsesClientMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(requestctx.WithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	FromError(rec, req, apperrors.New(apperrors.ErrBusinessRule, "insufficient annual leave balance"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body Envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error != "insufficient annual leave balance" || body.RequestID != "req-1" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestFromErrorHidesInternalDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	FromError(rec, req, errors.New("pq: connection refused on 10.0.0.5"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body Envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Error)
	}
}

func TestSuccessKeepsEmptyList(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, []string{}, "")
	if got := rec.Body.String(); got != "{\"success\":true,\"data\":[]}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}
