package handlers

import (
	"net/http"

	apierrors "sessions-service/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type signatureResponse struct {
	// Signature — назначенная этим вызовом подпись; пустая строка
	// при assigned=false (кто-то назначил раньше).
	Signature string `json:"signature,omitempty"`
	Assigned  bool   `json:"assigned"`
}

type backfillResponse struct {
	Scanned  int `json:"scanned"`
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// AssignSignature — POST /users/{id}/signature.
func (h *Handlers) AssignSignature(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	sig, err := h.Service.AssignSignature(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, signatureResponse{
		Signature: sig,
		Assigned:  sig != "",
	})
}

// BackfillSignatures — POST /users/signatures/backfill.
func (h *Handlers) BackfillSignatures(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.BackfillSignatures(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, backfillResponse{
		Scanned:  report.Scanned,
		Assigned: report.Assigned,
		Skipped:  report.Skipped,
		Failed:   report.Failed,
	})
}
