package handlers

import (
	"net/http"
	"time"

	apierrors "sessions-service/internal/errors"
	"sessions-service/internal/models"
	"sessions-service/internal/service"

	"github.com/google/uuid"
)

type createGuideSessionRequest struct {
	GuideID       string `json:"guide_id"`
	TTLSeconds    int64  `json:"ttl_seconds,omitempty"`
	UserAgent     string `json:"user_agent,omitempty"`
	SourceAddress string `json:"source_address,omitempty"`
	RefreshToken  string `json:"refresh_token,omitempty"`
}

type guideSessionResponse struct {
	SessionID    string    `json:"session_id"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type revokeRequest struct {
	Token string `json:"token"`
}

type revokeResponse struct {
	Found bool `json:"found"`
}

type revokeAllRequest struct {
	GuideID string `json:"guide_id"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	SessionID    string `json:"session_id"`
	RefreshToken string `json:"refresh_token"`
}

// CreateGuideSession — POST /guide-sessions.
func (h *Handlers) CreateGuideSession(w http.ResponseWriter, r *http.Request) {
	var in createGuideSessionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	guideID, err := uuid.Parse(in.GuideID)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	session, err := h.Service.CreateGuideSession(r.Context(), guideID, service.CreateGuideSessionInput{
		TTL:           time.Duration(in.TTLSeconds) * time.Second,
		UserAgent:     in.UserAgent,
		SourceAddress: in.SourceAddress,
		RefreshToken:  in.RefreshToken,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, guideSessionResponse{
		SessionID:    session.ID,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	})
}

// ResolveGuideSession — GET /guide-sessions/resolve; токен как Bearer.
func (h *Handlers) ResolveGuideSession(w http.ResponseWriter, r *http.Request) {
	principal, err := h.Service.Resolve(r.Context(), models.KindGuide, bearerToken(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPrincipalResponse(principal))
}

// RevokeGuideSession — POST /guide-sessions/revoke (logout).
func (h *Handlers) RevokeGuideSession(w http.ResponseWriter, r *http.Request) {
	var in revokeRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	found, err := h.Service.RevokeGuideSession(r.Context(), in.Token)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, revokeResponse{Found: found})
}

// RevokeAllGuideSessions — POST /guide-sessions/revoke-all
// (принудительный выход со всех устройств после смены учётных данных).
func (h *Handlers) RevokeAllGuideSessions(w http.ResponseWriter, r *http.Request) {
	var in revokeAllRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	guideID, err := uuid.Parse(in.GuideID)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	count, err := h.Service.RevokeAllGuideSessions(r.Context(), guideID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

// RotateRefreshToken — POST /guide-sessions/refresh.
func (h *Handlers) RotateRefreshToken(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	rotated, err := h.Service.RotateRefreshToken(r.Context(), in.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		SessionID:    rotated.SessionID,
		RefreshToken: rotated.NewRefreshToken,
	})
}

// CleanupGuideSessions — POST /guide-sessions/cleanup.
func (h *Handlers) CleanupGuideSessions(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.CleanupGuideSessions(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}
