package handlers

import (
	"net/http"
	"time"

	apierrors "sessions-service/internal/errors"
	"sessions-service/internal/models"
	"sessions-service/internal/service"

	"github.com/google/uuid"
)

// createSessionRequest — тело POST /sessions.
// Вызывающая сторона (web-приложение) передаёт уже проверенный
// идентификатор пользователя: пароли этот сервис не видит.
type createSessionRequest struct {
	UserID        string            `json:"user_id"`
	DeviceKey     string            `json:"device_key,omitempty"`
	UserAgent     string            `json:"user_agent,omitempty"`
	SourceAddress string            `json:"source_address,omitempty"`
	TTLSeconds    int64             `json:"ttl_seconds,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type sessionResponse struct {
	SID       string    `json:"sid"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type principalResponse struct {
	Kind      string  `json:"kind"`
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name,omitempty"`
	Signature *string `json:"signature,omitempty"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// CreateSession — POST /sessions.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var in createSessionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	session, err := h.Service.CreateSession(r.Context(), userID, service.CreateSessionInput{
		DeviceKey:     in.DeviceKey,
		UserAgent:     in.UserAgent,
		SourceAddress: in.SourceAddress,
		TTL:           time.Duration(in.TTLSeconds) * time.Second,
		Metadata:      in.Metadata,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		SID:       session.SID,
		UserID:    session.UserID.String(),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
}

// ResolveSession — GET /sessions/resolve; sid в X-Session-Token.
func (h *Handlers) ResolveSession(w http.ResponseWriter, r *http.Request) {
	sid := r.Header.Get(SessionTokenHeader)

	principal, err := h.Service.Resolve(r.Context(), models.KindUser, sid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPrincipalResponse(principal))
}

// SweepSessions — POST /sessions/sweep.
func (h *Handlers) SweepSessions(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.SweepSessions(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func toPrincipalResponse(p *models.Principal) principalResponse {
	return principalResponse{
		Kind:      string(p.Kind),
		ID:        p.ID.String(),
		Email:     p.Email,
		Name:      p.Name,
		Signature: p.Signature,
	}
}
