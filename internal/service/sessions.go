package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sessions-service/internal/models"
	"sessions-service/internal/pkg/log"
	"sessions-service/internal/storage"
	"sessions-service/internal/token"

	"github.com/google/uuid"
)

// CreateSessionInput — параметры создания пользовательской сессии.
// Все поля необязательны; нулевой TTL заменяется значением из конфигурации.
type CreateSessionInput struct {
	DeviceKey     string
	UserAgent     string
	SourceAddress string
	TTL           time.Duration
	Metadata      map[string]string
}

// CreateSession создаёт пользовательскую сессию: генерирует свежий sid,
// вычисляет expires_at = now + ttl и сохраняет запись одной атомарной
// вставкой. Коллизия sid (пренебрежимо редкая) разрешается ограниченным
// числом повторных генераций; хранилище недоступно — ErrUnavailable без
// внутренних ретраев.
func (s *Service) CreateSession(ctx context.Context, userID uuid.UUID, in CreateSessionInput) (*models.Session, error) {
	const op = "service/sessions/CreateSession"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		lg.Warn("invalid argument: empty user_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = s.cfg.UserSessionTTL
	}

	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		now := time.Now().UTC()
		session := &models.Session{
			SID:           token.NewSessionID(),
			UserID:        userID,
			DeviceKey:     in.DeviceKey,
			UserAgent:     in.UserAgent,
			SourceAddress: in.SourceAddress,
			CreatedAt:     now,
			ExpiresAt:     now.Add(ttl),
			Metadata:      in.Metadata,
		}

		if err := s.storage.SaveSession(ctx, session); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия sid — пробуем сгенерировать заново.
				continue
			}

			lg.Error("save_session_failed", "err", err)
			return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
		}

		return session, nil
	}

	lg.Error("session_id_collision_exceeded")
	return nil, fmt.Errorf("%s: %w", op, ErrTokenCollision)
}

// SessionBySID возвращает живую сессию по sid.
// Отсутствующая и просроченная записи неразличимы — обе дают ErrInvalidToken.
func (s *Service) SessionBySID(ctx context.Context, sid string) (*models.Session, error) {
	const op = "service/sessions/SessionBySID"

	lg := log.From(ctx).With("op", op)

	if sid == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	session, err := s.storage.SessionBySID(ctx, sid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		lg.Error("session_lookup_failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	// Страховка от гонки с зачисткой: присутствию записи не доверяем,
	// срок перепроверяем сами.
	if session.Expired(time.Now().UTC()) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return session, nil
}

// SweepSessions удаляет все просроченные пользовательские сессии и
// возвращает число удалённых. Идемпотентна; безопасна при конкурентных
// чтениях.
func (s *Service) SweepSessions(ctx context.Context) (int64, error) {
	const op = "service/sessions/SweepSessions"

	lg := log.From(ctx).With("op", op)

	count, err := s.storage.DeleteExpiredSessions(ctx, time.Now().UTC())
	if err != nil {
		lg.Error("sweep_failed", "err", err)
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if count > 0 {
		lg.Info("expired_sessions_swept", "count", count)
	}

	return count, nil
}
