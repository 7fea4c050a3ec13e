package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sessions-service/internal/cache"
	"sessions-service/internal/models"
	"sessions-service/internal/pkg/log"
	"sessions-service/internal/storage"
	"sessions-service/internal/token"

	"github.com/google/uuid"
)

// CreateGuideSessionInput — параметры создания сессии гида.
// RefreshToken может быть предоставлен вызывающей стороной; пустое
// значение означает «сгенерировать». Access-токен и refresh-токен
// независимо случайны: между ними нет деривационной связи, и утёкший
// refresh-токен не даёт восстановить access-токен.
type CreateGuideSessionInput struct {
	TTL           time.Duration
	UserAgent     string
	SourceAddress string
	RefreshToken  string
}

// RotatedToken — результат ротации refresh-токена.
type RotatedToken struct {
	SessionID       string
	NewRefreshToken string
}

// CreateGuideSession создаёт сессию гида одной атомарной вставкой.
// Коллизии сгенерированных токенов разрешаются повторной генерацией;
// коллизия предоставленного вызывающей стороной refresh-токена после
// исчерпания попыток всплывает как ErrTokenCollision.
func (s *Service) CreateGuideSession(ctx context.Context, guideID uuid.UUID, in CreateGuideSessionInput) (*models.GuideSession, error) {
	const op = "service/guide_sessions/CreateGuideSession"

	lg := log.From(ctx).With("op", op, "guide_id", guideID.String())

	if guideID == uuid.Nil {
		lg.Warn("invalid argument: empty guide_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = s.cfg.GuideSessionTTL
	}

	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		refresh := in.RefreshToken
		if refresh == "" {
			refresh = token.New(s.cfg.TokenBytes)
		}

		now := time.Now().UTC()
		session := &models.GuideSession{
			Token:         token.New(s.cfg.TokenBytes),
			RefreshToken:  refresh,
			GuideID:       guideID,
			UserAgent:     in.UserAgent,
			SourceAddress: in.SourceAddress,
			CreatedAt:     now,
			ExpiresAt:     now.Add(ttl),
		}

		if err := s.storage.SaveGuideSession(ctx, session); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Коллизия token либо refresh_token — генерируем заново.
				continue
			}

			lg.Error("save_guide_session_failed", "err", err)
			return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
		}

		return session, nil
	}

	lg.Error("guide_token_collision_exceeded")
	return nil, fmt.Errorf("%s: %w", op, ErrTokenCollision)
}

// VerifyGuideSession проверяет access-токен и возвращает живую сессию.
// Отсутствующая, отозванная и просроченная записи неразличимы — все дают
// ErrInvalidToken. Кэш используется только для быстрого отрицательного
// вердикта (отозван/просрочен); положительный путь всегда идёт в
// хранилище — источником истины остаётся оно.
func (s *Service) VerifyGuideSession(ctx context.Context, accessToken string) (*models.GuideSession, error) {
	const op = "service/guide_sessions/VerifyGuideSession"

	lg := log.From(ctx).With("op", op)

	if accessToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	now := time.Now().UTC()

	if s.scache != nil {
		entry, ok, err := s.scache.Get(ctx, accessToken)
		if err != nil {
			// Кэш недоступен — идём в хранилище; деградации аутентификации нет.
			lg.Warn("session_cache_get_failed", "err", err)
		} else if ok && (entry.Revoked || !entry.ExpiresAt.After(now)) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
	}

	session, err := s.storage.GuideSessionByToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		lg.Error("guide_session_lookup_failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if !session.Valid(now) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if s.scache != nil {
		if ttl := session.ExpiresAt.Sub(now); ttl > 0 {
			_ = s.scache.Set(ctx, accessToken, &cache.SessionEntry{
				GuideID:   session.GuideID,
				Revoked:   false,
				ExpiresAt: session.ExpiresAt,
			}, ttl)
		}
	}

	return session, nil
}

// RevokeGuideSession помечает сессию отозванной (logout).
// Возвращает true, если запись была найдена; повторный отзыв — не ошибка.
func (s *Service) RevokeGuideSession(ctx context.Context, accessToken string) (bool, error) {
	const op = "service/guide_sessions/RevokeGuideSession"

	lg := log.From(ctx).With("op", op)

	if accessToken == "" {
		return false, fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	found, err := s.storage.RevokeGuideSession(ctx, accessToken)
	if err != nil {
		lg.Error("revoke_failed", "err", err)
		return false, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if s.scache != nil {
		if err := s.scache.MarkRevoked(ctx, accessToken); err != nil {
			lg.Warn("session_cache_mark_revoked_failed", "err", err)
		}
	}

	return found, nil
}

// RevokeAllGuideSessions отзывает все живые сессии гида (принудительный
// выход со всех устройств после смены учётных данных). Авторитетная
// запись — одно bulk-обновление в хранилище; кэшированные вердикты
// помечаются следом и могут отставать не дольше своего TTL.
func (s *Service) RevokeAllGuideSessions(ctx context.Context, guideID uuid.UUID) (int64, error) {
	const op = "service/guide_sessions/RevokeAllGuideSessions"

	lg := log.From(ctx).With("op", op, "guide_id", guideID.String())

	if guideID == uuid.Nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var affected []string
	if s.scache != nil {
		// Токены считываем до bulk-обновления: после него живых не останется.
		tokens, err := s.storage.ActiveGuideTokens(ctx, guideID)
		if err != nil {
			lg.Warn("active_tokens_listing_failed", "err", err)
		} else {
			affected = tokens
		}
	}

	count, err := s.storage.RevokeAllGuideSessions(ctx, guideID)
	if err != nil {
		lg.Error("revoke_all_failed", "err", err)
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	for _, t := range affected {
		if err := s.scache.MarkRevoked(ctx, t); err != nil {
			lg.Warn("session_cache_mark_revoked_failed", "err", err)
		}
	}

	lg.Info("guide_sessions_revoked", "count", count)
	return count, nil
}

// RotateRefreshToken заменяет refresh-токен новым значением, не меняя
// ни access-токен, ни идентичность сессии. Отсутствие подходящей записи
// (в т.ч. повторное использование уже заменённого значения) — ErrInvalidToken;
// трактовать это как сигнал возможной кражи refresh-токена и отзывать все
// сессии скомпрометированного гида — политика вызывающей стороны.
func (s *Service) RotateRefreshToken(ctx context.Context, oldRefresh string) (*RotatedToken, error) {
	const op = "service/guide_sessions/RotateRefreshToken"

	lg := log.From(ctx).With("op", op)

	if oldRefresh == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		newRefresh := token.New(s.cfg.TokenBytes)

		session, err := s.storage.ReplaceRefreshToken(ctx, oldRefresh, newRefresh)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("refresh_rotation_no_match")
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			if errors.Is(err, storage.ErrAlreadyExists) {
				// Новый refresh-токен столкнулся с чужим — генерируем заново.
				continue
			}

			lg.Error("refresh_rotation_failed", "err", err)
			return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
		}

		return &RotatedToken{
			SessionID:       session.ID,
			NewRefreshToken: newRefresh,
		}, nil
	}

	lg.Error("refresh_collision_exceeded")
	return nil, fmt.Errorf("%s: %w", op, ErrTokenCollision)
}

// CleanupGuideSessions — явная зачистка просроченных сессий гидов.
// Дополняет TTL-механизм хранилища; полезна в тестах и при миграциях.
func (s *Service) CleanupGuideSessions(ctx context.Context) (int64, error) {
	const op = "service/guide_sessions/CleanupGuideSessions"

	lg := log.From(ctx).With("op", op)

	count, err := s.storage.DeleteExpiredGuideSessions(ctx, time.Now().UTC())
	if err != nil {
		lg.Error("cleanup_failed", "err", err)
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if count > 0 {
		lg.Info("expired_guide_sessions_swept", "count", count)
	}

	return count, nil
}
