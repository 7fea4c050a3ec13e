package service

import (
	"context"
	"errors"
	"fmt"

	"sessions-service/internal/models"
	"sessions-service/internal/pkg/log"
	"sessions-service/internal/storage"
)

// Resolve — пайплайн валидации: по предъявленному токену возвращает
// принципала либо чисто отказывает.
//
// Алгоритм:
//   - токен не предъявлен — ErrNoToken («не аутентифицирован», не ошибка);
//   - поиск в хранилище соответствующего вида; промах (нет записи,
//     просрочена, отозвана) — ErrInvalidToken, и вызывающая сторона
//     обязана очистить клиентские артефакты: они по определению бесполезны;
//   - сессия есть, а принципал удалён — осиротевшая запись зачищается
//     (удаление для пользовательской, отзыв для гидовской), затем
//     ErrPrincipalMissing: висячие сессии удалённых аккаунтов не должны
//     ни накапливаться, ни разрешаться.
//
// Resolve никогда не трогает expires_at — разрешение строго read-only по
// отношению к сроку жизни. Продление — только отдельным явным действием;
// автопродление на чтении сделало бы срок неограниченным под постоянным
// трафиком.
func (s *Service) Resolve(ctx context.Context, kind models.PrincipalKind, tok string) (*models.Principal, error) {
	const op = "service/resolve/Resolve"

	if tok == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	switch kind {
	case models.KindUser:
		return s.resolveUser(ctx, tok)
	case models.KindGuide:
		return s.resolveGuide(ctx, tok)
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
}

func (s *Service) resolveUser(ctx context.Context, sid string) (*models.Principal, error) {
	const op = "service/resolve/resolveUser"

	lg := log.From(ctx).With("op", op)

	session, err := s.SessionBySID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Аккаунт удалён — зачищаем сироту и отказываем.
			if derr := s.storage.DeleteSession(ctx, sid); derr != nil && !errors.Is(derr, storage.ErrNotFound) {
				lg.Warn("orphan_session_cleanup_failed", "err", derr)
			}

			lg.Warn("principal_missing", "user_id", session.UserID.String())
			return nil, fmt.Errorf("%s: %w", op, ErrPrincipalMissing)
		}

		lg.Error("user_lookup_failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return &models.Principal{
		Kind:      models.KindUser,
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Signature: user.Signature,
	}, nil
}

func (s *Service) resolveGuide(ctx context.Context, accessToken string) (*models.Principal, error) {
	const op = "service/resolve/resolveGuide"

	lg := log.From(ctx).With("op", op)

	session, err := s.VerifyGuideSession(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	guide, err := s.storage.GuideByID(ctx, session.GuideID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if _, rerr := s.RevokeGuideSession(ctx, accessToken); rerr != nil {
				lg.Warn("orphan_session_cleanup_failed", "err", rerr)
			}

			lg.Warn("principal_missing", "guide_id", session.GuideID.String())
			return nil, fmt.Errorf("%s: %w", op, ErrPrincipalMissing)
		}

		lg.Error("guide_lookup_failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return &models.Principal{
		Kind:  models.KindGuide,
		ID:    guide.ID,
		Email: guide.Email,
		Name:  guide.Name,
	}, nil
}
