package storage

import (
	"context"
	"errors"
	"time"

	"sessions-service/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound — запись не найдена (сессия/пользователь/гид).
	// Просроченная запись при чтении неотличима от отсутствующей.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности первичного токена
	// (sid/token/refresh-token) либо подпись уже назначена.
	ErrAlreadyExists = errors.New("already exists")
	// ErrSignatureTaken — кандидат подписи занят другим пользователем;
	// попытку можно повторить с новым кандидатом.
	ErrSignatureTaken = errors.New("signature taken")
	// ErrUnavailable — хранилище недоступно; внутри не ретраится.
	ErrUnavailable = errors.New("storage unavailable")
)

// SessionStorage выполняет операции над пользовательскими сессиями.
// Стратегия истечения — явная зачистка (DeleteExpiredSessions);
// чтение при этом само отсекает просроченные записи.
type SessionStorage interface {
	// SaveSession сохраняет новую сессию. Конфликт по sid — ErrAlreadyExists.
	SaveSession(ctx context.Context, session *models.Session) error
	// SessionBySID находит живую сессию по sid.
	// Отсутствующая и просроченная записи неразличимы: обе — ErrNotFound.
	SessionBySID(ctx context.Context, sid string) (*models.Session, error)
	// DeleteSession удаляет сессию по sid (зачистка сирот).
	DeleteSession(ctx context.Context, sid string) error
	// DeleteExpiredSessions удаляет все записи с expires_at <= now,
	// возвращает число удалённых. Идемпотентна.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// GuideSessionStorage выполняет операции над сессиями гидов.
// Стратегия истечения — TTL-индекс на стороне хранилища; явная
// зачистка остаётся дополнением, а не заменой.
type GuideSessionStorage interface {
	// SaveGuideSession сохраняет новую сессию гида.
	// Конфликт по token/refresh_token — ErrAlreadyExists.
	SaveGuideSession(ctx context.Context, session *models.GuideSession) error
	// GuideSessionByToken находит сессию по access-токену.
	GuideSessionByToken(ctx context.Context, token string) (*models.GuideSession, error)
	// RevokeGuideSession помечает сессию отозванной.
	// Возвращает true, если запись была найдена (идемпотентно).
	RevokeGuideSession(ctx context.Context, token string) (bool, error)
	// RevokeAllGuideSessions отзывает все неотозванные сессии гида
	// одним условным bulk-обновлением; возвращает число затронутых.
	RevokeAllGuideSessions(ctx context.Context, guideID uuid.UUID) (int64, error)
	// ReplaceRefreshToken атомарно заменяет refresh-токен на newRefresh
	// у неотозванной записи с refresh_token == oldRefresh.
	// Нет подходящей записи — ErrNotFound.
	ReplaceRefreshToken(ctx context.Context, oldRefresh, newRefresh string) (*models.GuideSession, error)
	// ActiveGuideTokens возвращает access-токены живых сессий гида.
	// Только чтение; используется для инвалидации кэша при revoke-all.
	ActiveGuideTokens(ctx context.Context, guideID uuid.UUID) ([]string, error)
	// DeleteExpiredGuideSessions — явная зачистка в дополнение к TTL-индексу.
	DeleteExpiredGuideSessions(ctx context.Context, now time.Time) (int64, error)
}

// PrincipalStorage выполняет операции над якорями идентичности.
type PrincipalStorage interface {
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GuideByID находит гида по ID.
	GuideByID(ctx context.Context, id uuid.UUID) (*models.Guide, error)
	// AssignUserSignature выполняет атомарную условную запись
	// «signature = candidate WHERE _id = userID AND signature IS NULL».
	// Подпись уже назначена (кем-то другим) — ErrAlreadyExists;
	// candidate занят другим пользователем — ErrSignatureTaken.
	AssignUserSignature(ctx context.Context, userID uuid.UUID, candidate string) error
	// UserIDsWithoutSignature возвращает пользователей без подписи
	// (для единоразового backfill).
	UserIDsWithoutSignature(ctx context.Context) ([]uuid.UUID, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	SessionStorage
	GuideSessionStorage
	PrincipalStorage
	Close(ctx context.Context) error
}
