package models

import (
	"time"

	"github.com/google/uuid"
)

// GuideSession — сессия аккаунта гида с поддержкой ротации refresh-токена.
//
// Важно:
//   - ID — строковое представление ObjectID MongoDB; не меняется за всё
//     время жизни записи, в том числе при ротации.
//   - Token — непрозрачный короткоживущий access-токен, первичный ключ поиска.
//   - RefreshToken — независимый случайный токен; используется только для
//     выпуска нового refresh-токена (ротация) и никогда — для
//     восстановления Token.
//   - Revoked — одностороняя защёлка false→true; обратного перехода нет.
//   - Сессия действительна тогда и только тогда, когда
//     !Revoked && ExpiresAt > now. Просроченные записи хранилище
//     удаляет само (TTL-индекс).
type GuideSession struct {
	ID            string
	Token         string
	RefreshToken  string
	GuideID       uuid.UUID
	Revoked       bool
	UserAgent     string
	SourceAddress string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Valid сообщает, действительна ли сессия на момент now.
func (g *GuideSession) Valid(now time.Time) bool {
	return !g.Revoked && g.ExpiresAt.After(now)
}
