// Package models содержит доменные сущности sessions-сервиса.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Session — пользовательская сессия (один аутентифицированный
// браузер/клиент пользователя-путешественника).
//
// Важно:
//   - SID — непрозрачный токен, первичный ключ поиска; уникален среди
//     всех живых записей и не переиспользуется, пока есть конфликтующая.
//   - DeviceKey — необязательная клиентская метка устройства; не путать
//     с User.Signature (глобально-уникальной подписью устройства).
//   - UserAgent/SourceAddress — метаданные происхождения, справочные.
//   - ExpiresAt вычисляется при создании как CreatedAt + TTL и никогда
//     не продлевается; запись с ExpiresAt <= now логически мертва, даже
//     если физически ещё не удалена.
//   - Metadata — свободный мешок ключ/значение без схемы; best-effort,
//     контрактом не является.
type Session struct {
	SID           string
	UserID        uuid.UUID
	DeviceKey     string
	UserAgent     string
	SourceAddress string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	Metadata      map[string]string
}

// Expired сообщает, истекла ли сессия на момент now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
