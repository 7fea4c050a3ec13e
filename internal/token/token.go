// token генерирует непрозрачные идентификаторы: сессионные id,
// access/refresh-токены гидов и подписи устройств.
//
// Токен — случайная hex-строка фиксированной длины без какой-либо
// внутренней структуры; используется исключительно как ключ поиска.
// Коллизии пренебрежимо редки, но не исключены — вызывающая сторона
// обязана обрабатывать конфликт уникальности при сохранении.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/google/uuid"
)

// Классы длины по умолчанию (в байтах энтропии).
const (
	// AccessTokenBytes — access/refresh-токены гидов.
	AccessTokenBytes = 32
	// SignatureBytes — подписи устройств пользователей.
	SignatureBytes = 16
)

// FallbackPrefix помечает деградированный токен, выданный без
// криптографического источника случайности. Такой токен нельзя
// перепутать с боевым ни в логах, ни в аудите.
const FallbackPrefix = "insecure-"

// New возвращает hex-строку из byteLen случайных байт (2*byteLen символов).
// Если криптографический источник недоступен, возвращает деградированный
// токен с префиксом FallbackPrefix (timestamp + math/rand).
func New(byteLen int) string {
	if byteLen <= 0 {
		byteLen = AccessTokenBytes
	}

	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return fallback(byteLen)
	}

	return hex.EncodeToString(b)
}

// NewSessionID возвращает идентификатор сессии класса UUID
// (128 бит энтропии, UUIDv4).
func NewSessionID() string {
	return uuid.NewString()
}

// fallback собирает несекретный токен из текущего времени и math/rand.
// Используется только при отказе crypto/rand.
func fallback(byteLen int) string {
	b := make([]byte, byteLen)

	r := mrand.New(mrand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = byte(r.Intn(256))
	}

	return fmt.Sprintf("%s%d-%s", FallbackPrefix, time.Now().UnixNano(), hex.EncodeToString(b))
}
