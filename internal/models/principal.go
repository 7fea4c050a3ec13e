package models

import (
	"time"

	"github.com/google/uuid"
)

// PrincipalKind — вид аутентифицируемой личности.
type PrincipalKind string

const (
	// KindUser — путешественник (пользователь платформы).
	KindUser PrincipalKind = "user"
	// KindGuide — аккаунт гида.
	KindGuide PrincipalKind = "guide"
)

// User — пользователь платформы (якорь идентичности).
// Signature — глобально-уникальная подпись устройства/установки;
// назначается не более одного раза, nil до назначения.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Signature *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Guide — аккаунт гида.
type Guide struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Principal — результат разрешения токена: кто стоит за предъявленной
// сессией. Поле Signature заполняется только для KindUser.
type Principal struct {
	Kind      PrincipalKind
	ID        uuid.UUID
	Email     string
	Name      string
	Signature *string
}
