// handlers — REST-хендлеры внутреннего API sessions-сервиса.
// Транспорт только переносит непрозрачный токен и тело запроса;
// вся логика жизненного цикла — в сервисном слое.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"sessions-service/internal/service"
)

// SessionTokenHeader — заголовок с sid пользовательской сессии.
// Сессии гидов предъявляются как Bearer в Authorization.
const SessionTokenHeader = "X-Session-Token"

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	Service *service.Service
}

func New(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — локальная ошибка парсинга -> сервисный ErrInvalidArgument.
func errInvalidArgument() error {
	return fmt.Errorf("request parse: %w", service.ErrInvalidArgument)
}

// bearerToken достаёт Bearer-токен из Authorization ("" — токена нет).
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}
