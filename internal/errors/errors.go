// errors стандартизирует ответы об ошибках HTTP-слоя sessions-сервиса.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей;
//   - для отказов аутентификации — флаг clear_session: предъявленные
//     клиентом артефакты по определению бесполезны, и вызывающая сторона
//     обязана их очистить.
//
// Внутренняя таксономия отказов наружу не выдаётся: любой отказ
// аутентификации выглядит одинаково («please sign in again»),
// подробности остаются в логах.
package errors

import (
	"context"
	"encoding/json"
	se "errors"
	"net/http"

	"sessions-service/internal/service"
)

// APIError — единый формат для вызывающей стороны.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// ClearSession — указание очистить клиентские артефакты сессии.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	ClearSession bool   `json:"clear_session,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - ErrNoToken / ErrInvalidToken / ErrPrincipalMissing — единый 401
//     с clear_session=true, без различения причин;
//   - ErrUnavailable — 503 (инфраструктура, не ретраится здесь);
//   - прочее — по таблице ниже.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, envelope("internal", "internal error", false)
	}

	switch {
	case se.Is(err, service.ErrNoToken),
		se.Is(err, service.ErrInvalidToken),
		se.Is(err, service.ErrPrincipalMissing):
		return http.StatusUnauthorized, envelope("unauthenticated", "please sign in again", true)
	case se.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, envelope("invalid_argument", "invalid argument", false)
	case se.Is(err, service.ErrNotFound):
		return http.StatusNotFound, envelope("not_found", "not found", false)
	case se.Is(err, service.ErrSignatureExhausted):
		return http.StatusInternalServerError, envelope("signature_exhausted", "signature assignment exhausted", false)
	case se.Is(err, service.ErrTokenCollision):
		return http.StatusInternalServerError, envelope("internal", "internal error", false)
	case se.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, envelope("unavailable", "service unavailable", false)
	case se.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, envelope("deadline_exceeded", "deadline exceeded", false)
	default:
		return http.StatusInternalServerError, envelope("internal", "internal error", false)
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id, чтобы репорты можно было привязать к логам.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func envelope(code, msg string, clear bool) ErrorResponse {
	return ErrorResponse{Error: APIError{
		Code:         code,
		Message:      msg,
		ClearSession: clear,
	}}
}
