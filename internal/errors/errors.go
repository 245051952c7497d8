// errors стандартизирует ответы об ошибках HTTP-слоя портала.
// На вход он принимает ошибку (обычно StatusError от backoffice),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу: статусы backoffice API.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thecontemporary/news-portal/internal/backoffice"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует входную ошибку в HTTP-статус и унифицированный
// ответ для фронта.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - отмена/таймаут контекста - 499/504;
//   - StatusError от backoffice - маппим статус через baseFromStatus();
//   - прочее - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "internal error",
			},
		}
	}

	if errors.Is(err, context.Canceled) {
		return StatusClientClosedRequest, ErrorResponse{
			Error: APIError{
				Code:    "canceled",
				Message: "request canceled",
			},
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, ErrorResponse{
			Error: APIError{
				Code:    "deadline_exceeded",
				Message: "upstream timeout",
			},
		}
	}

	if code := backoffice.StatusCodeOf(err); code != 0 {
		httpStatus, feCode, msg := baseFromStatus(code)
		return httpStatus, ErrorResponse{
			Error: APIError{
				Code:    feCode,
				Message: msg,
			},
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: APIError{
			Code:    "internal",
			Message: "internal error",
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromStatus — базовый маппинг статуса backoffice -> HTTP/FE-код/сообщение.
// Клиентские статусы проходят как есть (это ответ ресурсу, а не сбой портала),
// серверные сворачиваются в 502: детали апстрима фронту не нужны.
func baseFromStatus(code int) (int, string, string) {
	switch code {
	case http.StatusBadRequest:
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case http.StatusUnauthorized:
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case http.StatusForbidden:
		return http.StatusForbidden, "permission_denied", "permission denied"
	case http.StatusNotFound:
		return http.StatusNotFound, "not_found", "not found"
	case http.StatusConflict:
		return http.StatusConflict, "already_exists", "already exists"
	case http.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity, "invalid_argument", "validation failed"
	case http.StatusTooManyRequests:
		return http.StatusTooManyRequests, "resource_exhausted", "too many requests"
	default:
		if code >= 500 {
			return http.StatusBadGateway, "upstream_error", "upstream error"
		}

		return http.StatusInternalServerError, "internal", "internal error"
	}
}
