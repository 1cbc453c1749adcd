// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ содержит
// текстовый статус, числовой код и, при необходимости, сообщение и данные.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — текст статуса HTTP (http.StatusText(Code)).
// Поле Message — пояснение (опционально).
// Поле Data — данные ответа (опционально).
type Response struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status  string `json:"status" example:"Unauthorized"`
	Code    int    `json:"code" example:"401"`
	Message string `json:"message" example:"Not authorized"`
}

// New возвращает Response с кодом code.
func New(code int, message string, data any) Response {
	return Response{
		Status:  http.StatusText(code),
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// WithData возвращает успешный Response с переданными данными.
func WithData(code int, data any) Response {
	return New(code, "", data)
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(code int, msg string) Response {
	return New(code, msg, nil)
}

// Render записывает resp в ответ с HTTP-статусом resp.Code.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	render.Status(r, resp.Code)
	render.JSON(w, r, resp)
}

// ValidationError формирует Response 400 на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("missing required field %s", strings.ToLower(err.Field())))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", strings.ToLower(err.Field())))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", strings.ToLower(err.Field()), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", strings.ToLower(err.Field())))
		}
	}
	return Error(http.StatusBadRequest, strings.Join(errsMsgs, ", "))
}
