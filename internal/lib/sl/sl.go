// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках.
package sl

import "log/slog"

// ErrKey — ключ атрибута с текстом ошибки.
const ErrKey = "error"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Для nil возвращается пустое значение, чтобы отложенное логирование не паниковало.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(ErrKey, "")
	}
	return slog.String(ErrKey, err.Error())
}
