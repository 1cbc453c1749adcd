package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation некорректные входные данные.
	ErrValidation = errors.New("validation error")
	// ErrConflict email уже занят.
	ErrConflict = errors.New("email in use")
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized неверные учётные данные или недействительный токен.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotVerified email ещё не подтверждён.
	ErrNotVerified = fmt.Errorf("%w: email is not verified", ErrUnauthorized)
	// ErrAlreadyVerified повторная отправка письма для подтверждённого email.
	ErrAlreadyVerified = errors.New("verification has already been passed")
	// ErrUnsupportedImage загруженный файл не удалось декодировать как изображение.
	ErrUnsupportedImage = errors.New("unsupported image")
)
