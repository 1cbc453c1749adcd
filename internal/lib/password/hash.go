// Package password реализует функции для безопасного хеширования и проверки паролей,
// а также политику сложности пароля.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// CompareHash сравнивает исходный bcrypt-хеш с введённым паролем, проверяя их соответствие.
// Validate проверяет пароль на соответствие политике сложности.
package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Cost фиксированная стоимость bcrypt. Не настраивается через конфиг.
const Cost = 10

// MinLength минимальная длина пароля.
const MinLength = 8

// MaxBytes предел bcrypt: длинные пароли он отвергает, поэтому политика считает байты, а не символы.
const MaxBytes = 72

// Symbols набор допустимых спецсимволов, хотя бы один из которых обязателен.
const Symbols = "!@#$%^&*()-_=+[]{}|;:,.<>?/~"

var (
	// ErrTooShort пароль короче MinLength.
	ErrTooShort = errors.New("password is too short")
	// ErrTooLong пароль длиннее MaxBytes байт.
	ErrTooLong = errors.New("password is too long")
	// ErrNoLetter в пароле нет ни одной буквы.
	ErrNoLetter = errors.New("password must contain a letter")
	// ErrNoDigit в пароле нет ни одной цифры.
	ErrNoDigit = errors.New("password must contain a digit")
	// ErrNoSymbol в пароле нет ни одного символа из Symbols.
	ErrNoSymbol = errors.New("password must contain a symbol")
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Соль генерируется на каждый вызов и хранится внутри хэша.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Validate проверяет пароль на соответствие политике: не короче MinLength символов,
// не длиннее MaxBytes байт, хотя бы одна буква, одна цифра и один символ из Symbols.
func Validate(password string) error {
	if utf8.RuneCountInString(password) < MinLength {
		return ErrTooShort
	}
	if len(password) > MaxBytes {
		return ErrTooLong
	}
	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(Symbols, r):
			symbol = true
		}
	}
	switch {
	case !letter:
		return ErrNoLetter
	case !digit:
		return ErrNoDigit
	case !symbol:
		return ErrNoSymbol
	}
	return nil
}
