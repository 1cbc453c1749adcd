// Package verification генерирует одноразовые токены подтверждения email.
package verification

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TokenLength — длина токена. 21 символ алфавита nanoid даёт ~126 бит энтропии.
const TokenLength = 21

// NewToken возвращает новый криптографически случайный токен подтверждения.
func NewToken() (string, error) {
	const op = "verification.NewToken"
	token, err := gonanoid.New(TokenLength)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
