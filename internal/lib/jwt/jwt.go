// Package jwt реализует генерацию и парсинг JWT токенов с данными учётной записи.
//
// Maker определяет интерфейс для создания и проверки токенов.
// MakerImpl — конкретная реализация с использованием секретного ключа и фиксированного срока жизни.
package jwt

import (
	"errors"
	"time"
)

// TokenTTL — фиксированное время жизни выдаваемого токена.
const TokenTTL = time.Hour

var (
	// ErrEmptySecret возвращается при попытке создать Maker без ключа подписи.
	ErrEmptySecret = errors.New("jwt secret key is empty")
	// ErrInvalidToken — токен просрочен, повреждён или подписан чужим ключом.
	ErrInvalidToken = errors.New("invalid token")
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	GenerateToken(claims Claims) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl с TTL, равным TokenTTL.
//
// Пустой ключ считается ошибкой конфигурации, токены с ним нельзя было бы проверить.
func NewJWTMaker(secretKey string) (*MakerImpl, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  TokenTTL,
		now:       time.Now,
	}, nil
}
