// Package gravatar строит URL аватара по умолчанию из email без обращения к сети.
package gravatar

import (
	"crypto/md5" //nolint:gosec // формат хэша задан протоколом Gravatar
	"encoding/hex"
	"strings"
)

const (
	baseURL = "//www.gravatar.com/avatar/"
	// Size размер аватара по умолчанию в пикселях.
	Size = "100"
	// Default стиль сгенерированной картинки для email без аватара.
	Default = "retro"
)

// URL возвращает протокол-независимый URL Gravatar для email.
// Результат детерминирован: один и тот же email всегда даёт один и тот же URL.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
	return baseURL + hex.EncodeToString(sum[:]) + "?s=" + Size + "&d=" + Default
}
