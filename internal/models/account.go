// Package models содержит доменную модель учётной записи пользователя,
// включающую данные для входа, статус верификации email и аватар.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// SubscriptionTier тарифный план учётной записи.
type SubscriptionTier string

const (
	// TierStarter тариф по умолчанию.
	TierStarter SubscriptionTier = "starter"
	// TierPro расширенный тариф.
	TierPro SubscriptionTier = "pro"
	// TierBusiness тариф для организаций.
	TierBusiness SubscriptionTier = "business"
)

// Valid сообщает, входит ли тариф в закрытый список допустимых значений.
func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierStarter, TierPro, TierBusiness:
		return true
	}
	return false
}

// Account представляет зарегистрированную учётную запись.
//
// Инвариант: Verified == false тогда и только тогда, когда VerificationToken != nil.
type Account struct {
	UUID              string           // Уникальный идентификатор, неизменяем
	Email             string           // Электронная почта (уникальная, точное совпадение)
	PasswordHash      string           // bcrypt-хэш пароля
	Subscription      SubscriptionTier // Тарифный план
	SessionToken      *string          // Токен текущей сессии, nil после logout
	VerificationToken *string          // Токен подтверждения email, nil после подтверждения
	Verified          bool             // Признак подтверждённого email
	AvatarURL         string           // Относительный путь или URL аватара
	CreatedAt         time.Time
}

// AccountDraft данные для создания новой учётной записи.
type AccountDraft struct {
	Email             string
	PasswordHash      string
	Subscription      SubscriptionTier
	VerificationToken string
	AvatarURL         string
}

// AccountPatch описывает частичное обновление учётной записи.
// Применяются только поля, отличные от nil. Для токенов пустая строка
// означает сброс значения в NULL.
type AccountPatch struct {
	SessionToken      *string
	VerificationToken *string
	Verified          *bool
	AvatarURL         *string
	Subscription      *SubscriptionTier
}

// PublicAccount публичная проекция учётной записи без хэша и токенов.
type PublicAccount struct {
	Email        string           `json:"email"`
	Subscription SubscriptionTier `json:"subscription"`
	AvatarURL    string           `json:"avatarURL,omitempty"`
}

// Public возвращает публичную проекцию учётной записи.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		Email:        a.Email,
		Subscription: a.Subscription,
		AvatarURL:    a.AvatarURL,
	}
}

// AccountSummary краткая проекция для ответов login и current.
type AccountSummary struct {
	Email        string           `json:"email"`
	Subscription SubscriptionTier `json:"subscription"`
}

// Summary возвращает краткую проекцию учётной записи.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{Email: a.Email, Subscription: a.Subscription}
}

// HasSession сообщает, совпадает ли переданный токен с сохранённым токеном сессии.
func (a *Account) HasSession(token string) bool {
	return a.SessionToken != nil && *a.SessionToken == token
}

// Ptr возвращает указатель на переданное значение. Удобно при сборке AccountPatch.
func Ptr[T any](v T) *T {
	return &v
}
