package models

// VerificationMessage — сообщение очереди для отправки письма с подтверждением email.
type VerificationMessage struct {
	Email string `json:"email"`
	Token string `json:"token"`
	Link  string `json:"link"`
}
