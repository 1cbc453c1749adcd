package login

import (
	"context"

	"github.com/magabrotheeeer/user-identity/internal/services/account"
)

// Service описывает вход в учётную запись.
type Service interface {
	Login(ctx context.Context, email, password string) (*account.LoginResult, error)
}
