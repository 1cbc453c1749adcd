package signup

import (
	"context"

	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Service описывает регистрацию учётной записи.
type Service interface {
	Register(ctx context.Context, email, password string, tier models.SubscriptionTier) (*models.PublicAccount, error)
}
