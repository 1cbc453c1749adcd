// Package account содержит бизнес-логику учётных записей: регистрацию, вход,
// выход, подтверждение email и загрузку аватара.
package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-playground/validator"
	"golang.org/x/sync/semaphore"

	"github.com/magabrotheeeer/user-identity/internal/lib/gravatar"
	"github.com/magabrotheeeer/user-identity/internal/lib/jwt"
	"github.com/magabrotheeeer/user-identity/internal/lib/password"
	"github.com/magabrotheeeer/user-identity/internal/lib/verification"
	"github.com/magabrotheeeer/user-identity/internal/metrics"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Repository описывает контракт хранилища учётных записей.
type Repository interface {
	Insert(ctx context.Context, draft models.AccountDraft) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByUUID(ctx context.Context, uid string) (*models.Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.Account, error)
	Update(ctx context.Context, uid string, patch models.AccountPatch) (*models.Account, error)
	MarkVerified(ctx context.Context, uid, token string) (*models.Account, error)
	ListAll(ctx context.Context) ([]*models.Account, error)
}

// Cache описывает кэш учётных записей со счётчиками поколений.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Generation(ctx context.Context, key string) (int64, error)
	Bump(ctx context.Context, key string) error
}

// Notifier отправляет письмо с токеном верификации, не блокируя вызывающего.
type Notifier interface {
	Notify(ctx context.Context, email, token string)
}

// AvatarProcessor преобразует загруженное изображение в аватар и возвращает его URL.
type AvatarProcessor interface {
	Process(ctx context.Context, src io.Reader, accountUUID string) (string, error)
}

// Metrics учитывает бизнес-события сервиса.
type Metrics interface {
	RecordRegistration()
	RecordLogin(result string)
	RecordVerification()
	RecordAvatarUpload()
}

// Deps — зависимости сервиса. Cache может быть nil, тогда кэширование отключено.
type Deps struct {
	Log      *slog.Logger
	Repo     Repository
	Cache    Cache
	CacheTTL time.Duration
	Tokens   jwt.Maker
	Notifier Notifier
	Avatars  AvatarProcessor
	Metrics  Metrics
}

// Service реализует операции над учётными записями.
type Service struct {
	log      *slog.Logger
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	tokens   jwt.Maker
	notifier Notifier
	avatars  AvatarProcessor
	metrics  Metrics
	validate *validator.Validate
	// cpu ограничивает число одновременных bcrypt и обработок изображений.
	cpu *semaphore.Weighted
}

// LoginResult — результат успешного входа.
type LoginResult struct {
	Token string                `json:"token"`
	User  models.AccountSummary `json:"user"`
}

// New создает новый экземпляр Service.
func New(d Deps) *Service {
	c := d.Cache
	if c == nil {
		c = noopCache{}
	}
	return &Service{
		log:      d.Log,
		repo:     d.Repo,
		cache:    c,
		cacheTTL: d.CacheTTL,
		tokens:   d.Tokens,
		notifier: d.Notifier,
		avatars:  d.Avatars,
		metrics:  d.Metrics,
		validate: validator.New(),
		cpu:      semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Register создает неподтверждённую учётную запись и отправляет письмо с токеном верификации.
// Пустой tier означает тариф по умолчанию.
func (s *Service) Register(ctx context.Context, email, rawPassword string, tier models.SubscriptionTier) (*models.PublicAccount, error) {
	const op = "account.Register"

	if err := s.validateEmail(email); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.Validate(rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrValidation, err)
	}
	if tier == "" {
		tier = models.TierStarter
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown subscription %q", op, models.ErrValidation, tier)
	}

	var hash string
	err := s.withCPU(ctx, func() error {
		var err error
		hash, err = password.GetHash(rawPassword)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := verification.NewToken()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	acc, err := s.repo.Insert(ctx, models.AccountDraft{
		Email:             email,
		PasswordHash:      hash,
		Subscription:      tier,
		VerificationToken: token,
		AvatarURL:         gravatar.URL(email),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifier.Notify(ctx, acc.Email, token)
	s.metrics.RecordRegistration()
	s.log.Info("account registered", slog.String("uuid", acc.UUID))

	public := acc.Public()
	return &public, nil
}

// Login проверяет пароль, выпускает JWT и сохраняет его как токен текущей сессии.
// Формат email не проверяется: неизвестный адрес любого вида даёт ErrNotFound.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	const op = "account.Login"

	if rawPassword == "" {
		return nil, fmt.Errorf("%s: %w: empty password", op, models.ErrValidation)
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = s.withCPU(ctx, func() error {
		return password.CompareHash(acc.PasswordHash, rawPassword)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		s.metrics.RecordLogin(metrics.LoginBadPassword)
		return nil, fmt.Errorf("%s: %w", op, models.ErrUnauthorized)
	}
	if !acc.Verified {
		s.metrics.RecordLogin(metrics.LoginUnverified)
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotVerified)
	}

	token, err := s.tokens.GenerateToken(jwt.Claims{
		UUID:         acc.UUID,
		Email:        acc.Email,
		Subscription: acc.Subscription,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.Update(ctx, acc.UUID, models.AccountPatch{SessionToken: models.Ptr(token)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, acc.UUID)
	s.metrics.RecordLogin(metrics.LoginSuccess)

	return &LoginResult{Token: token, User: updated.Summary()}, nil
}

// Logout сбрасывает токен сессии. Ранее выданный JWT после этого не принимается.
func (s *Service) Logout(ctx context.Context, acc *models.Account) error {
	const op = "account.Logout"
	if _, err := s.repo.Update(ctx, acc.UUID, models.AccountPatch{SessionToken: models.Ptr("")}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, acc.UUID)
	return nil
}

// Current возвращает краткую проекцию уже аутентифицированной учётной записи.
func (s *Service) Current(acc *models.Account) models.AccountSummary {
	return acc.Summary()
}

// ConfirmVerification подтверждает email по токену. Токен одноразовый.
func (s *Service) ConfirmVerification(ctx context.Context, token string) error {
	const op = "account.ConfirmVerification"
	if token == "" {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	acc, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.MarkVerified(ctx, acc.UUID, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, acc.UUID)
	s.metrics.RecordVerification()
	s.log.Info("email verified", slog.String("uuid", acc.UUID))
	return nil
}

// ResendVerification повторно отправляет письмо с сохранённым токеном верификации.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	const op = "account.ResendVerification"

	if err := s.validateEmail(email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if acc.Verified || acc.VerificationToken == nil {
		return fmt.Errorf("%s: %w", op, models.ErrAlreadyVerified)
	}

	s.notifier.Notify(ctx, acc.Email, *acc.VerificationToken)
	return nil
}

// UpdateAvatar обрабатывает загруженное изображение и сохраняет новый URL аватара.
func (s *Service) UpdateAvatar(ctx context.Context, acc *models.Account, src io.Reader) (string, error) {
	const op = "account.UpdateAvatar"

	var url string
	err := s.withCPU(ctx, func() error {
		var err error
		url, err = s.avatars.Process(ctx, src, acc.UUID)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.Update(ctx, acc.UUID, models.AccountPatch{AvatarURL: models.Ptr(url)}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, acc.UUID)
	s.metrics.RecordAvatarUpload()
	return url, nil
}

// List возвращает публичные проекции всех учётных записей.
func (s *Service) List(ctx context.Context) ([]models.PublicAccount, error) {
	const op = "account.List"
	accounts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]models.PublicAccount, 0, len(accounts))
	for _, acc := range accounts {
		result = append(result, acc.Public())
	}
	return result, nil
}

// Authenticate проверяет bearer-токен и возвращает актуальную учётную запись.
//
// Токен должен быть валидным JWT, учётная запись должна существовать,
// а её текущий токен сессии должен совпадать с предъявленным.
// Во всех этих случаях возвращается ошибка, оборачивающая models.ErrUnauthorized.
// Возвращаемая учётная запись не содержит хэша пароля и токенов.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	const op = "account.Authenticate"

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrUnauthorized, err)
	}

	snap, err := s.findCached(ctx, claims.UUID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w: account is gone", op, models.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !snap.hasSession(token) {
		return nil, fmt.Errorf("%s: %w: session is not active", op, models.ErrUnauthorized)
	}
	return snap.account(), nil
}

func (s *Service) validateEmail(email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email", models.ErrValidation)
	}
	return nil
}

// withCPU выполняет fn, заняв слот пула CPU-задач.
func (s *Service) withCPU(ctx context.Context, fn func() error) error {
	if err := s.cpu.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.cpu.Release(1)
	return fn()
}
