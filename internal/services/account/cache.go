package account

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

func cacheKey(uid string) string {
	return "account:" + uid
}

func generationKey(uid string) string {
	return "account:" + uid + ":gen"
}

// snapshot кэшируемая проекция учётной записи.
//
// Хэш пароля и токен сессии в Redis не попадают: вместо токена хранится его
// SHA-256, которого достаточно для сравнения. Generation фиксирует поколение
// учётной записи, прочитанное до обращения к хранилищу.
type snapshot struct {
	Generation    int64                   `json:"gen"`
	UUID          string                  `json:"uuid"`
	Email         string                  `json:"email"`
	Subscription  models.SubscriptionTier `json:"subscription"`
	Verified      bool                    `json:"verified"`
	AvatarURL     string                  `json:"avatarURL"`
	CreatedAt     time.Time               `json:"createdAt"`
	SessionDigest string                  `json:"session,omitempty"`
}

func newSnapshot(acc *models.Account, gen int64) snapshot {
	snap := snapshot{
		Generation:   gen,
		UUID:         acc.UUID,
		Email:        acc.Email,
		Subscription: acc.Subscription,
		Verified:     acc.Verified,
		AvatarURL:    acc.AvatarURL,
		CreatedAt:    acc.CreatedAt,
	}
	if acc.SessionToken != nil {
		snap.SessionDigest = sessionDigest(*acc.SessionToken)
	}
	return snap
}

// hasSession сравнивает предъявленный токен с сохранённым дайджестом за постоянное время.
func (s snapshot) hasSession(token string) bool {
	if s.SessionDigest == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.SessionDigest), []byte(sessionDigest(token))) == 1
}

// account восстанавливает учётную запись без хэша пароля и токенов.
func (s snapshot) account() *models.Account {
	return &models.Account{
		UUID:         s.UUID,
		Email:        s.Email,
		Subscription: s.Subscription,
		Verified:     s.Verified,
		AvatarURL:    s.AvatarURL,
		CreatedAt:    s.CreatedAt,
	}
}

func sessionDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// findCached читает учётную запись через кэш. Ошибки кэша не прерывают запрос.
//
// Запись из кэша принимается, только если её поколение совпадает с текущим.
// Поколение читается до обращения к хранилищу, поэтому данные, прочитанные до
// изменения и записанные в кэш после него, уже не совпадут с поколением.
func (s *Service) findCached(ctx context.Context, uid string) (snapshot, error) {
	key := cacheKey(uid)

	gen, err := s.cache.Generation(ctx, generationKey(uid))
	if err != nil {
		s.log.Warn("account cache generation read failed", slog.String("key", key), sl.Err(err))
		acc, err := s.repo.FindByUUID(ctx, uid)
		if err != nil {
			return snapshot{}, err
		}
		return newSnapshot(acc, 0), nil
	}

	var cached snapshot
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("account cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found && cached.Generation == gen {
		return cached, nil
	}

	acc, err := s.repo.FindByUUID(ctx, uid)
	if err != nil {
		return snapshot{}, err
	}
	snap := newSnapshot(acc, gen)
	if err := s.cache.Set(ctx, key, snap, s.cacheTTL); err != nil {
		s.log.Warn("account cache write failed", slog.String("key", key), sl.Err(err))
	}
	return snap, nil
}

// invalidate вызывается после записи в хранилище: сдвигает поколение и удаляет запись.
func (s *Service) invalidate(ctx context.Context, uid string) {
	key := cacheKey(uid)
	if err := s.cache.Bump(ctx, generationKey(uid)); err != nil {
		s.log.Warn("account cache generation bump failed", slog.String("key", key), sl.Err(err))
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("account cache invalidation failed", slog.String("key", key), sl.Err(err))
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Invalidate(context.Context, string) error { return nil }
func (noopCache) Generation(context.Context, string) (int64, error) { return 0, nil }
func (noopCache) Bump(context.Context, string) error { return nil }
