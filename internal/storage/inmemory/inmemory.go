// Package inmemory реализует хранилище учётных записей в памяти процесса
// с теми же гарантиями, что и PostgreSQL: уникальный email и атомарные операции над записью.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Storage хранит учётные записи в памяти процесса.
type Storage struct {
	mu      sync.RWMutex
	byUUID  map[string]*models.Account
	byEmail map[string]string
	byToken map[string]string
	order   []string
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		byUUID:  make(map[string]*models.Account),
		byEmail: make(map[string]string),
		byToken: make(map[string]string),
	}
}

// Insert сохраняет новую учётную запись. Если email занят, возвращает models.ErrConflict.
func (s *Storage) Insert(ctx context.Context, draft models.AccountDraft) (*models.Account, error) {
	const op = "inmemory.Insert"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[draft.Email]; ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrConflict)
	}
	if _, ok := s.byToken[draft.VerificationToken]; ok {
		return nil, fmt.Errorf("%s: duplicate verification token", op)
	}

	acc := &models.Account{
		UUID:              uuid.NewString(),
		Email:             draft.Email,
		PasswordHash:      draft.PasswordHash,
		Subscription:      draft.Subscription,
		VerificationToken: models.Ptr(draft.VerificationToken),
		AvatarURL:         draft.AvatarURL,
		CreatedAt:         time.Now().UTC(),
	}
	s.byUUID[acc.UUID] = acc
	s.byEmail[acc.Email] = acc.UUID
	s.byToken[draft.VerificationToken] = acc.UUID
	s.order = append(s.order, acc.UUID)
	return clone(acc), nil
}

// FindByEmail возвращает учётную запись по точному совпадению email.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "inmemory.FindByEmail"
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(ctx, op, s.byEmail[email])
}

// FindByUUID возвращает учётную запись по идентификатору.
func (s *Storage) FindByUUID(ctx context.Context, uid string) (*models.Account, error) {
	const op = "inmemory.FindByUUID"
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(ctx, op, uid)
}

// FindByVerificationToken возвращает учётную запись по токену подтверждения.
func (s *Storage) FindByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	const op = "inmemory.FindByVerificationToken"
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(ctx, op, s.byToken[token])
}

// ListAll возвращает все учётные записи в порядке создания.
func (s *Storage) ListAll(ctx context.Context) ([]*models.Account, error) {
	const op = "inmemory.ListAll"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Account, 0, len(s.order))
	for _, uid := range s.order {
		result = append(result, clone(s.byUUID[uid]))
	}
	return result, nil
}

// Update применяет частичное обновление атомарно относительно других операций.
func (s *Storage) Update(ctx context.Context, uid string, patch models.AccountPatch) (*models.Account, error) {
	const op = "inmemory.Update"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byUUID[uid]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	next := clone(cur)
	if patch.SessionToken != nil {
		next.SessionToken = nullable(*patch.SessionToken)
	}
	if patch.VerificationToken != nil {
		next.VerificationToken = nullable(*patch.VerificationToken)
	}
	if patch.Verified != nil {
		next.Verified = *patch.Verified
	}
	if patch.AvatarURL != nil {
		next.AvatarURL = *patch.AvatarURL
	}
	if patch.Subscription != nil {
		next.Subscription = *patch.Subscription
	}
	if next.Verified != (next.VerificationToken == nil) {
		return nil, fmt.Errorf("%s: verification state violates invariant", op)
	}
	if next.VerificationToken != nil {
		if owner, ok := s.byToken[*next.VerificationToken]; ok && owner != uid {
			return nil, fmt.Errorf("%s: duplicate verification token", op)
		}
	}

	if cur.VerificationToken != nil {
		delete(s.byToken, *cur.VerificationToken)
	}
	if next.VerificationToken != nil {
		s.byToken[*next.VerificationToken] = uid
	}
	s.byUUID[uid] = next
	return clone(next), nil
}

// MarkVerified подтверждает учётную запись, только если её текущий токен равен token.
func (s *Storage) MarkVerified(ctx context.Context, uid, token string) (*models.Account, error) {
	const op = "inmemory.MarkVerified"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byUUID[uid]
	if !ok || cur.VerificationToken == nil || *cur.VerificationToken != token {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	next := clone(cur)
	next.Verified = true
	next.VerificationToken = nil
	delete(s.byToken, token)
	s.byUUID[uid] = next
	return clone(next), nil
}

func (s *Storage) lookup(ctx context.Context, op, uid string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	acc, ok := s.byUUID[uid]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return clone(acc), nil
}

// clone возвращает копию, чтобы вызывающий не мог изменить запись в обход блокировки.
func clone(acc *models.Account) *models.Account {
	c := *acc
	if acc.SessionToken != nil {
		c.SessionToken = models.Ptr(*acc.SessionToken)
	}
	if acc.VerificationToken != nil {
		c.VerificationToken = models.Ptr(*acc.VerificationToken)
	}
	return &c
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

