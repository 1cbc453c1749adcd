package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-identity/internal/models"
)

func draft(email, token string) models.AccountDraft {
	return models.AccountDraft{
		Email:             email,
		PasswordHash:      "$2a$10$hash",
		Subscription:      models.TierStarter,
		VerificationToken: token,
		AvatarURL:         "//www.gravatar.com/avatar/x",
	}
}

func TestStorage_InsertAndFind(t *testing.T) {
	s := New()
	ctx := context.Background()

	acc, err := s.Insert(ctx, draft("a@x.com", "token-a"))
	require.NoError(t, err)
	assert.NotEmpty(t, acc.UUID)
	assert.False(t, acc.Verified)
	require.NotNil(t, acc.VerificationToken)

	byEmail, err := s.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, acc.UUID, byEmail.UUID)

	byToken, err := s.FindByVerificationToken(ctx, "token-a")
	require.NoError(t, err)
	assert.Equal(t, acc.UUID, byToken.UUID)

	_, err = s.FindByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.FindByUUID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_ReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	acc, err := s.Insert(ctx, draft("a@x.com", "token-a"))
	require.NoError(t, err)
	*acc.VerificationToken = "mutated"
	acc.AvatarURL = "mutated"

	stored, err := s.FindByUUID(ctx, acc.UUID)
	require.NoError(t, err)
	assert.Equal(t, "token-a", *stored.VerificationToken)
	assert.NotEqual(t, "mutated", stored.AvatarURL)
}

func TestStorage_ConcurrentInsertSameEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Insert(ctx, draft("race@x.com", fmt.Sprintf("token-%d", i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, models.ErrConflict)
	}
	assert.Equal(t, 1, ok)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStorage_UpdateAndInvariant(t *testing.T) {
	s := New()
	ctx := context.Background()

	acc, err := s.Insert(ctx, draft("u@x.com", "token-u"))
	require.NoError(t, err)

	updated, err := s.Update(ctx, acc.UUID, models.AccountPatch{SessionToken: models.Ptr("session")})
	require.NoError(t, err)
	assert.True(t, updated.HasSession("session"))

	cleared, err := s.Update(ctx, acc.UUID, models.AccountPatch{SessionToken: models.Ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.SessionToken)

	_, err = s.Update(ctx, acc.UUID, models.AccountPatch{Verified: models.Ptr(true)})
	assert.Error(t, err, "verified without clearing the token must be rejected")

	_, err = s.Update(ctx, "missing", models.AccountPatch{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_MarkVerifiedIsSingleUse(t *testing.T) {
	s := New()
	ctx := context.Background()

	acc, err := s.Insert(ctx, draft("v@x.com", "token-v"))
	require.NoError(t, err)

	verified, err := s.MarkVerified(ctx, acc.UUID, "token-v")
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Nil(t, verified.VerificationToken)

	_, err = s.MarkVerified(ctx, acc.UUID, "token-v")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.FindByVerificationToken(ctx, "token-v")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_CanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Insert(ctx, draft("a@x.com", "t"))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
