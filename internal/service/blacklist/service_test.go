package blacklist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	blacklistRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/blacklist"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	entries map[int64]*domain.BlacklistEntry
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[int64]*domain.BlacklistEntry)}
}

func (f *fakeRepo) Upsert(_ context.Context, entry *domain.BlacklistEntry) error {
	if f.err != nil {
		return f.err
	}
	entry.AddedAt = time.Now()
	copied := *entry
	f.entries[entry.UserID] = &copied
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, userID int64) error {
	if _, ok := f.entries[userID]; !ok {
		return blacklistRepo.ErrEntryNotFound
	}
	delete(f.entries, userID)
	return nil
}

func (f *fakeRepo) Get(_ context.Context, userID int64) (*domain.BlacklistEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entry, ok := f.entries[userID]
	if !ok {
		return nil, blacklistRepo.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeRepo) List(context.Context) ([]*domain.BlacklistEntry, error) {
	out := make([]*domain.BlacklistEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func TestService_AddRemove(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	banned, err := svc.IsBlacklisted(ctx, 42)
	require.NoError(t, err)
	assert.False(t, banned)

	entry, err := svc.Add(ctx, 42, "  не пришел  ")
	require.NoError(t, err)
	assert.Equal(t, "не пришел", entry.Reason)
	assert.False(t, entry.AddedAt.IsZero())

	// Повторное добавление обновляет причину
	_, err = svc.Add(ctx, 42, "грубость")
	require.NoError(t, err)
	assert.Equal(t, "грубость", repo.entries[42].Reason)

	banned, err = svc.IsBlacklisted(ctx, 42)
	require.NoError(t, err)
	assert.True(t, banned)

	require.NoError(t, svc.Remove(ctx, 42))
	assert.ErrorIs(t, svc.Remove(ctx, 42), ErrNotBlacklisted)
}

func TestService_Errors(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.Add(ctx, 0, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, 42, strings.Repeat("я", domain.MaxBlacklistReason+1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.err = errors.New("connection refused")
	_, err = svc.IsBlacklisted(ctx, 42)
	assert.ErrorIs(t, err, ErrInternal)
}
