package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/worker"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	pool := worker.NewPool(2)
	t.Cleanup(pool.Stop)
	h, err := NewHasher(bcrypt.MinCost, pool)
	require.NoError(t, err)
	return h
}

func TestHasherHash(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	t.Run("never equals the raw password", func(t *testing.T) {
		hash, err := h.Hash(ctx, "Passw0rd")
		require.NoError(t, err)
		assert.NotEqual(t, "Passw0rd", hash)
		assert.Equal(t, "$2a$", hash[:4])
	})

	t.Run("same password produces different hashes (salt)", func(t *testing.T) {
		a, err := h.Hash(ctx, "Passw0rd")
		require.NoError(t, err)
		b, err := h.Hash(ctx, "Passw0rd")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("uses configured cost", func(t *testing.T) {
		hash, err := h.Hash(ctx, "Passw0rd")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("rejects empty password as internal", func(t *testing.T) {
		_, err := h.Hash(ctx, "")
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}

func TestHasherVerify(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "Passw0rd")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "Passw0rd", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, wrong := range []string{"passw0rd", "Passw0rd ", "Passw0r", ""} {
		ok, err := h.Verify(ctx, wrong, hash)
		require.NoError(t, err)
		assert.False(t, ok, wrong)
	}

	_, err = h.Verify(ctx, "Passw0rd", "not-a-bcrypt-hash")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestHasherVerifyDummyDoesNotPanic(t *testing.T) {
	h := newTestHasher(t)
	assert.NotPanics(t, func() { h.VerifyDummy(context.Background(), "whatever") })
}

func TestHasherRehash(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	stored, err := h.Hash(ctx, "Passw0rd")
	require.NoError(t, err)

	t.Run("unchanged password keeps stored hash", func(t *testing.T) {
		got, changed, err := h.Rehash(ctx, "Passw0rd", stored)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, stored, got)
	})

	t.Run("new password is hashed", func(t *testing.T) {
		got, changed, err := h.Rehash(ctx, "N3wPassword", stored)
		require.NoError(t, err)
		assert.True(t, changed)
		ok, err := h.Verify(ctx, "N3wPassword", got)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("old cost is upgraded", func(t *testing.T) {
		old, err := bcrypt.GenerateFromPassword([]byte("Passw0rd"), bcrypt.MinCost+1)
		require.NoError(t, err)
		assert.True(t, h.NeedsRehash(string(old)))

		got, changed, err := h.Rehash(ctx, "Passw0rd", string(old))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.False(t, h.NeedsRehash(got))
	})
}

func TestNewHasherClampsCost(t *testing.T) {
	pool := worker.NewPool(1)
	defer pool.Stop()

	h, err := NewHasher(1, pool)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, h.Cost())

	_, err = NewHasher(bcrypt.MinCost, nil)
	assert.Error(t, err)
}
