package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/metrics"
	"github.com/baharkarakas/learnhub-backend/internal/worker"
)

// DefaultCost is the work factor used when none is configured.
const DefaultCost = 12

var ErrEmptyPassword = errors.New("auth: password is empty")

// Hasher hashes and verifies passwords with bcrypt. Every bcrypt call runs
// on the worker pool, never on the goroutine serving the request.
type Hasher struct {
	cost  int
	pool  *worker.Pool
	dummy []byte
}

func NewHasher(cost int, pool *worker.Pool) (*Hasher, error) {
	if pool == nil {
		return nil, errors.New("auth: hasher needs a worker pool")
	}
	switch {
	case cost == 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-account-Passw0rd"), cost)
	if err != nil {
		return nil, err
	}
	return &Hasher{cost: cost, pool: pool, dummy: dummy}, nil
}

func (h *Hasher) Cost() int { return h.cost }

// Hash returns a salted bcrypt hash of raw. Two calls with the same input
// give different outputs.
func (h *Hasher) Hash(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", apperr.Wrap(apperr.KindInternal, ErrEmptyPassword)
	}
	var out []byte
	var herr error
	err := h.run(ctx, "hash", func() {
		out, herr = bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	})
	if err == nil {
		err = herr
	}
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, err)
	}
	return string(out), nil
}

// Verify reports whether raw matches hash. A mismatch is (false, nil); an
// unreadable hash is an Internal error.
func (h *Hasher) Verify(ctx context.Context, raw, hash string) (bool, error) {
	var cerr error
	err := h.run(ctx, "verify", func() {
		cerr = bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	})
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, err)
	}
	switch {
	case cerr == nil:
		return true, nil
	case errors.Is(cerr, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperr.Wrap(apperr.KindInternal, cerr)
	}
}

// VerifyDummy spends the same time as Verify against a real account. The
// login path calls it when the email is unknown.
func (h *Hasher) VerifyDummy(ctx context.Context, raw string) {
	_, _ = h.Verify(ctx, raw, string(h.dummy))
}

// Rehash hashes raw unless it is the password already stored in current,
// in which case current is returned unchanged. An existing hash is never
// fed back into bcrypt.
func (h *Hasher) Rehash(ctx context.Context, raw, current string) (string, bool, error) {
	if current != "" {
		same, err := h.Verify(ctx, raw, current)
		if err != nil {
			return "", false, err
		}
		if same && !h.NeedsRehash(current) {
			return current, false, nil
		}
	}
	hash, err := h.Hash(ctx, raw)
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}

// NeedsRehash is true when hash was made with a different cost.
func (h *Hasher) NeedsRehash(hash string) bool {
	c, err := bcrypt.Cost([]byte(hash))
	return err != nil || c != h.cost
}

func (h *Hasher) run(ctx context.Context, op string, f func()) error {
	return h.pool.Do(ctx, func() {
		start := time.Now()
		f()
		metrics.PasswordHashSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	})
}
