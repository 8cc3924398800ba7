package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"clinic-backoffice/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestLocker(t *testing.T) (*miniredis.Miniredis, SlotLocker) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisSlotLocker(client, quietLogger(), 5*time.Second)
}

func slotAt(doctorID int64, hour, minute int) SlotRef {
	return SlotRef{
		DoctorID: doctorID,
		Start:    time.Date(2026, 3, 2, hour, minute, 0, 0, entity.ClinicLocation),
	}
}

func TestWithSlotLocks(t *testing.T) {
	t.Run("runs fn and releases the keys", func(t *testing.T) {
		mr, locker := newTestLocker(t)
		called := false

		err := locker.WithSlotLocks(context.Background(), []SlotRef{slotAt(1, 9, 0), slotAt(1, 9, 30)}, func(ctx context.Context) error {
			called = true
			assert.True(t, mr.Exists("lock:slot:1:2026-03-02 09:00"))
			assert.True(t, mr.Exists("lock:slot:1:2026-03-02 09:30"))
			return nil
		})

		require.NoError(t, err)
		assert.True(t, called)
		assert.Empty(t, mr.Keys())
	})

	t.Run("held slot blocks an overlapping batch", func(t *testing.T) {
		mr, locker := newTestLocker(t)
		require.NoError(t, mr.Set("lock:slot:1:2026-03-02 09:30", "other-token"))

		err := locker.WithSlotLocks(context.Background(), []SlotRef{slotAt(1, 9, 0), slotAt(1, 9, 30)}, func(ctx context.Context) error {
			t.Fatal("fn must not run without the lock")
			return nil
		})

		assert.ErrorIs(t, err, ErrSlotLocked)
		assert.False(t, mr.Exists("lock:slot:1:2026-03-02 09:00"), "no partial acquisition")
		got, _ := mr.Get("lock:slot:1:2026-03-02 09:30")
		assert.Equal(t, "other-token", got)
	})

	t.Run("fn error is returned and locks released", func(t *testing.T) {
		mr, locker := newTestLocker(t)
		boom := errors.New("boom")

		err := locker.WithSlotLocks(context.Background(), []SlotRef{slotAt(2, 10, 0)}, func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Empty(t, mr.Keys())
	})

	t.Run("duplicate slots collapse into one key", func(t *testing.T) {
		assert.Len(t, slotKeys([]SlotRef{slotAt(3, 11, 0), slotAt(3, 11, 0), slotAt(4, 11, 0)}), 2)
	})
}
