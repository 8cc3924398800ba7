package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"clinic-backoffice/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotLocked is returned when another booking holds one of the requested slots.
var ErrSlotLocked = errors.New("slot is being booked by another request")

const (
	RedisSlotLockKeyPrefix = "lock:slot:"

	slotUnlockTimeout = 5 * time.Second
)

// acquireSlotsScript sets every key to the token only if none of them exists, so a batch
// either holds all of its slots or none.
//
// KEYS: lock keys, ARGV[1]: token, ARGV[2]: ttl in milliseconds
var acquireSlotsScript = redis.NewScript(`
	for i = 1, #KEYS do
		if redis.call('EXISTS', KEYS[i]) == 1 then
			return 0
		end
	end
	for i = 1, #KEYS do
		redis.call('SET', KEYS[i], ARGV[1], 'PX', ARGV[2])
	end
	return 1
`)

// releaseSlotsScript deletes only the keys still owned by the token.
var releaseSlotsScript = redis.NewScript(`
	local released = 0
	for i = 1, #KEYS do
		if redis.call('GET', KEYS[i]) == ARGV[1] then
			released = released + redis.call('DEL', KEYS[i])
		end
	end
	return released
`)

// SlotRef identifies one doctor's slot.
type SlotRef struct {
	DoctorID int64
	Start    time.Time
}

func (s SlotRef) key() string {
	return fmt.Sprintf("%s%d:%s", RedisSlotLockKeyPrefix, s.DoctorID, entity.SlotKey(s.Start))
}

// SlotLocker guards the critical section of a booking batch.
type SlotLocker interface {
	WithSlotLocks(ctx context.Context, slots []SlotRef, fn func(ctx context.Context) error) error
}

type redisSlotLocker struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

func NewRedisSlotLocker(client *redis.Client, log *logrus.Logger, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

// WithSlotLocks runs fn while holding a lock for every slot. The lock expires after the
// configured ttl, and fn's context is cancelled at the same time.
func (l *redisSlotLocker) WithSlotLocks(ctx context.Context, slots []SlotRef, fn func(ctx context.Context) error) error {
	keys := slotKeys(slots)
	if len(keys) == 0 {
		return fn(ctx)
	}
	token := uuid.NewString()

	acquired, err := acquireSlotsScript.Run(ctx, l.client, keys, token, l.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("acquire slot locks: %w", err)
	}
	if acquired == 0 {
		return ErrSlotLocked
	}

	defer func() {
		// Release even when ctx is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), slotUnlockTimeout)
		defer cancel()
		if err := releaseSlotsScript.Run(releaseCtx, l.client, keys, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warnf("Failed to release slot locks %v: %+v", keys, err)
		}
	}()

	lockedCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockedCtx)
}

// slotKeys returns sorted, de-duplicated lock keys.
func slotKeys(slots []SlotRef) []string {
	seen := make(map[string]struct{}, len(slots))
	keys := make([]string, 0, len(slots))
	for _, s := range slots {
		k := s.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
