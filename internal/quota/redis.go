package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript уменьшает счётчик, только если он существует и положителен.
var releaseScript = redis.NewScript(`
local n = redis.call("GET", KEYS[1])
if n and tonumber(n) > 0 then
	return redis.call("DECR", KEYS[1])
end
return 0
`)

// Redis - помесячные счётчики в Redis: ключ <prefix>quota:<owner>:<YYYY-MM>.
// Счётчик живёт до конца месяца плюс сутки запаса.
type Redis struct {
	rdb    *redis.Client
	prefix string
	limit  int64
	now    func() time.Time
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0) и проверяет соединение.
// Если prefix пустой - используется "commentary:".
func NewRedis(ctx context.Context, redisURL, prefix string, limit int64) (*Redis, error) {
	if prefix == "" {
		prefix = "commentary:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("quota: parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("quota: redis ping: %w", err)
	}

	return &Redis{rdb: rdb, prefix: prefix, limit: limit, now: time.Now}, nil
}

func period(at time.Time) string { return at.UTC().Format("2006-01") }

func (r *Redis) key(ownerID, period string) string {
	return r.prefix + "quota:" + ownerID + ":" + period
}

// monthEnd - начало следующего месяца (UTC).
func monthEnd(at time.Time) time.Time {
	y, m, _ := at.UTC().Date()

	return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
}

// AllowNewComment инкрементирует счётчик; при превышении лимита откатывает инкремент.
func (r *Redis) AllowNewComment(ctx context.Context, ownerID string) (Slot, bool, error) {
	now := r.now()
	slot := Slot{OwnerID: ownerID, Period: period(now)}
	key := r.key(ownerID, slot.Period)

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireAt(ctx, key, monthEnd(now).Add(24*time.Hour))

	if _, err := pipe.Exec(ctx); err != nil {
		return Slot{}, false, fmt.Errorf("quota: incr: %w", err)
	}

	if incr.Val() <= r.limit {
		return slot, true, nil
	}

	if err := r.rdb.Decr(ctx, key).Err(); err != nil {
		return Slot{}, false, fmt.Errorf("quota: rollback: %w", err)
	}

	return Slot{}, false, nil
}

// Release возвращает резерв в месяц, в котором он был сделан.
// Счётчик уже истёкшего месяца не воскрешается.
func (r *Redis) Release(ctx context.Context, slot Slot) error {
	if slot.Period == "" {
		return nil
	}

	key := r.key(slot.OwnerID, slot.Period)
	if err := releaseScript.Run(ctx, r.rdb, []string{key}).Err(); err != nil {
		return fmt.Errorf("quota: release: %w", err)
	}

	return nil
}

// Used возвращает число занятых мест в текущем месяце.
func (r *Redis) Used(ctx context.Context, ownerID string) (int64, error) {
	n, err := r.rdb.Get(ctx, r.key(ownerID, period(r.now()))).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("quota: get: %w", err)
	}

	return n, nil
}

// Close закрывает клиент Redis.
func (r *Redis) Close() error { return r.rdb.Close() }
