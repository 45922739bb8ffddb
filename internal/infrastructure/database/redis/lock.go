package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

var ErrLockNotHeld = errors.New(errors.ErrCodeValidation, "lock not held by this owner")

const defaultJobLockTTL = 5 * time.Minute

var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// JobLock claims analysis jobs so that a request redelivered to another
// worker replica is processed once.
type JobLock struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
}

// NewJobLock builds a lock whose claims expire after ttl (default 5m).
func NewJobLock(client *Client, log logging.Logger, prefix string, ttl time.Duration) *JobLock {
	if ttl <= 0 {
		ttl = defaultJobLockTTL
	}
	return &JobLock{client: client, logger: log, prefix: prefix + "lock:job:", ttl: ttl}
}

// Claim tries to take jobID. ok is false when another owner holds it. The
// returned release must be called once the job finishes.
func (l *JobLock) Claim(ctx context.Context, jobID string) (release func(context.Context) error, ok bool, err error) {
	if l.client.isClosed() {
		return nil, false, ErrClientClosed
	}
	key := l.prefix + jobID
	owner := uuid.NewString()

	ok, err = l.client.rdb.SetNX(ctx, key, owner, l.ttl).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to claim job")
	}
	if !ok {
		return nil, false, nil
	}

	release = func(ctx context.Context) error {
		res, err := unlockScript.Run(ctx, l.client.rdb, []string{key}, owner).Int64()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeCacheError, "failed to release job")
		}
		if res == 0 {
			l.logger.Warn("job lock expired before release", logging.String("job_id", jobID))
			return ErrLockNotHeld
		}
		return nil
	}
	return release, true, nil
}

//Personal.AI order the ending
