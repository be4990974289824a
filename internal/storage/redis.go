package storage

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis leaderboard.
type RedisConfig struct {
	URL    string
	Prefix string // Key namespace, "tetris" by default
	TopN   int
}

// DefaultRedisConfig returns a config for a local Redis.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:    "redis://localhost:6379/0",
		Prefix: "tetris",
		TopN:   DefaultTopN,
	}
}

// RedisStore keeps the table in a sorted set of entry ids plus one hash
// per entry.
//
// Members are encoded so that, among equal scores, newer entries sort
// lower: ZREVRANGE then lists older entries first and ZREMRANGEBYRANK
// evicts the newest tie, matching the other backends.
type RedisStore struct {
	client *redis.Client
	cfg    RedisConfig
}

var _ ScoreStore = (*RedisStore)(nil)

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis: %w", err)
	}

	return NewRedisWithClient(client, cfg), nil
}

// NewRedisWithClient wraps an existing client (for testing).
func NewRedisWithClient(client *redis.Client, cfg RedisConfig) *RedisStore {
	if cfg.Prefix == "" {
		cfg.Prefix = "tetris"
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	return &RedisStore{client: client, cfg: cfg}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) scoresKey() string {
	return s.cfg.Prefix + ":scores"
}

func (s *RedisStore) seqKey() string {
	return s.cfg.Prefix + ":score:seq"
}

func (s *RedisStore) entryKey(id int64) string {
	return s.cfg.Prefix + ":score:" + strconv.FormatInt(id, 10)
}

func member(id int64) string {
	return fmt.Sprintf("%019d", math.MaxInt64-id)
}

func memberID(m string) (int64, error) {
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, err
	}
	return math.MaxInt64 - n, nil
}

// Load returns the top entries ordered by score descending.
func (s *RedisStore) Load(ctx context.Context) ([]Entry, error) {
	members, err := s.client.ZRevRange(ctx, s.scoresKey(), 0, int64(s.cfg.TopN-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, 0, len(members))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range members {
			id, err := memberID(m)
			if err != nil {
				return fmt.Errorf("storage: malformed member %q: %w", m, err)
			}
			cmds = append(cmds, pipe.HGetAll(ctx, s.entryKey(id)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load entries: %w", err)
	}

	entries := make([]Entry, 0, len(cmds))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		e := Entry{
			Name:  fields["name"],
			Score: coerceInt(fields["score"]),
			Lines: coerceInt(fields["lines"]),
			Level: coerceInt(fields["level"]),
		}
		if ts, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
			e.CreatedAt = time.Unix(ts, 0)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Add stores an entry, evicts everything past the top N and returns the table.
func (s *RedisStore) Add(ctx context.Context, e Entry) ([]Entry, error) {
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot allocate id: %w", err)
	}

	now := time.Now()
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.entryKey(id), map[string]any{
		"name":       NormalizeName(e.Name),
		"score":      e.Score,
		"lines":      e.Lines,
		"level":      e.Level,
		"created_at": now.Unix(),
	})
	pipe.ZAdd(ctx, s.scoresKey(), redis.Z{Score: float64(e.Score), Member: member(id)})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := s.trim(ctx); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// trim removes sorted-set members and hashes below the top N.
func (s *RedisStore) trim(ctx context.Context) error {
	stop := int64(-(s.cfg.TopN + 1))
	evicted, err := s.client.ZRange(ctx, s.scoresKey(), 0, stop).Result()
	if err != nil {
		return fmt.Errorf("storage: cannot find evicted scores: %w", err)
	}
	if len(evicted) == 0 {
		return nil
	}

	keys := make([]string, 0, len(evicted))
	for _, m := range evicted {
		if id, err := memberID(m); err == nil {
			keys = append(keys, s.entryKey(id))
		}
	}

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByRank(ctx, s.scoresKey(), 0, stop)
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: cannot trim scores: %w", err)
	}
	return nil
}

// Stats returns the entry count and best score.
func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	var count *redis.IntCmd
	var best *redis.ZSliceCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.ZCard(ctx, s.scoresKey())
		best = pipe.ZRevRangeWithScores(ctx, s.scoresKey(), 0, 0)
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	st := Stats{Count: int(count.Val())}
	if top := best.Val(); len(top) > 0 {
		st.Best = int(top[0].Score)
	}
	return st, nil
}
