package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prepended to every key, e.g. "tradepath:"
}

// Redis is a backend storing each record as a plain string key and the
// journal as a list of JSON entries.
type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to Redis and verifies the connection with PING.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Redis{client: client, prefix: opts.Prefix}, nil
}

func (r *Redis) KV() KV               { return &redisKV{r: r} }
func (r *Redis) Journal() JournalRepo { return &redisJournal{r: r} }
func (r *Redis) Close() error         { return r.client.Close() }

type redisKV struct {
	r *Redis
}

func (k *redisKV) Load(ctx context.Context, key string) ([]byte, error) {
	blob, err := k.r.client.Get(ctx, k.r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return blob, nil
}

func (k *redisKV) Save(ctx context.Context, key string, blob []byte) error {
	if err := k.r.client.Set(ctx, k.r.prefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (k *redisKV) Delete(ctx context.Context, key string) error {
	if err := k.r.client.Del(ctx, k.r.prefix+key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// redisJournalRecord is the JSON shape of one list element.
type redisJournalRecord struct {
	ID        string `json:"id"`
	Sequence  int64  `json:"sequence"`
	Timestamp int64  `json:"ts"`
	Profile   string `json:"profile,omitempty"`
	Kind      string `json:"kind"`
	Subject   string `json:"subject"`
	Value     string `json:"value,omitempty"`
}

type redisJournal struct {
	r *Redis
}

func (j *redisJournal) listKey() string { return j.r.prefix + "journal" }
func (j *redisJournal) seqKey() string  { return j.r.prefix + "journal:seq" }

func (j *redisJournal) Append(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	seqNum, err := j.r.client.Incr(ctx, j.seqKey()).Result()
	if err != nil {
		return JournalEntry{}, fmt.Errorf("next sequence: %w", err)
	}
	entry = stamp(entry, seqNum)

	b, err := json.Marshal(redisJournalRecord{
		ID:        entry.ID,
		Sequence:  entry.Sequence,
		Timestamp: entry.Timestamp.UnixNano(),
		Profile:   entry.Profile,
		Kind:      entry.Kind,
		Subject:   entry.Subject,
		Value:     entry.Value,
	})
	if err != nil {
		return JournalEntry{}, fmt.Errorf("marshal journal entry: %w", err)
	}
	if err := j.r.client.RPush(ctx, j.listKey(), b).Err(); err != nil {
		return JournalEntry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return entry, nil
}

func (j *redisJournal) Query(ctx context.Context, opts QueryOpts) ([]JournalEntry, error) {
	raw, err := j.r.client.LRange(ctx, j.listKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}

	entries := make([]JournalEntry, 0, len(raw))
	for _, item := range raw {
		var rec redisJournalRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			// Skip corrupt elements rather than failing the whole listing.
			continue
		}
		entries = append(entries, JournalEntry{
			ID:        rec.ID,
			Sequence:  rec.Sequence,
			Timestamp: time.Unix(0, rec.Timestamp).UTC(),
			Profile:   rec.Profile,
			Kind:      rec.Kind,
			Subject:   rec.Subject,
			Value:     rec.Value,
		})
	}
	return filterNewestFirst(entries, opts), nil
}
