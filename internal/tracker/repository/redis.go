package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "tracker:" // tracker:{collection}:{id} -> JSON document
	redisIndexKey  = ":index"   // tracker:{collection}:index -> zset of ids scored by insertion sequence
	redisSeqKey    = ":seq"     // tracker:{collection}:seq -> insertion counter
	redisMaxRetry  = 5
)

// RedisCollection stores each document as a JSON string and keeps insertion
// order in a sorted set.
type RedisCollection[T any, P document[T]] struct {
	client     *redis.Client
	collection string
	notFound   error
}

func NewRedisCollection[T any, P document[T]](client *redis.Client, collection string, notFound error) *RedisCollection[T, P] {
	return &RedisCollection[T, P]{
		client:     client,
		collection: collection,
		notFound:   notFound,
	}
}

func (r *RedisCollection[T, P]) List(ctx context.Context) ([]T, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.collection, err)
	}

	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.collection, err)
	}

	for i, v := range values {
		// index entry without a document: removed between ZRANGE and MGET
		raw, ok := v.(string)
		if !ok {
			continue
		}
		doc, err := r.decode(ids[i], raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (r *RedisCollection[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	data, err := r.client.Get(ctx, r.docKey(id)).Result()
	if err == redis.Nil {
		return nil, r.notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s document: %w", r.collection, err)
	}
	return r.decode(id, data)
}

func (r *RedisCollection[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := prepare[T, P](doc); err != nil {
		return nil, err
	}

	stored := *doc
	id := uuid.New().String()
	P(&stored).SetID(id)

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s document: %w", r.collection, err)
	}

	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %s sequence: %w", r.collection, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.docKey(id), data, 0)
	pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(seq), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create %s document: %w", r.collection, err)
	}

	return &stored, nil
}

func (r *RedisCollection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	var removed *T
	err := r.watch(ctx, id, func(tx *redis.Tx) error {
		doc, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, r.docKey(id))
			pipe.ZRem(ctx, r.indexKey(), id)
			return nil
		})
		if err != nil {
			return err
		}
		removed = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *RedisCollection[T, P]) Update(ctx context.Context, id string, patch Patch[T]) (*T, error) {
	var updated *T
	err := r.watch(ctx, id, func(tx *redis.Tx) error {
		doc, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		patch.Apply(doc)

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal %s document: %w", r.collection, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.docKey(id), data, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// watch runs fn in an optimistic transaction on the document key and retries
// when another client modified it first.
func (r *RedisCollection[T, P]) watch(ctx context.Context, id string, fn func(tx *redis.Tx) error) error {
	for i := 0; i < redisMaxRetry; i++ {
		err := r.client.Watch(ctx, fn, r.docKey(id))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, r.notFound) {
			return fmt.Errorf("failed to write %s document: %w", r.collection, err)
		}
		return err
	}
	return fmt.Errorf("failed to write %s document %s: too much contention", r.collection, id)
}

func (r *RedisCollection[T, P]) load(ctx context.Context, tx *redis.Tx, id string) (*T, error) {
	data, err := tx.Get(ctx, r.docKey(id)).Result()
	if err == redis.Nil {
		return nil, r.notFound
	}
	if err != nil {
		return nil, err
	}
	return r.decode(id, data)
}

func (r *RedisCollection[T, P]) decode(id, data string) (*T, error) {
	var doc T
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s document: %w", r.collection, err)
	}
	P(&doc).SetID(id)
	return &doc, nil
}

func (r *RedisCollection[T, P]) docKey(id string) string {
	return redisKeyPrefix + r.collection + ":" + id
}

func (r *RedisCollection[T, P]) indexKey() string {
	return redisKeyPrefix + r.collection + redisIndexKey
}

func (r *RedisCollection[T, P]) seqKey() string {
	return redisKeyPrefix + r.collection + redisSeqKey
}

// NewRedisStore returns a Store keeping both collections in redis. The store
// owns client and closes it.
func NewRedisStore(client *redis.Client) *Store {
	return NewStore(
		"redis",
		NewRedisCollection[domain.Client](client, ClientsCollection, domain.ErrClientNotFound),
		NewRedisCollection[domain.Project](client, ProjectsCollection, domain.ErrProjectNotFound),
		func(ctx context.Context) error { return client.Ping(ctx).Err() },
		client.Close,
	)
}
