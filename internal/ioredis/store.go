// Package ioredis implements the storage hook on Redis. Documents are
// JSON strings under keys of the form gnmodel:doc:<kind>:<id>; a
// missing key maps to store.ErrNotFound.
package ioredis

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmodel/pkg/config"
	"github.com/gnames/gnmodel/pkg/conn"
	"github.com/gnames/gnmodel/pkg/store"
	"github.com/redis/go-redis/v9"
)

// redisStore implements store.Store over a Redis client.
type redisStore struct {
	client *redis.Client
	enc    gnfmt.Encoder
}

// Dial connects to Redis. The address is a redis:// URL as understood
// by redis.ParseURL. Dial is a conn.Dialer.
func Dial(ctx context.Context, address string) (store.Store, error) {
	opts, err := redis.ParseURL(address)
	if err != nil {
		return nil, ConnectionError(address, err)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, ConnectionError(address, err)
	}
	return &redisStore{client: client, enc: gnfmt.GNjson{}}, nil
}

var _ conn.Dialer = Dial

func key(kind, id string) string {
	return fmt.Sprintf("%s:doc:%s:%s", config.AppName, kind, id)
}

func (s *redisStore) Persist(
	ctx context.Context,
	kind, id string,
	fields store.Fields,
) (string, error) {
	if id == "" {
		id = store.NewID()
	}
	data, err := s.enc.Encode(fields)
	if err != nil {
		return "", EncodeError(kind, err)
	}
	err = s.client.Set(ctx, key(kind, id), string(data), 0).Err()
	if err != nil {
		return "", PersistError(kind, id, err)
	}
	return id, nil
}

func (s *redisStore) Lookup(
	ctx context.Context,
	kind, id string,
) (store.Fields, error) {
	data, err := s.client.Get(ctx, key(kind, id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, LookupError(kind, id, err)
	}
	var res store.Fields
	if err = s.enc.Decode([]byte(data), &res); err != nil {
		return nil, DecodeError(kind, id, err)
	}
	return res, nil
}

func (s *redisStore) Delete(
	ctx context.Context,
	kind, id string,
) error {
	if err := s.client.Del(ctx, key(kind, id)).Err(); err != nil {
		return DeleteError(kind, id, err)
	}
	return nil
}

// Close releases the Redis client. Implements store.Closer.
func (s *redisStore) Close(_ context.Context) error {
	return s.client.Close()
}
