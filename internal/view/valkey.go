// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// viewKeyPrefix is the Valkey key prefix for view state.
	viewKeyPrefix = "view:"

	// maxTxRetries bounds optimistic-lock retries in Update.
	maxTxRetries = 10
)

// ValkeyStore keeps views in Valkey as JSON, so several server processes
// can share them.
type ValkeyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyStore creates a store backed by the given Valkey client.
func NewValkeyStore(client *redis.Client, ttl time.Duration) *ValkeyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ValkeyStore{client: client, ttl: ttl}
}

func viewKey(id string) string { return viewKeyPrefix + id }

func (v *ValkeyStore) Create(ctx context.Context, s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	ok, err := v.client.SetNX(ctx, viewKey(s.ID), data, v.ttl).Result()
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	if !ok {
		return fmt.Errorf("create view %s: id already in use", s.ID)
	}
	return nil
}

func (v *ValkeyStore) Get(ctx context.Context, id string) (*State, error) {
	return v.get(ctx, v.client, id)
}

// get reads a view through c, which is either the client or a WATCH
// transaction.
func (v *ValkeyStore) get(ctx context.Context, c redis.Cmdable, id string) (*State, error) {
	data, err := c.Get(ctx, viewKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get view: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode view %s: %w", id, err)
	}
	return &s, nil
}

// Update runs fn inside a WATCH/MULTI transaction on the view key and
// retries when another writer got there first.
func (v *ValkeyStore) Update(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	key := viewKey(id)

	for range maxTxRetries {
		var (
			result *State
			fnErr  error
		)
		err := v.client.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := v.get(ctx, tx, id)
			if err != nil {
				return err
			}
			next := cur.clone()
			if fnErr = fn(next); fnErr != nil {
				result = cur
				return nil
			}
			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("encode view: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, v.ttl)
				return nil
			})
			if err == nil {
				result = next
			}
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, fnErr
	}

	return nil, fmt.Errorf("update view %s: too much contention", id)
}
