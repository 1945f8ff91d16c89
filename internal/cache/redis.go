package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mul-meong/backend-feed/internal/config"
	"github.com/mul-meong/backend-feed/internal/domain"
)

const keyPrefix = "feed:view:"

// Client caches composed feed views. Misses and marshal problems read
// as cache misses, never as errors to the caller.
type Client struct {
	cli *redis.Client
	ttl time.Duration
}

func New(cfg *config.Config) (*Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{cli: r, ttl: cfg.Cache.TTL()}, nil
}

func (c *Client) Get(ctx context.Context, feedID string) (*domain.FeedView, error) {
	b, err := c.cli.Get(ctx, keyPrefix+feedID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v domain.FeedView
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, nil
	}
	return &v, nil
}

func (c *Client) Set(ctx context.Context, v *domain.FeedView) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.cli.Set(ctx, keyPrefix+v.FeedID, b, c.ttl).Err()
}

func (c *Client) Invalidate(ctx context.Context, feedID string) error {
	return c.cli.Del(ctx, keyPrefix+feedID).Err()
}

func (c *Client) Close() error {
	return c.cli.Close()
}
