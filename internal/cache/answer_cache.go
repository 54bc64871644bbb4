package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

const answerKeyPrefix = "rag:answer:"

// AnswerCache keeps composed answers keyed by query so that repeated
// questions skip retrieval and the model call. Entries expire by TTL and
// are flushed whenever a new document is ingested, since any cached answer
// may be stale once the corpus changes.
type AnswerCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redisv9.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnswerCache{client: client, ttl: ttl}
}

func (c *AnswerCache) Get(ctx context.Context, query string) (string, bool, error) {
	answer, err := c.client.Get(ctx, answerKey(query)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get answer failed: %w", err)
	}
	return answer, true, nil
}

func (c *AnswerCache) Set(ctx context.Context, query, answer string) error {
	if err := c.client.Set(ctx, answerKey(query), answer, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set answer failed: %w", err)
	}
	return nil
}

// Flush removes every cached answer.
func (c *AnswerCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, answerKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis delete answer failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan answers failed: %w", err)
	}
	return nil
}

func answerKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return answerKeyPrefix + hex.EncodeToString(sum[:])
}
