package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/soporte360/internal/domain"
)

// CachedClassifier memoizes classification results in Redis so repeated
// identical submissions skip the external call. Cache failures degrade to a
// live classification, never to an error.
type CachedClassifier struct {
	inner  Classifier
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClassifier wraps a classifier with a Redis cache. A nil client or
// zero TTL disables caching.
func NewCachedClassifier(inner Classifier, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedClassifier {
	return &CachedClassifier{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *CachedClassifier) Classify(ctx context.Context, titulo, descripcion string) (domain.Classification, error) {
	if c.client == nil || c.ttl <= 0 {
		return c.inner.Classify(ctx, titulo, descripcion)
	}

	key := cacheKey(titulo, descripcion)
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached domain.Classification
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	} else if err != redis.Nil {
		c.logger.Debug("classification cache read failed", zap.Error(err))
	}

	result, err := c.inner.Classify(ctx, titulo, descripcion)
	if err != nil {
		return domain.Classification{}, err
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Debug("classification cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

func cacheKey(titulo, descripcion string) string {
	sum := sha256.Sum256([]byte(titulo + "\n" + descripcion))
	return "clasificacion:" + hex.EncodeToString(sum[:])
}
