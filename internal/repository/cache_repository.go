package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/models"
	appErrors "github.com/mnadhif/student-records-api/pkg/errors"
)

const studentListKey = "students:list"

// CacheRepository caches the full student list in Redis. Every mutation
// invalidates the key so the list endpoint always reflects storage.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository. A nil client disables
// caching; every method degrades to a miss or a no-op.
func NewCacheRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, ttl: ttl, logger: logger}
}

// GetList returns the cached student list or ErrCacheMiss.
func (r *CacheRepository) GetList(ctx context.Context) ([]models.Student, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, studentListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", studentListKey, err)
	}

	var students []models.Student
	if err := json.Unmarshal(raw, &students); err != nil {
		return nil, fmt.Errorf("unmarshal cached student list: %w", err)
	}
	return students, nil
}

// SetList stores the student list with the configured TTL.
func (r *CacheRepository) SetList(ctx context.Context, students []models.Student) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("marshal student list: %w", err)
	}

	if err := r.client.Set(ctx, studentListKey, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", studentListKey, err)
	}
	return nil
}

// Invalidate drops the cached list.
func (r *CacheRepository) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, studentListKey).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", studentListKey, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
