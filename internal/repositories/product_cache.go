package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
)

// ProductCacheRepository caches per-owner product lists in Redis.
type ProductCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached lists
}

// NewProductCacheRepository creates a new repository instance with a TTL.
func NewProductCacheRepository(client *redis.Client, expiration time.Duration) *ProductCacheRepository {
	return &ProductCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func productListKey(ownerEmail string) string {
	return fmt.Sprintf("products:%s", ownerEmail)
}

// Get returns the cached product list for an owner, or nil on a miss.
func (r *ProductCacheRepository) Get(ctx context.Context, ownerEmail string) ([]models.ProductDB, error) {
	key := productListKey(ownerEmail)

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		return nil, err
	}

	var products []models.ProductDB
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result_count", len(products),
		"error", nil,
	)

	return products, nil
}

// Set caches an owner's product list with the configured expiration.
func (r *ProductCacheRepository) Set(ctx context.Context, ownerEmail string, products []models.ProductDB) error {
	key := productListKey(ownerEmail)

	data, err := json.Marshal(products)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result_count", len(products),
		"error", err,
	)

	return err
}

// Invalidate drops the owner's cached list. Called after every mutation so
// stale rows never outlive a write.
func (r *ProductCacheRepository) Invalidate(ctx context.Context, ownerEmail string) error {
	key := productListKey(ownerEmail)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "invalidated",
		"error", err,
	)

	return err
}
