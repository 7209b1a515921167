package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tokenguard/internal/config"
	"tokenguard/internal/k8s"
)

const (
	// DriverMemory keeps the token in process memory.
	DriverMemory = "memory"
	// DriverFile keeps the token in a JSON file.
	DriverFile = "file"
	// DriverRedis keeps the token in Redis.
	DriverRedis = "redis"
	// DriverKubernetes keeps the token in a Kubernetes Secret.
	DriverKubernetes = "kubernetes"
)

// ErrUnknownDriver indicates an unsupported storage driver.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// newK8sClient is swapped in tests
var newK8sClient = func() (k8s.SecretClient, error) {
	return k8s.NewClient()
}

// NewStorageFromDriver constructs the Storage selected by cfg.Driver.
func NewStorageFromDriver(ctx context.Context, cfg config.TokenStoreConfig) (Storage, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case DriverFile:
		if cfg.FilePath == "" {
			return nil, errors.New("storage: file driver needs a file path")
		}
		return NewFileStorage(cfg.FilePath), nil
	case DriverRedis:
		return newRedisFromURL(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case DriverKubernetes:
		c, err := newK8sClient()
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		return NewSecretStorage(c, cfg.Namespace, cfg.SecretName), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

func newRedisFromURL(ctx context.Context, url, prefix string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("storage: failed to reach redis: %w", err)
	}

	return NewRedisStorage(rdb, prefix), nil
}
