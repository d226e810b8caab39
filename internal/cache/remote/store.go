package remote

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"fpl-cache/internal/config"
	"fpl-cache/internal/interfaces"
	"fpl-cache/internal/metrics"
	"fpl-cache/internal/models"
	"fpl-cache/internal/utils"
)

// scanBatchSize is the COUNT hint passed to SCAN during pattern deletion.
const scanBatchSize = 100

// Ensure Store implements interfaces.RemoteStore
var _ interfaces.RemoteStore = (*Store)(nil)

// Store implements the remote cache tier on Redis. Every transport or codec
// failure is logged and absorbed here; callers only ever see a miss.
type Store struct {
	client       interfaces.RemoteClient
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewStore creates a remote tier Store with the provided client.
func NewStore(cfg *config.RemoteConfig, client interfaces.RemoteClient, logger *zap.Logger) interfaces.RemoteStore {
	return &Store{
		client:       client,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.SendTimeout,
		logger:       logger,
	}
}

// Get retrieves a value from the remote tier, decompressing if the stored
// envelope says to. A failing or corrupt entry is treated as a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Error("Remote cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("remote", "upstream")
		}
		return nil, false
	}

	var envelope models.RemoteEnvelope
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		s.logger.Error("Failed to unmarshal remote cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("remote", "decode")
		s.client.Del(context.Background(), key)
		return nil, false
	}

	// Redis TTL should have removed it already; guard against clock drift.
	if envelope.IsExpired() {
		s.client.Del(context.Background(), key)
		return nil, false
	}

	if envelope.Compressed {
		raw, err := utils.Decompress(envelope.Data)
		if err != nil {
			s.logger.Error("Failed to decompress remote cache entry", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("remote", "decode")
			s.client.Del(context.Background(), key)
			return nil, false
		}
		return raw, true
	}

	return envelope.Data, true
}

// Set stores a value with TTL, compressing when asked. A compression failure
// falls back to storing the uncompressed bytes; the envelope flag records
// which form was stored.
func (s *Store) Set(ctx context.Context, key string, val []byte, ttl time.Duration, compress bool) {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	now := time.Now().Unix()

	envelope := models.RemoteEnvelope{
		Data:      val,
		CreatedAt: now,
		ExpiresAt: now + int64(ttl.Seconds()),
	}

	if compress {
		compressed, err := utils.Compress(val)
		if err != nil {
			s.logger.Warn("Failed to compress remote cache entry, storing raw",
				zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("remote", "compress")
		} else {
			envelope.Data = compressed
			envelope.Compressed = true
		}
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("Failed to marshal remote cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("remote", "encode")
		return
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.Error("Failed to set remote cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("remote", "upstream")
		return
	}
}

// Delete removes one key from the remote tier, best-effort.
func (s *Store) Delete(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("Failed to delete remote cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("remote", "upstream")
		return
	}
}

// DeletePattern removes every key matching pattern via a SCAN/DEL loop and
// returns the number of keys deleted. A mid-scan error ends the loop; keys
// already deleted stay counted.
func (s *Store) DeletePattern(ctx context.Context, pattern string) int {
	deleted := 0
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			s.logger.Error("Remote cache scan error", zap.String("pattern", pattern), zap.Error(err))
			metrics.RecordCacheError("remote", "upstream")
			return deleted
		}

		if len(keys) > 0 {
			count, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				s.logger.Error("Failed to delete scanned keys", zap.String("pattern", pattern), zap.Error(err))
				metrics.RecordCacheError("remote", "upstream")
				return deleted
			}
			deleted += int(count)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return deleted
}

// Info returns the server's INFO output parsed into flat key/value pairs.
func (s *Store) Info(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	raw, err := s.client.Info(ctx, "memory", "clients", "stats").Result()
	if err != nil {
		return nil, err
	}

	info := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, ":"); ok {
			info[k] = v
		}
	}
	return info, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.client.Close()
}
