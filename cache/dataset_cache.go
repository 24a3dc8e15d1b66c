package dataset_cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/brendanxryan/entitlemate-backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	TTL      = 5 * time.Minute
	RedisKey = "entitlemate:dataset"
)

// ── Fetched sheet rows ───────────────────────────────────────────────────────
// First level is in-process; the optional Redis level lets several server
// instances share one fetch of the sheet.

type entry struct {
	rows      []models.RawRow
	fetchedAt time.Time
}

type Store struct {
	mu    sync.RWMutex
	entry *entry
	ttl   time.Duration
	redis *redis.Client
	now   func() time.Time
}

// New returns a cache. client may be nil.
func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = TTL
	}
	return &Store{ttl: ttl, redis: client, now: time.Now}
}

func (s *Store) Get(ctx context.Context) ([]models.RawRow, bool) {
	s.mu.RLock()
	e := s.entry
	s.mu.RUnlock()
	if e != nil && s.now().Sub(e.fetchedAt) < s.ttl {
		return e.rows, true
	}

	if s.redis == nil {
		return nil, false
	}

	payload, err := s.redis.Get(ctx, RedisKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("[dataset.cache] redis read failed")
		}
		return nil, false
	}

	var rows []models.RawRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		log.Warn().Err(err).Msg("[dataset.cache] discarding unreadable redis entry")
		return nil, false
	}

	// Keep the Redis entry's age so the local copy expires with it.
	fetchedAt := s.now()
	if remaining, err := s.redis.PTTL(ctx, RedisKey).Result(); err == nil && remaining > 0 && remaining < s.ttl {
		fetchedAt = fetchedAt.Add(remaining - s.ttl)
	}

	s.setLocalAt(rows, fetchedAt)
	return rows, true
}

func (s *Store) Set(ctx context.Context, rows []models.RawRow) {
	s.setLocal(rows)

	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		log.Warn().Err(err).Msg("[dataset.cache] failed to encode rows")
		return
	}
	if err := s.redis.Set(ctx, RedisKey, payload, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("[dataset.cache] redis write failed")
	}
}

// ── Invalidate everything (call when the sheet is known to have changed) ─────

func (s *Store) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.entry = nil
	s.mu.Unlock()

	if s.redis != nil {
		if err := s.redis.Del(ctx, RedisKey).Err(); err != nil {
			log.Warn().Err(err).Msg("[dataset.cache] redis delete failed")
		}
	}
}

func (s *Store) setLocal(rows []models.RawRow) {
	s.setLocalAt(rows, s.now())
}

func (s *Store) setLocalAt(rows []models.RawRow, fetchedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = &entry{rows: rows, fetchedAt: fetchedAt}
}
