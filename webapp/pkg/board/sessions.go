package board

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"gobasera/pkg/metrics"
)

// Sessions хранит доску для каждой сессии браузера.
// Время жизни продлевается при каждом обращении.
type Sessions struct {
	client Collaborator
	logger *zap.Logger
	ttl    time.Duration

	mu    sync.Mutex
	cache *gocache.Cache
}

// NewSessions создает хранилище сессий с временем жизни ttl.
func NewSessions(client Collaborator, ttl time.Duration, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sessions{
		client: client,
		logger: logger,
		ttl:    ttl,
		cache:  gocache.New(ttl, ttl/2+time.Second),
	}
	s.cache.OnEvicted(func(id string, _ interface{}) {
		s.logger.Debug("session expired", zap.String("session_id", id))
		metrics.SetActiveSessions(s.cache.ItemCount())
	})
	return s
}

// Get возвращает доску сессии, создавая новую при необходимости.
func (s *Sessions) Get(id string) *Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(id); ok {
		b := v.(*Board)
		s.cache.Set(id, b, s.ttl)
		return b
	}

	b := New(s.client, s.logger.With(zap.String("session_id", id)))
	s.cache.Set(id, b, s.ttl)
	metrics.SetActiveSessions(s.cache.ItemCount())
	return b
}

// Len - число живых сессий.
func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}
