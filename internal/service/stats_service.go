package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// CountsCache is the subset of redis commands the counts cache needs.
// *redis.Client satisfies it.
type CountsCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// StatsService serves dashboard ticket counts, cached in Redis and
// invalidated by ticket events. A missing or unreachable Redis degrades to
// querying Postgres directly.
type StatsService struct {
	tickets    repository.TicketRepository
	cache      CountsCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
}

// NewStatsService constructs the service.
func NewStatsService(tickets repository.TicketRepository, cache CountsCache, dispatcher events.Dispatcher, logger *zap.Logger, ttl time.Duration) *StatsService {
	return &StatsService{
		tickets:    tickets,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
		ttl:        ttl,
	}
}

// RegisterHandlers subscribes cache invalidation to ticket events.
func (s *StatsService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventTicketCreated, s.invalidate)
	s.dispatcher.Subscribe(events.EventTicketUpdated, s.invalidate)
	s.dispatcher.Subscribe(events.EventTicketStatusChanged, s.invalidate)
}

// CountsForPrincipal returns ticket counts scoped to the caller: global for
// admins, own-unit for employees. An employee with no unit gets zeros.
func (s *StatsService) CountsForPrincipal(ctx context.Context, principal domain.Principal) (*domain.TicketCounts, error) {
	var unitID *int64
	if !principal.IsAdmin() {
		if principal.UnitID == nil {
			return &domain.TicketCounts{}, nil
		}
		unitID = principal.UnitID
	}

	key := countsKey(unitID)
	if cached := s.readCache(ctx, key); cached != nil {
		return cached, nil
	}

	counts, err := s.tickets.CountByUnit(ctx, unitID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.writeCache(ctx, key, counts)
	return counts, nil
}

func (s *StatsService) invalidate(ctx context.Context, event events.Event) error {
	if s.cache == nil {
		return nil
	}
	keys := []string{countsKey(nil)}
	if event.UnitID != 0 {
		unitID := event.UnitID
		keys = append(keys, countsKey(&unitID))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
	return nil
}

func (s *StatsService) readCache(ctx context.Context, key string) *domain.TicketCounts {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var counts domain.TicketCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil
	}
	return &counts
}

func (s *StatsService) writeCache(ctx context.Context, key string, counts *domain.TicketCounts) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

func countsKey(unitID *int64) string {
	if unitID == nil {
		return "ticket_counts:global"
	}
	return fmt.Sprintf("ticket_counts:unit:%d", *unitID)
}
