package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
)

type fakeCountsCache struct {
	store map[string][]byte
	dels  []string
}

func newFakeCountsCache() *fakeCountsCache {
	return &fakeCountsCache{store: make(map[string][]byte)}
}

func (f *fakeCountsCache) Get(_ context.Context, key string) *redis.StringCmd {
	if raw, ok := f.store[key]; ok {
		return redis.NewStringResult(string(raw), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCountsCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.store[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCountsCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.dels = append(f.dels, keys...)
	for _, key := range keys {
		delete(f.store, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func seedCountsTickets(repo *fakeTicketRepo) {
	statuses := []struct {
		unitID int64
		status domain.TicketStatus
	}{
		{1, domain.TicketStatusPending},
		{1, domain.TicketStatusInProgress},
		{1, domain.TicketStatusResolved},
		{2, domain.TicketStatusPending},
		{2, domain.TicketStatusClosed},
	}
	for _, s := range statuses {
		repo.tickets[repo.nextID] = &domain.Ticket{ID: repo.nextID, UnitID: s.unitID, Status: s.status}
		repo.nextID++
	}
}

func newStatsServiceForTest(tickets *fakeTicketRepo, cache CountsCache, dispatcher events.Dispatcher) *StatsService {
	return NewStatsService(tickets, cache, dispatcher, zap.NewNop(), time.Minute)
}

func TestCountsAdminGlobal(t *testing.T) {
	repo := newFakeTicketRepo()
	seedCountsTickets(repo)
	svc := newStatsServiceForTest(repo, nil, nil)

	counts, err := svc.CountsForPrincipal(context.Background(), adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts.Total)
	assert.Equal(t, int64(2), counts.Pending)
	assert.Equal(t, int64(1), counts.InProgress)
	assert.Equal(t, int64(1), counts.Resolved)
}

func TestCountsEmployeeScopedToOwnUnit(t *testing.T) {
	repo := newFakeTicketRepo()
	seedCountsTickets(repo)
	svc := newStatsServiceForTest(repo, nil, nil)

	counts, err := svc.CountsForPrincipal(context.Background(), employeePrincipal(1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(1), counts.Pending)
	assert.Equal(t, int64(1), counts.InProgress)
	assert.Equal(t, int64(1), counts.Resolved)
}

func TestCountsEmployeeWithoutUnitGetsZeros(t *testing.T) {
	repo := newFakeTicketRepo()
	seedCountsTickets(repo)
	svc := newStatsServiceForTest(repo, nil, nil)

	principal := domain.Principal{ID: 9, Role: domain.RoleEmployee}
	counts, err := svc.CountsForPrincipal(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, &domain.TicketCounts{}, counts)
}

func TestCountsReadThroughCache(t *testing.T) {
	repo := newFakeTicketRepo()
	seedCountsTickets(repo)
	cache := newFakeCountsCache()
	svc := newStatsServiceForTest(repo, cache, nil)

	counts, err := svc.CountsForPrincipal(context.Background(), adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts.Total)
	assert.Contains(t, cache.store, countsKey(nil))

	// Until invalidated, the cached value is served even after new writes.
	repo.tickets[repo.nextID] = &domain.Ticket{ID: repo.nextID, UnitID: 1, Status: domain.TicketStatusPending}
	repo.nextID++

	counts, err = svc.CountsForPrincipal(context.Background(), adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts.Total)
}

func TestCountsInvalidatedByTicketEvents(t *testing.T) {
	repo := newFakeTicketRepo()
	seedCountsTickets(repo)
	cache := newFakeCountsCache()
	dispatcher := events.NewInMemoryDispatcher()
	svc := newStatsServiceForTest(repo, cache, dispatcher)
	svc.RegisterHandlers()

	_, err := svc.CountsForPrincipal(context.Background(), adminPrincipal())
	require.NoError(t, err)
	_, err = svc.CountsForPrincipal(context.Background(), employeePrincipal(1))
	require.NoError(t, err)
	require.Contains(t, cache.store, countsKey(nil))
	require.Contains(t, cache.store, countsKey(int64Ptr(1)))

	repo.tickets[repo.nextID] = &domain.Ticket{ID: repo.nextID, UnitID: 1, Status: domain.TicketStatusPending}
	repo.nextID++
	err = dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated, TicketID: 99, UnitID: 1})
	require.NoError(t, err)

	assert.Contains(t, cache.dels, countsKey(nil))
	assert.Contains(t, cache.dels, countsKey(int64Ptr(1)))

	counts, err := svc.CountsForPrincipal(context.Background(), adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, int64(6), counts.Total)
}

func TestCountsInvalidationSubscribedToAllTicketEvents(t *testing.T) {
	repo := newFakeTicketRepo()
	cache := newFakeCountsCache()
	dispatcher := events.NewInMemoryDispatcher()
	svc := newStatsServiceForTest(repo, cache, dispatcher)
	svc.RegisterHandlers()

	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketUpdated,
		events.EventTicketStatusChanged,
	} {
		cache.dels = nil
		err := dispatcher.Publish(context.Background(), events.Event{Type: eventType, UnitID: 2})
		require.NoError(t, err)
		assert.Contains(t, cache.dels, countsKey(nil))
		assert.Contains(t, cache.dels, countsKey(int64Ptr(2)))
	}
}
