package weather

import (
	"context"
	"log"
	"time"

	"github.com/Xavier9896/weather-in-your-calendar/internal/cache"
	"github.com/Xavier9896/weather-in-your-calendar/internal/location"
	"github.com/Xavier9896/weather-in-your-calendar/internal/metrics"
	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
	"github.com/Xavier9896/weather-in-your-calendar/internal/store"
)

// storeFreshness is how recently today's row must have been fetched for the
// durable tier to count as fresh. Older days already stored are still
// presentable; only today's entry is revalidated.
const storeFreshness = time.Hour

// storeWindow is the date range read back from the durable tier, matching
// the widest span a forecast set can cover.
const storeWindow = 15

// Service resolves a location to a forecast set, consulting the in-memory
// TTL cache, then the durable store, then the upstream provider. Two
// concurrent requests for the same expired key may both refetch; that costs
// a duplicate upstream call, not correctness.
type Service struct {
	store    *store.Store
	cache    *cache.Cache[*models.ForecastSet]
	registry *Registry
	loc      *time.Location
	now      func() time.Time
}

func NewService(st *store.Store, c *cache.Cache[*models.ForecastSet], reg *Registry, loc *time.Location) *Service {
	return &Service{
		store:    st,
		cache:    c,
		registry: reg,
		loc:      loc,
		now:      time.Now,
	}
}

// GetForecast returns the forecast set for a resolved location, fetching
// upstream only when both cache tiers miss.
func (s *Service) GetForecast(ctx context.Context, loc location.Location) (*models.ForecastSet, error) {
	key := loc.Key()

	if set, ok := s.cache.Get(key); ok {
		metrics.CacheHits.WithLabelValues("memory").Inc()
		return set, nil
	}
	metrics.CacheMisses.WithLabelValues("memory").Inc()

	if set, ok := s.fromStore(key); ok {
		metrics.CacheHits.WithLabelValues("store").Inc()
		s.cache.Set(key, set)
		return set, nil
	}
	metrics.CacheMisses.WithLabelValues("store").Inc()

	provider := s.registry.Default()
	log.Printf("weather: fetching %s from %s", key, provider.Name())
	set, err := provider.FetchForecast(ctx, loc)
	if err != nil {
		return nil, err
	}

	// Persistence failures degrade to memory-only caching; the request
	// still succeeds.
	if err := s.store.UpsertCity(key, set.City); err != nil {
		log.Printf("weather: upsert city %s: %v", key, err)
	}
	if err := s.store.UpsertForecasts(key, set.Days, set.FetchedAt); err != nil {
		log.Printf("weather: upsert forecasts %s: %v", key, err)
	}

	s.cache.Set(key, set)
	return set, nil
}

// Current returns today's forecast from the default provider, bypassing the
// durable tier.
func (s *Service) Current(ctx context.Context, loc location.Location) (*models.DailyForecast, error) {
	return s.registry.Default().FetchCurrent(ctx, loc)
}

// fromStore rebuilds a forecast set from the durable tier. It counts as a
// hit only when city metadata exists and today's row was fetched within the
// freshness window.
func (s *Service) fromStore(key string) (*models.ForecastSet, bool) {
	city, err := s.store.GetCity(key)
	if err != nil {
		log.Printf("weather: get city %s: %v", key, err)
		return nil, false
	}
	if city == nil {
		return nil, false
	}

	today := s.today()
	fetchedAt, err := s.store.TodayFetchedAt(key, today)
	if err != nil {
		log.Printf("weather: today fetched-at %s: %v", key, err)
		return nil, false
	}
	if fetchedAt.IsZero() || s.now().Sub(fetchedAt) >= storeFreshness {
		return nil, false
	}

	days, err := s.store.QueryForecasts(key, today.AddDate(0, 0, -storeWindow), today.AddDate(0, 0, storeWindow))
	if err != nil {
		log.Printf("weather: query forecasts %s: %v", key, err)
		return nil, false
	}
	if len(days) == 0 {
		return nil, false
	}

	return &models.ForecastSet{
		LocationKey: key,
		City:        *city,
		Days:        days,
		FetchedAt:   fetchedAt,
	}, true
}

func (s *Service) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
