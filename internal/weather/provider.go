// Package weather fetches multi-day forecasts from upstream providers,
// normalizes their payloads into models.DailyForecast records, and serves
// them through a two-tier cache (in-memory TTL plus SQLite).
package weather

import (
	"context"
	"fmt"

	"github.com/Xavier9896/weather-in-your-calendar/internal/location"
	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

// Provider is one upstream weather source. Implementations own all
// provider-specific payload quirks; callers only see normalized records.
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, loc location.Location) (*models.ForecastSet, error)
	FetchCurrent(ctx context.Context, loc location.Location) (*models.DailyForecast, error)
}

// Registry is a plain provider lookup built once at startup and passed down
// explicitly. The first registered provider is the default.
type Registry struct {
	providers map[string]Provider
	def       string
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		if r.def == "" {
			r.def = p.Name()
		}
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

func (r *Registry) Default() Provider {
	return r.providers[r.def]
}

// UpstreamError wraps any failure talking to a provider: network errors,
// non-success statuses, and malformed payloads. The message never includes
// the API credential.
type UpstreamError struct {
	Provider string
	Endpoint string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s/%s: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
