package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/Xavier9896/weather-in-your-calendar/internal/location"
	"github.com/Xavier9896/weather-in-your-calendar/internal/metrics"
	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

const (
	DefaultBaseURL = "https://getweather.market.alicloudapi.com"

	endpointNearTerm  = "weather7d"
	endpointLongRange = "weather15d"

	// nearTermDays are covered by the 7-day feed; the long-range feed
	// supplies day 8 through 15.
	nearTermDays  = 7
	longRangeDays = 15
)

// Lundear talks to the aliyun-market "lundear" weather API. The API serves
// two feeds with the same day shape: a 7-day one and a 15-day one keyed
// d1..d15, both authenticated with an APPCODE header.
type Lundear struct {
	appCode string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	loc     *time.Location
	now     func() time.Time
}

func NewLundear(appCode, baseURL string, client *http.Client, loc *time.Location) *Lundear {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Lundear{
		appCode: appCode,
		baseURL: baseURL,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "lundear",
			Timeout: 30 * time.Second,
		}),
		loc: loc,
		now: time.Now,
	}
}

func (l *Lundear) Name() string { return "lundear" }

// FetchForecast retrieves both feeds concurrently and merges them into one
// ordered run of daily forecasts, day 1 being today. Either feed failing
// fails the whole fetch; a ForecastSet is never partially returned.
func (l *Lundear) FetchForecast(ctx context.Context, loc location.Location) (*models.ForecastSet, error) {
	type feed struct {
		endpoint string
		body     []byte
		err      error
	}

	results := make(chan feed, 2)
	for _, ep := range []string{endpointNearTerm, endpointLongRange} {
		go func(endpoint string) {
			body, err := l.fetchFeed(ctx, endpoint, loc)
			results <- feed{endpoint: endpoint, body: body, err: err}
		}(ep)
	}

	var near, long []byte
	for i := 0; i < 2; i++ {
		f := <-results
		if f.err != nil {
			return nil, f.err
		}
		if f.endpoint == endpointNearTerm {
			near = f.body
		} else {
			long = f.body
		}
	}

	today := l.today()
	days := parseFeedDays(near, 1, nearTermDays, today)
	days = append(days, parseFeedDays(long, nearTermDays+1, longRangeDays, today)...)

	city := parseCityInfo(near)
	if city.AreaCn == "" {
		city = parseCityInfo(long)
	}

	return &models.ForecastSet{
		LocationKey: loc.Key(),
		City:        city,
		Days:        days,
		FetchedAt:   l.now().UTC(),
	}, nil
}

// FetchCurrent returns today's entry of the near-term feed.
func (l *Lundear) FetchCurrent(ctx context.Context, loc location.Location) (*models.DailyForecast, error) {
	body, err := l.fetchFeed(ctx, endpointNearTerm, loc)
	if err != nil {
		return nil, err
	}
	today := l.today()
	days := parseFeedDays(body, 1, 1, today)
	if len(days) == 0 {
		return nil, &UpstreamError{Provider: l.Name(), Endpoint: endpointNearTerm, Err: errors.New("no current-day record in payload")}
	}
	d := days[0]
	return &d, nil
}

func (l *Lundear) today() time.Time {
	now := l.now().In(l.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// fetchFeed performs one authenticated GET with bounded retry and a circuit
// breaker. Rate limits and server errors are retried; anything else is
// permanent.
func (l *Lundear) fetchFeed(ctx context.Context, endpoint string, loc location.Location) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/lundear/%s?%s", l.baseURL, endpoint, locationParams(loc).Encode())

	var body []byte
	operation := func() error {
		res, err := l.breaker.Execute(func() (interface{}, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			req.Header.Set("Authorization", "APPCODE "+l.appCode)

			resp, err := l.client.Do(req)
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("fetch %s: %w", endpoint, err))
			}
			defer resp.Body.Close()

			metrics.UpstreamCalls.WithLabelValues(endpoint, fmt.Sprint(resp.StatusCode)).Inc()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return nil, fmt.Errorf("fetch %s: status %d", endpoint, resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return nil, backoff.Permanent(fmt.Errorf("fetch %s: status %d: %s", endpoint, resp.StatusCode, string(b)))
			}

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("read body: %w", err))
			}
			return b, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(err)
			}
			return err
		}
		body = res.([]byte)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, &UpstreamError{Provider: l.Name(), Endpoint: endpoint, Err: err}
	}

	if code := gjson.GetBytes(body, "code"); !code.Exists() || code.Int() != 0 {
		desc := gjson.GetBytes(body, "desc").String()
		if desc == "" {
			desc = "unexpected payload"
		}
		return nil, &UpstreamError{Provider: l.Name(), Endpoint: endpoint, Err: errors.New(desc)}
	}
	return body, nil
}

// locationParams carries all identifier fields, populated per the resolved
// variant, the way the upstream expects them.
func locationParams(loc location.Location) url.Values {
	v := url.Values{}
	v.Set("areaCode", loc.AreaCode)
	v.Set("areaCn", loc.AreaCn)
	v.Set("ip", loc.IP)
	v.Set("lng", loc.Lng)
	v.Set("lat", loc.Lat)
	return v
}
