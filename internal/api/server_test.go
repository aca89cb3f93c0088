package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Xavier9896/weather-in-your-calendar/internal/cache"
	"github.com/Xavier9896/weather-in-your-calendar/internal/location"
	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
	"github.com/Xavier9896/weather-in-your-calendar/internal/store"
	"github.com/Xavier9896/weather-in-your-calendar/internal/weather"
)

type stubProvider struct {
	calls int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchForecast(ctx context.Context, loc location.Location) (*models.ForecastSet, error) {
	p.calls++
	today := time.Now().UTC()
	return &models.ForecastSet{
		LocationKey: loc.Key(),
		City:        models.CityInfo{AreaID: "101120101", AreaCn: "济南市", AreaCode: "370100"},
		Days: []models.DailyForecast{
			{Date: today.Format("2006-01-02"), Condition: models.ClearDay, Label: "晴", TempMin: 1, TempMax: 11},
			{Date: today.AddDate(0, 0, 1).Format("2006-01-02"), Condition: models.Cloudy, Label: "阴", TempMin: 2, TempMax: 9},
		},
		FetchedAt: today,
	}, nil
}

func (p *stubProvider) FetchCurrent(ctx context.Context, loc location.Location) (*models.DailyForecast, error) {
	p.calls++
	return &models.DailyForecast{Date: time.Now().UTC().Format("2006-01-02"), Condition: models.ClearDay, Label: "晴"}, nil
}

func setupTestServer(t *testing.T) (*Server, *stubProvider) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db, time.UTC)
	if err := st.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	p := &stubProvider{}
	service := weather.NewService(st, cache.New[*models.ForecastSet](time.Hour), weather.NewRegistry(p), time.UTC)
	return NewServer(service, location.NewResolver(), "0"), p
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestWeatherCalHappyPath(t *testing.T) {
	server, p := setupTestServer(t)

	rec := get(t, server.Handler(), "/weather-cal?city=济南&temperature=minmax")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1", p.calls)
	}

	if got := rec.Header().Get("Content-Type"); got != "text/calendar; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") || !strings.Contains(cd, "%E5%A4%A9%E6%B0%94.ics") {
		t.Errorf("Content-Disposition = %q, want escaped <city>天气.ics attachment", cd)
	}

	body, _ := io.ReadAll(rec.Body)
	cal := string(body)
	if !strings.HasPrefix(cal, "BEGIN:VCALENDAR\r\n") {
		t.Errorf("body is not a calendar:\n%s", cal)
	}
	if got := strings.Count(cal, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("BEGIN:VEVENT count = %d, want 2", got)
	}
	if !strings.Contains(cal, "X-WR-CALNAME:济南市天气\r\n") {
		t.Errorf("calendar name missing upstream city:\n%s", cal)
	}
	if !strings.Contains(cal, "☀️ 晴 1°/11°") {
		t.Errorf("minmax temperature mode not applied:\n%s", cal)
	}
	if !strings.Contains(cal, "LOCATION:济南市\r\n") {
		t.Errorf("LOCATION missing in default show mode")
	}
}

func TestWeatherCalLocationHide(t *testing.T) {
	server, _ := setupTestServer(t)

	rec := get(t, server.Handler(), "/weather-cal?areaCode=370100&location=hide")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "LOCATION:") {
		t.Errorf("LOCATION rendered despite hide mode")
	}
}

func TestWeatherCalMissingIdentifier(t *testing.T) {
	server, p := setupTestServer(t)

	for _, target := range []string{"/weather-cal", "/weather-cal?lat=36.7", "/weather-cal?lng=117.0"} {
		rec := get(t, server.Handler(), target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
		body := rec.Body.String()
		for _, param := range []string{"areaCode", "areaCn", "ip", "lng", "lat"} {
			if !strings.Contains(body, param) {
				t.Errorf("%s: error %q does not name %s", target, body, param)
			}
		}
	}
	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0 for rejected requests", p.calls)
	}
}

func TestWeatherCalInvalidParams(t *testing.T) {
	server, _ := setupTestServer(t)

	tests := []struct {
		target string
		want   string
	}{
		{"/weather-cal?city=济南&temperature=kelvin", "temperature"},
		{"/weather-cal?city=济南&location=maybe", "location"},
		{"/weather-cal?ip=not-an-ip", "IP"},
		{"/weather-cal?lat=91&lng=117.0", "Lat"},
	}
	for _, tt := range tests {
		rec := get(t, server.Handler(), tt.target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("%s: error %q does not mention %s", tt.target, rec.Body.String(), tt.want)
		}
	}
}

func TestWeatherCalUnknownCity(t *testing.T) {
	server, p := setupTestServer(t)

	rec := get(t, server.Handler(), "/weather-cal?city=亚特兰蒂斯")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0 for unknown city", p.calls)
	}
}

func TestCitiesSearch(t *testing.T) {
	server, _ := setupTestServer(t)

	rec := get(t, server.Handler(), "/cities?q=济南")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cities map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &cities); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cities["济南市"] != "370100" {
		t.Errorf("cities = %v, want 济南市 -> 370100", cities)
	}
}

func TestHealth(t *testing.T) {
	server, _ := setupTestServer(t)

	rec := get(t, server.Handler(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestIndex(t *testing.T) {
	server, _ := setupTestServer(t)

	rec := get(t, server.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "日历天气订阅服务") {
		t.Errorf("body = %q", rec.Body.String())
	}

	if rec := get(t, server.Handler(), "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
