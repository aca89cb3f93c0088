// Package api exposes the HTTP surface: the calendar feed itself, the city
// discovery endpoint, health, and metrics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Xavier9896/weather-in-your-calendar/internal/ical"
	"github.com/Xavier9896/weather-in-your-calendar/internal/location"
	"github.com/Xavier9896/weather-in-your-calendar/internal/metrics"
	"github.com/Xavier9896/weather-in-your-calendar/internal/weather"
)

var validate = validator.New()

type Server struct {
	service  *weather.Service
	resolver *location.Resolver
	port     string
}

func NewServer(service *weather.Service, resolver *location.Resolver, port string) *Server {
	return &Server{
		service:  service,
		resolver: resolver,
		port:     port,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/weather-cal", s.handleWeatherCal)
	mux.HandleFunc("/cities", s.handleCities)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "欢迎使用日历天气订阅服务")
}

// calendarQuery holds the /weather-cal parameters. One location identifier
// is required; temperature and location control rendering.
type calendarQuery struct {
	AreaCode    string `validate:"omitempty,numeric"`
	AreaCn      string
	IP          string `validate:"omitempty,ip"`
	Lat         string `validate:"omitempty,latitude"`
	Lng         string `validate:"omitempty,longitude"`
	Temperature string `validate:"oneof=day minmax"`
	Location    string `validate:"oneof=show hide"`
}

func parseCalendarQuery(r *http.Request) (calendarQuery, error) {
	qs := r.URL.Query()
	q := calendarQuery{
		AreaCode:    qs.Get("areaCode"),
		AreaCn:      qs.Get("areaCn"),
		IP:          qs.Get("ip"),
		Lat:         qs.Get("lat"),
		Lng:         qs.Get("lng"),
		Temperature: qs.Get("temperature"),
		Location:    qs.Get("location"),
	}
	if q.AreaCn == "" {
		q.AreaCn = qs.Get("city")
	}
	if q.Temperature == "" {
		q.Temperature = "day"
	}
	if q.Location == "" {
		q.Location = "show"
	}

	if q.AreaCode == "" && q.AreaCn == "" && q.IP == "" && (q.Lat == "" || q.Lng == "") {
		return q, errors.New("必须提供 areaCode、areaCn、ip 中的任意一个，或者同时提供 lng 和 lat")
	}
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Temperature":
				return q, errors.New("参数错误：temperature 只能是 day 或 minmax")
			case "Location":
				return q, errors.New("参数错误：location 只能是 show 或 hide")
			default:
				return q, fmt.Errorf("参数错误：%s", verrs[0].Field())
			}
		}
		return q, err
	}
	return q, nil
}

func (s *Server) handleWeatherCal(w http.ResponseWriter, r *http.Request) {
	q, err := parseCalendarQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loc, err := s.resolver.Resolve(location.Query{
		AreaCode: q.AreaCode,
		AreaCn:   q.AreaCn,
		IP:       q.IP,
		Lat:      q.Lat,
		Lng:      q.Lng,
	})
	if err != nil {
		var unknown *location.UnknownCityError
		if errors.As(err, &unknown) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	set, err := s.service.GetForecast(r.Context(), loc)
	if err != nil {
		log.Printf("api: get forecast %s: %v", loc.Key(), err)
		http.Error(w, "服务器错误: 获取天气数据失败", http.StatusInternalServerError)
		return
	}

	city := set.City.AreaCn
	if city == "" {
		city = loc.Describe()
	}

	body, err := ical.Render(city, set.Days, ical.Options{
		Temperature: ical.TempMode(q.Temperature),
		Location:    ical.LocationMode(q.Location),
	})
	if err != nil {
		// The fetcher guarantees ordered unique dates, so this is a
		// programming error worth the full context.
		log.Printf("api: render %s days=%d: %v", loc.Key(), len(set.Days), err)
		http.Error(w, "服务器错误: 生成日历失败", http.StatusInternalServerError)
		return
	}
	metrics.CalendarsRendered.Inc()

	filename := url.PathEscape(city + "天气.ics")
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+filename)
	w.Write([]byte(body))
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities := s.resolver.Search(r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(cities); err != nil {
		log.Printf("api: write cities response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
