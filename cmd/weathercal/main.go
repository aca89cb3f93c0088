package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/Xavier9896/weather-in-your-calendar/internal/api"
	"github.com/Xavier9896/weather-in-your-calendar/internal/cache"
	"github.com/Xavier9896/weather-in-your-calendar/internal/httputil"
	"github.com/Xavier9896/weather-in-your-calendar/internal/location"
	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
	"github.com/Xavier9896/weather-in-your-calendar/internal/store"
	"github.com/Xavier9896/weather-in-your-calendar/internal/weather"
)

type cli struct {
	EnvFile kongdotenv.ENVFileConfig `kong:"optional,name=env-file,help='Optional .env file with configuration.'"`

	Port            string        `kong:"default='8080',env=PORT,help='HTTP server port.'"`
	DB              string        `kong:"default='data/weathercal.db',env=DB_PATH,help='Path to SQLite database.'"`
	AppCode         string        `kong:"required,env=APP_CODE,help='APPCODE credential for the upstream weather API.'"`
	BaseURL         string        `kong:"default='${base_url}',env=WEATHER_BASE_URL,help='Upstream weather API base URL.'"`
	CacheTTL        time.Duration `kong:"default='1h',env=CACHE_TTL,help='In-memory forecast cache TTL.'"`
	UpstreamTimeout time.Duration `kong:"default='10s',env=UPSTREAM_TIMEOUT,help='HTTP timeout for upstream API calls.'"`
	Timezone        string        `kong:"default='Asia/Shanghai',env=TIMEZONE,help='Timezone used for forecast dates.'"`
}

func main() {
	var flags cli
	kong.Parse(&flags,
		kong.Name("weathercal"),
		kong.Description("Weather forecast calendar subscription service."),
		kong.Vars{"base_url": weather.DefaultBaseURL},
	)

	db, err := sql.Open("sqlite", flags.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	// Load timezone once at startup
	loc, err := time.LoadLocation(flags.Timezone)
	if err != nil {
		log.Printf("Warning: could not load %s timezone, using UTC: %v", flags.Timezone, err)
		loc = time.UTC
	}

	st := store.New(db, loc)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	client := httputil.NewClient(flags.UpstreamTimeout)
	lundear := weather.NewLundear(flags.AppCode, flags.BaseURL, client, loc)
	registry := weather.NewRegistry(lundear)

	forecasts := cache.New[*models.ForecastSet](flags.CacheTTL)
	service := weather.NewService(st, forecasts, registry, loc)
	resolver := location.NewResolver()

	server := api.NewServer(service, resolver, flags.Port)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("listening on :%s", flags.Port)
	if err := server.Run(runCtx); err != nil {
		log.Fatalf("server: %v", err)
	}
	log.Println("shutdown complete")
}
