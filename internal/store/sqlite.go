// Package store is the durable cache tier: city metadata and per-day
// forecast rows in SQLite, keyed by (location, date). It backs the in-memory
// TTL cache across restarts.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

const dateFormat = "2006-01-02"

type Store struct {
	db  *sql.DB
	loc *time.Location
}

func New(db *sql.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}

// UpsertCity stores location metadata under its cache key, overwriting any
// previous row for the same key.
func (s *Store) UpsertCity(locationKey string, c models.CityInfo) error {
	areaID := c.AreaID
	if areaID == "" {
		// Coordinate and IP lookups may come back without an area id;
		// fall back to the cache key so the row stays addressable.
		areaID = locationKey
	}
	_, err := s.db.Exec(`
		INSERT INTO cities (location_key, area_id, area_cn, area_code, area_en, city_cn, prov_cn, nation_cn, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(location_key) DO UPDATE SET
			area_id = excluded.area_id,
			area_cn = excluded.area_cn,
			area_code = excluded.area_code,
			area_en = excluded.area_en,
			city_cn = excluded.city_cn,
			prov_cn = excluded.prov_cn,
			nation_cn = excluded.nation_cn,
			updated_at = excluded.updated_at
	`, locationKey, areaID, c.AreaCn, c.AreaCode, c.AreaEn, c.CityCn, c.ProvCn, c.NationCn, time.Now().UTC())
	return err
}

// GetCity returns the stored metadata for a location key, or nil when none
// has been persisted yet.
func (s *Store) GetCity(locationKey string) (*models.CityInfo, error) {
	row := s.db.QueryRow(`
		SELECT area_id, area_cn, area_code, area_en, city_cn, prov_cn, nation_cn
		FROM cities
		WHERE location_key = ?
	`, locationKey)

	var c models.CityInfo
	err := row.Scan(&c.AreaID, &c.AreaCn, &c.AreaCode, &c.AreaEn, &c.CityCn, &c.ProvCn, &c.NationCn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertForecasts writes one row per day in a single transaction. A repeat
// fetch for the same (location, date) overwrites the payload and refreshes
// the fetch timestamp; duplicate rows cannot occur. Records without a date
// are dropped with a warning rather than aborting the batch.
func (s *Store) UpsertForecasts(locationKey string, days []models.DailyForecast, fetchedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO forecasts (location_key, date, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(location_key, date) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, d := range days {
		if d.Date == "" {
			log.Printf("store: forecast record without date for %s, dropping", locationKey)
			continue
		}
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", d.Date, err)
		}
		if _, err := stmt.Exec(locationKey, d.Date, string(payload), fetchedAt.UTC()); err != nil {
			return fmt.Errorf("upsert %s: %w", d.Date, err)
		}
	}

	return tx.Commit()
}

// QueryForecasts returns the stored days for a location within [start, end],
// ordered by date.
func (s *Store) QueryForecasts(locationKey string, start, end time.Time) ([]models.DailyForecast, error) {
	rows, err := s.db.Query(`
		SELECT payload
		FROM forecasts
		WHERE location_key = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, locationKey, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.DailyForecast
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var d models.DailyForecast
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, fmt.Errorf("unmarshal forecast row: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// TodayFetchedAt returns when the row for the given calendar day was last
// fetched, in the store's timezone. The zero time means no row exists; this
// is the sole staleness signal for the durable tier.
func (s *Store) TodayFetchedAt(locationKey string, today time.Time) (time.Time, error) {
	row := s.db.QueryRow(`
		SELECT fetched_at
		FROM forecasts
		WHERE location_key = ? AND date = ?
	`, locationKey, today.Format(dateFormat))

	var fetchedAt time.Time
	err := row.Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return fetchedAt.In(s.loc), nil
}
