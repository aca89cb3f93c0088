package models

import (
	"time"
)

// Condition is the canonical sky-condition state. Provider-specific weather
// codes are normalized to one of these before anything downstream sees them.
type Condition string

const (
	ClearDay     Condition = "CLEAR_DAY"
	ClearNight   Condition = "CLEAR_NIGHT"
	PartlyCloudy Condition = "PARTLY_CLOUDY"
	Cloudy       Condition = "CLOUDY"
	ShowerRain   Condition = "SHOWER_RAIN"
	Thunderstorm Condition = "THUNDERSTORM"
	LightRain    Condition = "LIGHT_RAIN"
	ModerateRain Condition = "MODERATE_RAIN"
	HeavyRain    Condition = "HEAVY_RAIN"
	StormRain    Condition = "STORM_RAIN"
	FreezingRain Condition = "FREEZING_RAIN"
	Sleet        Condition = "SLEET"
	LightSnow    Condition = "LIGHT_SNOW"
	ModerateSnow Condition = "MODERATE_SNOW"
	HeavySnow    Condition = "HEAVY_SNOW"
	StormSnow    Condition = "STORM_SNOW"
	Fog          Condition = "FOG"
	Haze         Condition = "HAZE"
	Dust         Condition = "DUST"
	Sand         Condition = "SAND"
	Wind         Condition = "WIND"
	Unknown      Condition = "UNKNOWN"
)

// DailyForecast is one calendar day of normalized weather. Optional readings
// are pointers so a missing upstream field stays distinguishable from zero.
// The struct round-trips through JSON when persisted in the forecast store.
type DailyForecast struct {
	Date         string    `json:"date"` // YYYY-MM-DD, local calendar day
	Condition    Condition `json:"condition"`
	Label        string    `json:"label,omitempty"` // provider condition text, e.g. 多云转小雨
	TempMin      float64   `json:"temp_min"`
	TempMax      float64   `json:"temp_max"`
	TempAvg      *float64  `json:"temp_avg,omitempty"`
	Humidity     *float64  `json:"humidity,omitempty"` // percent, 0-100
	Pressure     *float64  `json:"pressure,omitempty"` // hPa
	WindSpeed    *float64  `json:"wind_speed,omitempty"` // m/s
	WindDeg      *float64  `json:"wind_deg,omitempty"`   // degrees, 0-359
	PrecipAmount *float64  `json:"precip_amount,omitempty"` // mm
	PrecipProb   *float64  `json:"precip_prob,omitempty"`   // percent
	Sunrise      string    `json:"sunrise,omitempty"` // HH:MM local
	Sunset       string    `json:"sunset,omitempty"`
}

// Day parses the forecast date as a UTC calendar day.
func (d DailyForecast) Day() (time.Time, error) {
	return time.Parse("2006-01-02", d.Date)
}

// CityInfo is the location metadata returned alongside a forecast and
// persisted in the cities table.
type CityInfo struct {
	AreaID   string
	AreaCn   string
	AreaCode string
	AreaEn   string
	CityCn   string
	ProvCn   string
	NationCn string
}

// ForecastSet is one fetch result: an ordered run of daily forecasts for a
// resolved location. Immutable after creation; a refetch replaces the whole
// set rather than mutating it.
type ForecastSet struct {
	LocationKey string
	City        CityInfo
	Days        []DailyForecast
	FetchedAt   time.Time
}
