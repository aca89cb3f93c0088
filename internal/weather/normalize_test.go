package weather

import (
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

func TestNormalizeDayUnitSuffixes(t *testing.T) {
	day := gjson.Parse(`{
		"weather": "小雨",
		"day_weather_pic": "d07",
		"temperature_max": "11℃",
		"temperature_min": "-2℃",
		"temperature": "4.5℃",
		"humidity": 72,
		"precipitation_probability": 0.8
	}`)

	d := normalizeDay(day, "2026-03-01")
	if d.TempMax != 11 || d.TempMin != -2 {
		t.Errorf("temps = %v/%v, want -2/11 with ℃ stripped", d.TempMin, d.TempMax)
	}
	if d.TempAvg == nil || *d.TempAvg != 4.5 {
		t.Errorf("TempAvg = %v, want 4.5", d.TempAvg)
	}
	if d.Humidity == nil || *d.Humidity != 72 {
		t.Errorf("Humidity = %v, want 72 left as percent", d.Humidity)
	}
	if d.PrecipProb == nil || *d.PrecipProb != 80 {
		t.Errorf("PrecipProb = %v, want fraction scaled to 80", d.PrecipProb)
	}
	if d.Condition != models.LightRain {
		t.Errorf("Condition = %q, want %q", d.Condition, models.LightRain)
	}
}

func TestNormalizeDaySwapsInvertedTemps(t *testing.T) {
	day := gjson.Parse(`{"temperature_max": "3", "temperature_min": "9"}`)
	d := normalizeDay(day, "2026-03-01")
	if d.TempMin != 3 || d.TempMax != 9 {
		t.Errorf("temps = %v/%v, want swapped to 3/9", d.TempMin, d.TempMax)
	}
}

func TestNormalizeDayFallsBackToNightPic(t *testing.T) {
	day := gjson.Parse(`{"weather": "晴", "night_weather_pic": "n00"}`)
	d := normalizeDay(day, "2026-03-01")
	if d.Condition != models.ClearNight {
		t.Errorf("Condition = %q, want %q", d.Condition, models.ClearNight)
	}
}

func TestParseFeedDaysAssignsDates(t *testing.T) {
	body := []byte(`{"code":0,"data":{
		"d1":{"weather":"晴"},
		"d2":{"weather":"阴"},
		"d3":{"weather":"小雨"}
	}}`)
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	days := parseFeedDays(body, 1, 3, today)
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}
	for i, want := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		if days[i].Date != want {
			t.Errorf("days[%d].Date = %q, want %q", i, days[i].Date, want)
		}
	}
}
