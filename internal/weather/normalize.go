package weather

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

// parseFeedDays extracts day records d<from>..d<to> from a feed payload.
// Day index i is assigned the explicit calendar date today+(i-1), so merging
// the two feeds can never duplicate or skip a date across the seam. Days
// absent from the payload are skipped with a warning.
func parseFeedDays(body []byte, from, to int, today time.Time) []models.DailyForecast {
	var days []models.DailyForecast
	for i := from; i <= to; i++ {
		day := gjson.GetBytes(body, fmt.Sprintf("data.d%d", i))
		if !day.Exists() || !day.IsObject() {
			log.Printf("weather: feed record d%d missing, dropping", i)
			continue
		}
		date := today.AddDate(0, 0, i-1).Format("2006-01-02")
		days = append(days, normalizeDay(day, date))
	}
	return days
}

// normalizeDay converts one provider day record into the canonical form.
// Values arrive as strings or numbers depending on the feed; gjson's Float
// handles both.
func normalizeDay(day gjson.Result, date string) models.DailyForecast {
	d := models.DailyForecast{
		Date:  date,
		Label: day.Get("weather").String(),
	}

	pic := day.Get("day_weather_pic").String()
	if pic == "" {
		pic = day.Get("night_weather_pic").String()
	}
	d.Condition = ConditionFromPic(pic)

	tmax := day.Get("temperature_max")
	tmin := day.Get("temperature_min")
	switch {
	case tmax.Exists() && tmin.Exists():
		d.TempMax, d.TempMin = numeric(tmax), numeric(tmin)
		if d.TempMin > d.TempMax {
			d.TempMin, d.TempMax = d.TempMax, d.TempMin
		}
	case tmax.Exists():
		d.TempMax, d.TempMin = numeric(tmax), numeric(tmax)
	case tmin.Exists():
		d.TempMax, d.TempMin = numeric(tmin), numeric(tmin)
	}
	if avg := day.Get("temperature"); avg.Exists() {
		v := numeric(avg)
		d.TempAvg = &v
	}

	if h := day.Get("humidity"); h.Exists() {
		v := h.Float()
		// Some feeds report a 0-1 fraction; the canonical convention
		// is percent.
		if v > 0 && v <= 1 {
			v *= 100
		}
		d.Humidity = &v
	}
	if p := day.Get("pressure"); p.Exists() {
		v := p.Float()
		d.Pressure = &v
	}
	if w := day.Get("wind_speed"); w.Exists() {
		v := w.Float()
		d.WindSpeed = &v
	}
	if wd := day.Get("wind_direction"); wd.Exists() {
		v := wd.Float()
		d.WindDeg = &v
	}
	if pa := day.Get("precipitation"); pa.Exists() {
		v := pa.Float()
		d.PrecipAmount = &v
	}
	if pp := day.Get("precipitation_probability"); pp.Exists() {
		v := pp.Float()
		if v > 0 && v <= 1 {
			v *= 100
		}
		d.PrecipProb = &v
	}

	d.Sunrise = day.Get("sunrise").String()
	d.Sunset = day.Get("sunset").String()

	return d
}

// numeric reads a value that may arrive as a number or as a string with a
// unit suffix, "11℃" being the common one.
func numeric(r gjson.Result) float64 {
	if r.Type == gjson.String {
		s := strings.TrimFunc(r.Str, func(c rune) bool {
			return c != '-' && c != '.' && (c < '0' || c > '9')
		})
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}
	return r.Float()
}

func parseCityInfo(body []byte) models.CityInfo {
	info := gjson.GetBytes(body, "data.cityInfo")
	return models.CityInfo{
		AreaID:   info.Get("areaId").String(),
		AreaCn:   info.Get("areaCn").String(),
		AreaCode: info.Get("areaCode").String(),
		AreaEn:   info.Get("areaEn").String(),
		CityCn:   info.Get("cityCn").String(),
		ProvCn:   info.Get("provCn").String(),
		NationCn: info.Get("nationCn").String(),
	}
}
