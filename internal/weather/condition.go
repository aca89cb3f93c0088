package weather

import (
	"strings"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

// picCodes maps the upstream weather-pic codes to canonical conditions. The
// upstream uses two-digit codes with an optional d/n day-night prefix, plus
// a few three-digit catch-alls.
var picCodes = map[string]models.Condition{
	"00":  models.ClearDay,
	"01":  models.PartlyCloudy,
	"02":  models.Cloudy,
	"03":  models.ShowerRain,
	"04":  models.Thunderstorm,
	"05":  models.Thunderstorm, // with hail
	"06":  models.Sleet,
	"07":  models.LightRain,
	"08":  models.ModerateRain,
	"09":  models.HeavyRain,
	"10":  models.StormRain,
	"11":  models.StormRain,
	"12":  models.StormRain,
	"13":  models.LightSnow, // snow showers
	"14":  models.LightSnow,
	"15":  models.ModerateSnow,
	"16":  models.HeavySnow,
	"17":  models.StormSnow,
	"18":  models.Fog,
	"19":  models.FreezingRain,
	"20":  models.Sand, // sandstorm
	"21":  models.ModerateRain,
	"22":  models.ModerateRain,
	"23":  models.StormRain,
	"24":  models.StormRain,
	"25":  models.StormRain,
	"26":  models.ModerateSnow,
	"27":  models.ModerateSnow,
	"28":  models.StormSnow,
	"29":  models.Dust,
	"30":  models.Sand,
	"31":  models.Sand, // severe sandstorm
	"53":  models.Haze,
	"301": models.ModerateRain,
	"302": models.ModerateSnow,
}

// ConditionFromPic normalizes an upstream weather-pic code. Unrecognized
// codes map to Unknown rather than failing the fetch.
func ConditionFromPic(pic string) models.Condition {
	code := pic
	night := false
	if strings.HasPrefix(code, "n") {
		night = true
		code = code[1:]
	} else {
		code = strings.TrimPrefix(code, "d")
	}
	cond, ok := picCodes[code]
	if !ok {
		return models.Unknown
	}
	if night && cond == models.ClearDay {
		return models.ClearNight
	}
	return cond
}
