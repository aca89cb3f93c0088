package ical

import (
	"math"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

var emoji = map[models.Condition]string{
	models.ClearDay:     "☀️",
	models.ClearNight:   "✨",
	models.PartlyCloudy: "🌤",
	models.Cloudy:       "☁️",
	models.ShowerRain:   "🌦",
	models.Thunderstorm: "⛈",
	models.LightRain:    "🌧",
	models.ModerateRain: "🌧",
	models.HeavyRain:    "🌧",
	models.StormRain:    "⛈",
	models.FreezingRain: "🌧",
	models.Sleet:        "🌨",
	models.LightSnow:    "🌨",
	models.ModerateSnow: "🌨",
	models.HeavySnow:    "🌨",
	models.StormSnow:    "🌨",
	models.Fog:          "🌫",
	models.Haze:         "🌫",
	models.Dust:         "🌫",
	models.Sand:         "🌪",
	models.Wind:         "💨",
}

var label = map[models.Condition]string{
	models.ClearDay:     "晴天",
	models.ClearNight:   "晴夜",
	models.PartlyCloudy: "多云",
	models.Cloudy:       "阴",
	models.ShowerRain:   "阵雨",
	models.Thunderstorm: "雷阵雨",
	models.LightRain:    "小雨",
	models.ModerateRain: "中雨",
	models.HeavyRain:    "大雨",
	models.StormRain:    "暴雨",
	models.FreezingRain: "冻雨",
	models.Sleet:        "雨夹雪",
	models.LightSnow:    "小雪",
	models.ModerateSnow: "中雪",
	models.HeavySnow:    "大雪",
	models.StormSnow:    "暴雪",
	models.Fog:          "雾",
	models.Haze:         "霾",
	models.Dust:         "浮尘",
	models.Sand:         "沙尘",
	models.Wind:         "大风",
}

// ConditionEmoji returns the emoji for a canonical condition, or a shrug for
// anything unmapped.
func ConditionEmoji(c models.Condition) string {
	if e, ok := emoji[c]; ok {
		return e
	}
	return "🤔"
}

// ConditionLabel returns the Chinese label for a canonical condition.
func ConditionLabel(c models.Condition) string {
	if l, ok := label[c]; ok {
		return l
	}
	return "未知天气"
}

var compassNames = []string{"北", "东北", "东", "东南", "南", "西南", "西", "西北"}

var compassArrows = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

// CompassText maps a wind direction in degrees to an 8-point compass label.
func CompassText(deg float64) string {
	return compassNames[compassIndex(deg)] + "风"
}

// CompassArrow maps a wind direction in degrees to an arrow glyph.
func CompassArrow(deg float64) string {
	return compassArrows[compassIndex(deg)]
}

func compassIndex(deg float64) int {
	i := int(math.Round(deg/45)) % 8
	if i < 0 {
		i += 8
	}
	return i
}
