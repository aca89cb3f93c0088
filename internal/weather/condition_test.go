package weather

import (
	"testing"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

func TestConditionFromPic(t *testing.T) {
	tests := []struct {
		pic  string
		want models.Condition
	}{
		{"00", models.ClearDay},
		{"d00", models.ClearDay},
		{"n00", models.ClearNight},
		{"d01", models.PartlyCloudy},
		{"n02", models.Cloudy},
		{"03", models.ShowerRain},
		{"04", models.Thunderstorm},
		{"07", models.LightRain},
		{"d09", models.HeavyRain},
		{"10", models.StormRain},
		{"n13", models.LightSnow},
		{"17", models.StormSnow},
		{"18", models.Fog},
		{"19", models.FreezingRain},
		{"29", models.Dust},
		{"30", models.Sand},
		{"53", models.Haze},
		{"301", models.ModerateRain},
		{"302", models.ModerateSnow},

		// Night prefix only flips the clear-sky code.
		{"n07", models.LightRain},

		{"", models.Unknown},
		{"99", models.Unknown},
		{"d99", models.Unknown},
		{"bogus", models.Unknown},
	}

	for _, tt := range tests {
		if got := ConditionFromPic(tt.pic); got != tt.want {
			t.Errorf("ConditionFromPic(%q) = %q, want %q", tt.pic, got, tt.want)
		}
	}
}
