package ical

import (
	"testing"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

func TestConditionFallbacks(t *testing.T) {
	if got := ConditionEmoji(models.Condition("MYSTERY")); got != "🤔" {
		t.Errorf("ConditionEmoji = %q, want shrug fallback", got)
	}
	if got := ConditionLabel(models.Condition("MYSTERY")); got != "未知天气" {
		t.Errorf("ConditionLabel = %q, want 未知天气", got)
	}
}

func TestCompass(t *testing.T) {
	tests := []struct {
		deg   float64
		text  string
		arrow string
	}{
		{0, "北风", "↑"},
		{45, "东北风", "↗"},
		{90, "东风", "→"},
		{180, "南风", "↓"},
		{270, "西风", "←"},
		{359, "北风", "↑"},
		{210, "西南风", "↙"},
	}
	for _, tt := range tests {
		if got := CompassText(tt.deg); got != tt.text {
			t.Errorf("CompassText(%v) = %q, want %q", tt.deg, got, tt.text)
		}
		if got := CompassArrow(tt.deg); got != tt.arrow {
			t.Errorf("CompassArrow(%v) = %q, want %q", tt.deg, got, tt.arrow)
		}
	}
}
