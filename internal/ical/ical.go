// Package ical renders a list of daily forecasts as an RFC-5545 calendar:
// one all-day VEVENT per day, CRLF line endings, escaped text values.
// Rendering is deterministic: the same input and options always produce the
// same bytes, so calendar clients see updates rather than duplicate events.
package ical

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Xavier9896/weather-in-your-calendar/internal/models"
)

const (
	prodID       = "-//weather-calendar//v1.0//CN"
	uidNamespace = "weather-calendar"
	eventURL     = "weather.rss-calendar.cn"
	attribution  = "数据来源: 天气日历订阅服务"
)

// TempMode controls how the temperature appears in event summaries.
type TempMode string

const (
	TempDay    TempMode = "day"    // rounded single value
	TempMinMax TempMode = "minmax" // min°/max°
)

// LocationMode controls whether events carry a LOCATION property.
type LocationMode string

const (
	LocationShow LocationMode = "show"
	LocationHide LocationMode = "hide"
)

type Options struct {
	Temperature TempMode
	Location    LocationMode
	// Now supplies the DTSTAMP clock; defaults to time.Now. Tests inject
	// a fixed clock to compare output byte for byte.
	Now func() time.Time
}

// RenderError signals structurally invalid input: out-of-order or duplicate
// dates, or an unparsable date. Well-formed input never fails.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return "ical: " + e.Reason
}

// Render produces the calendar document for city's forecast days, in input
// order. Dates must be strictly increasing and parseable.
func Render(city string, days []models.DailyForecast, opts Options) (string, error) {
	if opts.Temperature == "" {
		opts.Temperature = TempDay
	}
	if opts.Location == "" {
		opts.Location = LocationShow
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	dates := make([]time.Time, len(days))
	for i, d := range days {
		day, err := d.Day()
		if err != nil {
			return "", &RenderError{Reason: fmt.Sprintf("unparsable date %q", d.Date)}
		}
		if i > 0 && !day.After(dates[i-1]) {
			return "", &RenderError{Reason: fmt.Sprintf("dates not strictly increasing at %q", d.Date)}
		}
		dates[i] = day
	}

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+prodID)
	writeLine(&b, "X-WR-CALNAME:"+escapeText(city+"天气"))
	writeLine(&b, "CALSCALE:GREGORIAN")

	stamp := now().UTC().Format("20060102T150405") + "Z"
	for i, d := range days {
		writeEvent(&b, d, dates[i], city, stamp, opts)
	}

	b.WriteString("END:VCALENDAR")
	return b.String(), nil
}

func writeEvent(b *strings.Builder, d models.DailyForecast, day time.Time, city, stamp string, opts Options) {
	start := day.Format("20060102")
	end := day.AddDate(0, 0, 1).Format("20060102")

	writeLine(b, "BEGIN:VEVENT")
	writeLine(b, "SUMMARY;LANGUAGE=zh-CN:"+escapeText(summary(d, opts.Temperature)))
	writeLine(b, "X-FUNAMBOL-ALLDAY:1")
	writeLine(b, fmt.Sprintf("UID:%s@%s", start, uidNamespace))
	writeLine(b, "DTSTAMP:"+stamp)
	writeLine(b, "DTSTART;VALUE=DATE:"+start)
	writeLine(b, "URL;VALUE=URI:"+eventURL)
	writeLine(b, "DTEND;VALUE=DATE:"+end)
	writeLine(b, "X-MICROSOFT-CDO-ALLDAYEVENT:TRUE")
	if opts.Location == LocationShow {
		writeLine(b, "LOCATION:"+escapeText(city))
	}
	writeLine(b, "DESCRIPTION;LANGUAGE=zh-CN:"+escapeText(description(d)))
	writeLine(b, "END:VEVENT")
}

// summary is "<emoji> <label> <temp>", e.g. "🌤 多云 3°/12°".
func summary(d models.DailyForecast, mode TempMode) string {
	label := d.Label
	if label == "" {
		label = ConditionLabel(d.Condition)
	}
	return fmt.Sprintf("%s %s %s", ConditionEmoji(d.Condition), label, displayTemp(d, mode))
}

func displayTemp(d models.DailyForecast, mode TempMode) string {
	if mode == TempDay {
		if d.TempAvg != nil {
			return fmt.Sprintf("%d°", int(math.Round(*d.TempAvg)))
		}
		return fmt.Sprintf("%d°", int(math.Round((d.TempMin+d.TempMax)/2)))
	}
	return fmt.Sprintf("%d°/%d°", int(math.Round(d.TempMin)), int(math.Round(d.TempMax)))
}

// description builds the multi-line event body. Lines with no data are
// omitted; the attribution line is always last.
func description(d models.DailyForecast) string {
	label := d.Label
	if label == "" {
		label = ConditionLabel(d.Condition)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s", ConditionEmoji(d.Condition), label), "")

	if d.Sunrise != "" && d.Sunset != "" {
		lines = append(lines, fmt.Sprintf("🌅 日出 %s 日落 %s", d.Sunrise, d.Sunset), "")
	}
	if d.Pressure != nil {
		lines = append(lines, fmt.Sprintf("⚡️ 气压 %.0f 百帕", *d.Pressure), "")
	}
	if d.Humidity != nil {
		lines = append(lines, fmt.Sprintf("💧 湿度 %.0f%%", *d.Humidity), "")
	}
	if d.WindSpeed != nil {
		wind := fmt.Sprintf("💨 风速最高 %.1f 米/秒", *d.WindSpeed)
		if d.WindDeg != nil {
			wind += fmt.Sprintf("\n🚩 风向 %s %s", CompassText(*d.WindDeg), CompassArrow(*d.WindDeg))
		}
		lines = append(lines, wind, "")
	}
	lines = append(lines, fmt.Sprintf("🌡 温度: %d° ~ %d°", int(math.Round(d.TempMin)), int(math.Round(d.TempMax))), "")
	if d.PrecipAmount != nil {
		precip := fmt.Sprintf("☔️ 降水量: %.1f毫米", *d.PrecipAmount)
		if d.PrecipProb != nil {
			precip += fmt.Sprintf(" (%.0f%%)", *d.PrecipProb)
		}
		lines = append(lines, precip, "")
	}
	lines = append(lines, attribution)

	return strings.Join(lines, "\n")
}

// escapeText applies the RFC-5545 TEXT escaping rule: backslash, semicolon,
// comma, and newline must be backslash-escaped or they corrupt the feed.
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ';':
			b.WriteString(`\;`)
		case ',':
			b.WriteString(`\,`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			// Bare CRs never appear in content lines.
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
