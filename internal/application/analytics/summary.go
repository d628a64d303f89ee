package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/minilytics/backend/internal/domain/tracking"
)

// DailyCount is the number of events observed on one calendar day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PageCount is the number of events observed for one (domain, path) pair.
type PageCount struct {
	Domain string `json:"domain"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

// Summary aggregates events over a trailing window of calendar days.
// AvgPerDay is the window total divided by the window length, rounded
// to the nearest integer.
type Summary struct {
	Total     int          `json:"total"`
	Today     int          `json:"today"`
	AvgPerDay float64      `json:"avg_per_day"`
	Daily     []DailyCount `json:"daily"`
	TopPages  []PageCount  `json:"top_pages"`
}

const topPagesLimit = 10

// startOfDay truncates an instant to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WindowStart returns the first instant of the trailing window: the
// start of the calendar day windowDays-1 days before now, so that the
// window always spans exactly windowDays calendar days including today.
func WindowStart(now time.Time, windowDays int) time.Time {
	return startOfDay(now).AddDate(0, 0, -(windowDays - 1))
}

// Summarize aggregates events into the dashboard summary. Days are
// calendar days in now's location. Events before the window start are
// ignored even if passed in. Daily buckets are returned oldest first
// and zero-filled so the slice always has windowDays entries. Top
// pages are counted per (domain, path) pair; ties keep the pair that
// was seen first.
func Summarize(events []tracking.PageView, now time.Time, windowDays int) Summary {
	windowStart := WindowStart(now, windowDays)
	today := startOfDay(now).Format("2006-01-02")

	byDay := make(map[string]int, windowDays)
	byPage := make(map[[2]string]int)
	var pageOrder [][2]string

	total := 0
	for _, ev := range events {
		ts := ev.CreatedAt.In(now.Location())
		if ts.Before(windowStart) {
			continue
		}
		total++

		day := startOfDay(ts).Format("2006-01-02")
		byDay[day]++

		key := [2]string{ev.Domain, ev.Path}
		if _, seen := byPage[key]; !seen {
			pageOrder = append(pageOrder, key)
		}
		byPage[key]++
	}

	daily := make([]DailyCount, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := startOfDay(now).AddDate(0, 0, -i).Format("2006-01-02")
		daily = append(daily, DailyCount{Date: day, Count: byDay[day]})
	}

	pages := make([]PageCount, 0, len(pageOrder))
	for _, key := range pageOrder {
		pages = append(pages, PageCount{Domain: key[0], Path: key[1], Count: byPage[key]})
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Count > pages[j].Count
	})
	if len(pages) > topPagesLimit {
		pages = pages[:topPagesLimit]
	}

	return Summary{
		Total:     total,
		Today:     byDay[today],
		AvgPerDay: math.Round(float64(total) / float64(windowDays)),
		Daily:     daily,
		TopPages:  pages,
	}
}
