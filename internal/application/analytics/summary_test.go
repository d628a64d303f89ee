package analytics

import (
	"testing"
	"time"

	"github.com/minilytics/backend/internal/domain/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pv(domain, path string, at time.Time) tracking.PageView {
	return tracking.PageView{Domain: domain, Path: path, CreatedAt: at}
}

func TestSummarize(t *testing.T) {
	// Fixed reference instant, mid-afternoon local time.
	now := time.Date(2026, 3, 15, 15, 30, 0, 0, time.Local)

	t.Run("empty input yields zero-filled buckets", func(t *testing.T) {
		s := Summarize(nil, now, 7)

		assert.Equal(t, 0, s.Total)
		assert.Equal(t, 0, s.Today)
		assert.Equal(t, 0.0, s.AvgPerDay)
		assert.Empty(t, s.TopPages)
		require.Len(t, s.Daily, 7)
		for _, d := range s.Daily {
			assert.Equal(t, 0, d.Count)
		}
	})

	t.Run("buckets are oldest first and span exactly the window", func(t *testing.T) {
		s := Summarize(nil, now, 7)

		require.Len(t, s.Daily, 7)
		assert.Equal(t, "2026-03-09", s.Daily[0].Date)
		assert.Equal(t, "2026-03-15", s.Daily[6].Date)
		for i := 1; i < len(s.Daily); i++ {
			assert.Less(t, s.Daily[i-1].Date, s.Daily[i].Date)
		}
	})

	t.Run("events land in their calendar day", func(t *testing.T) {
		events := []tracking.PageView{
			pv("example.com", "/", now.Add(-5*time.Minute)),
			pv("example.com", "/", now.AddDate(0, 0, -1)),
			pv("example.com", "/", now.AddDate(0, 0, -1).Add(time.Hour)),
		}

		s := Summarize(events, now, 7)

		assert.Equal(t, 3, s.Total)
		assert.Equal(t, 1, s.Today)
		assert.Equal(t, 1, s.Daily[6].Count)
		assert.Equal(t, 2, s.Daily[5].Count)
	})

	t.Run("events before the window are excluded everywhere", func(t *testing.T) {
		old := now.AddDate(0, 0, -7)
		edge := WindowStart(now, 7)

		events := []tracking.PageView{
			pv("example.com", "/old", old),
			pv("example.com", "/edge", edge),
		}

		s := Summarize(events, now, 7)

		assert.Equal(t, 1, s.Total)
		require.Len(t, s.TopPages, 1)
		assert.Equal(t, "/edge", s.TopPages[0].Path)
	})

	t.Run("average is window total over window length, rounded", func(t *testing.T) {
		var events []tracking.PageView
		for i := 0; i < 11; i++ {
			events = append(events, pv("example.com", "/", now))
		}

		// 11 / 7 = 1.57..., rounds to 2.
		s := Summarize(events, now, 7)
		assert.Equal(t, 2.0, s.AvgPerDay)

		// 11 / 30 = 0.36..., rounds to 0.
		s = Summarize(events, now, 30)
		assert.Equal(t, 0.0, s.AvgPerDay)
	})

	t.Run("top pages counts domain and path pairs separately", func(t *testing.T) {
		events := []tracking.PageView{
			pv("a.com", "/x", now),
			pv("a.com", "/x", now),
			pv("b.com", "/x", now),
		}

		s := Summarize(events, now, 7)

		require.Len(t, s.TopPages, 2)
		assert.Equal(t, PageCount{Domain: "a.com", Path: "/x", Count: 2}, s.TopPages[0])
		assert.Equal(t, PageCount{Domain: "b.com", Path: "/x", Count: 1}, s.TopPages[1])
	})

	t.Run("top pages keeps first-seen order on ties", func(t *testing.T) {
		events := []tracking.PageView{
			pv("example.com", "/beta", now),
			pv("example.com", "/alpha", now),
			pv("example.com", "/beta", now),
			pv("example.com", "/alpha", now),
		}

		s := Summarize(events, now, 7)

		require.Len(t, s.TopPages, 2)
		assert.Equal(t, "/beta", s.TopPages[0].Path)
		assert.Equal(t, "/alpha", s.TopPages[1].Path)
	})

	t.Run("top pages is capped at ten", func(t *testing.T) {
		var events []tracking.PageView
		for i := 0; i < 15; i++ {
			path := "/page-" + string(rune('a'+i))
			for j := 0; j <= i; j++ {
				events = append(events, pv("example.com", path, now))
			}
		}

		s := Summarize(events, now, 7)

		require.Len(t, s.TopPages, 10)
		assert.Equal(t, "/page-"+string(rune('a'+14)), s.TopPages[0].Path)
		for i := 1; i < len(s.TopPages); i++ {
			assert.GreaterOrEqual(t, s.TopPages[i-1].Count, s.TopPages[i].Count)
		}
	})
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local)

	start := WindowStart(now, 7)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local), start)

	start = WindowStart(now, 1)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), start)
}
