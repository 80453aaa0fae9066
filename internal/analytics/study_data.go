// Package analytics derives the study-time series shown on the activity
// charts. Everything here is a pure function of a task snapshot and a
// reference time: no state, no side effects, identical output for identical
// input.
package analytics

import (
	"fmt"
	"math"
	"time"

	"scholarsync/internal/domain"
)

// Timeframe selects the bucketing scheme for the study-data series.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "Daily"
	TimeframeWeekly  Timeframe = "Weekly"
	TimeframeMonthly Timeframe = "Monthly"
)

// IsValid checks if the timeframe is one of the known schemes.
func (tf Timeframe) IsValid() bool {
	switch tf {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return true
	}
	return false
}

// StudyPoint is one bucket of the study-time series.
type StudyPoint struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// StudyData computes the time-bucketed study-hours series for the given
// timeframe, ordered oldest to newest. Only Done tasks contribute; each is
// attributed to its completion timestamp, falling back to its due date, and
// tasks with neither are skipped. Bucket values are summed estimate minutes
// converted to hours, rounded to one decimal.
func StudyData(tasks []domain.Task, timeframe Timeframe, now time.Time) []StudyPoint {
	completed := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsDone() {
			completed = append(completed, t)
		}
	}

	switch timeframe {
	case TimeframeWeekly:
		return weeklySeries(completed, now)
	case TimeframeMonthly:
		return monthlySeries(completed, now)
	default:
		return dailySeries(completed, now)
	}
}

// dailySeries builds 7 buckets, one per local calendar day ending today
func dailySeries(completed []domain.Task, now time.Time) []StudyPoint {
	points := make([]StudyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		minutes := 0
		for _, t := range completed {
			d, ok := t.EffectiveDate()
			if ok && sameDay(d, day) {
				minutes += t.EffectiveDuration()
			}
		}
		points = append(points, StudyPoint{
			Label: day.Format("Mon"),
			Hours: roundHours(minutes),
		})
	}
	return points
}

// weeklySeries builds 4 buckets, each a rolling 7-day window ending on
// today minus 7*i days, window boundaries inclusive at local midnight and
// local end of day
func weeklySeries(completed []domain.Task, now time.Time) []StudyPoint {
	points := make([]StudyPoint, 0, 4)
	for i := 3; i >= 0; i-- {
		end := endOfDay(now.AddDate(0, 0, -7*i))
		start := startOfDay(end.AddDate(0, 0, -6))

		minutes := 0
		for _, t := range completed {
			d, ok := t.EffectiveDate()
			if ok && !d.Before(start) && !d.After(end) {
				minutes += t.EffectiveDuration()
			}
		}
		points = append(points, StudyPoint{
			Label: weekLabel(i),
			Hours: roundHours(minutes),
		})
	}
	return points
}

// monthlySeries builds 6 buckets, one per calendar month ending with the
// current month, matched by month and year equality
func monthlySeries(completed []domain.Task, now time.Time) []StudyPoint {
	// Anchor at the first of the month so month arithmetic never skips a
	// short month.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	points := make([]StudyPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		minutes := 0
		for _, t := range completed {
			d, ok := t.EffectiveDate()
			if ok && d.Month() == month.Month() && d.Year() == month.Year() {
				minutes += t.EffectiveDuration()
			}
		}
		points = append(points, StudyPoint{
			Label: month.Format("Jan"),
			Hours: roundHours(minutes),
		})
	}
	return points
}

// weekLabel names a weekly bucket by its distance from the current week
func weekLabel(weeksAgo int) string {
	switch weeksAgo {
	case 0:
		return "This Wk"
	case 1:
		return "Last Wk"
	default:
		return fmt.Sprintf("%d Wks Ago", weeksAgo)
	}
}

// roundHours converts minutes to hours rounded to one decimal
func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}

// sameDay reports whether two times fall on the same local calendar day
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfDay returns local midnight of t's day
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last nanosecond of t's day
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
