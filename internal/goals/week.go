package goals

import (
	"math"
	"time"

	"github.com/limbo/ergotrack/pkg/entity"
)

// WeekStart returns midnight of the Monday on or before ref, in ref's
// location.
func WeekStart(ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

// DailyRecords derives seven per-day completion records from real
// CompletedAt stamps, starting at weekStart. A secondary counts toward
// the day its CompletedAt falls on; each day's possible set is the full
// secondary list (daily goals are rescheduled every day).
func DailyRecords(gs []entity.Goal, weekStart time.Time) []entity.DayProgress {
	totalGoals := 0
	pointsPossible := 0
	for _, g := range gs {
		if g.Kind == entity.GoalKindSecondary {
			totalGoals++
			pointsPossible += g.Points
		}
	}
	records := make([]entity.DayProgress, 0, 7)
	for i := range 7 {
		day := weekStart.AddDate(0, 0, i)
		rec := entity.DayProgress{
			Date:           day,
			DayName:        day.Weekday().String(),
			TotalGoals:     totalGoals,
			PointsPossible: pointsPossible,
		}
		for _, g := range gs {
			if g.Kind != entity.GoalKindSecondary || g.CompletedAt == nil {
				continue
			}
			if sameDay(*g.CompletedAt, day) {
				rec.CompletedGoals++
				rec.PointsEarned += g.Points
			}
		}
		rec.CompletionRate = rate(rec.CompletedGoals, rec.TotalGoals)
		records = append(records, rec)
	}
	return records
}

// CalculateWeekProgress folds per-day records into a Monday-anchored
// week around ref. Exactly seven days come back regardless of how much
// data exists; days with no matching record report zero activity. Best
// day is the first day holding the highest completion rate.
func CalculateWeekProgress(records []entity.DayProgress, ref time.Time) entity.WeekProgress {
	start := WeekStart(ref)
	week := entity.WeekProgress{
		WeekStart: start,
		WeekEnd:   start.AddDate(0, 0, 6),
		Days:      make([]entity.DayProgress, 0, 7),
	}
	rateSum := 0
	for i := range 7 {
		day := start.AddDate(0, 0, i)
		rec := entity.DayProgress{
			Date:    day,
			DayName: day.Weekday().String(),
		}
		for _, r := range records {
			if sameDay(r.Date, day) {
				rec.CompletedGoals = r.CompletedGoals
				rec.TotalGoals = r.TotalGoals
				rec.PointsEarned = r.PointsEarned
				rec.PointsPossible = r.PointsPossible
				break
			}
		}
		rec.CompletionRate = rate(rec.CompletedGoals, rec.TotalGoals)
		week.Days = append(week.Days, rec)
		week.TotalPoints += rec.PointsEarned
		rateSum += rec.CompletionRate
	}
	week.AverageCompletion = int(math.Round(float64(rateSum) / 7))
	week.BestDay = week.Days[0]
	for _, d := range week.Days[1:] {
		if d.CompletionRate > week.BestDay.CompletionRate {
			week.BestDay = d
		}
	}
	return week
}

func rate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
