// Package analytics derives read-only habit statistics from completion history.
package analytics

import (
	"math"
	"slices"

	"github.com/sandeepkv93/daybook/internal/model"
)

type Stats struct {
	DaysCompleted int
	CurrentStreak int
	LongestStreak int
	DaysFailed    int
	DaysSkipped   int
	HabitScore    int
	TotalDays     int
}

// ComputeStats summarizes h as of today. Only records with a known status
// are counted.
func ComputeStats(h model.Habit, today model.Date) Stats {
	var (
		stats     Stats
		completed []model.Date
	)
	created := h.CreatedOn()
	completedInRange, skippedInRange := 0, 0
	for day := range h.Completions {
		status, ok := h.StatusOn(day)
		if !ok {
			continue
		}
		inRange := !day.Before(created) && !day.After(today)
		switch status {
		case model.HabitCompleted:
			stats.DaysCompleted++
			completed = append(completed, day)
			if inRange {
				completedInRange++
			}
		case model.HabitSkipped:
			stats.DaysSkipped++
			if inRange {
				skippedInRange++
			}
		}
	}

	slices.SortFunc(completed, model.Date.Compare)
	stats.LongestStreak = longestRun(completed)
	stats.CurrentStreak = currentStreak(h, today)

	stats.TotalDays = max(0, today.DaysSince(created)) + 1
	if !created.After(today) {
		stats.DaysFailed = max(0, stats.TotalDays-completedInRange-skippedInRange)
	}
	if stats.TotalDays > 0 {
		stats.HabitScore = int(math.Round(float64(stats.DaysCompleted) / float64(stats.TotalDays) * 100))
	}
	return stats
}

// longestRun expects sorted, distinct days.
func longestRun(days []model.Date) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].DaysSince(days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

func currentStreak(h model.Habit, today model.Date) int {
	day := today
	if s, _ := h.StatusOn(day); s != model.HabitCompleted {
		day = day.AddDays(-1)
	}
	streak := 0
	for {
		s, _ := h.StatusOn(day)
		if s != model.HabitCompleted {
			return streak
		}
		streak++
		day = day.AddDays(-1)
	}
}
