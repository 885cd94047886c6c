package stats

import (
	"math"
	"sort"
	"time"

	"tracker/backend/models"
)

const (
	MaxCategoryPoints = 3
	MaxTotalScore     = 10
)

// ClampPoints bounds a raw category value to [0, MaxCategoryPoints].
func ClampPoints(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxCategoryPoints {
		return MaxCategoryPoints
	}
	return v
}

// TotalScore clamps each category before summing and caps the sum.
func TotalScore(skill, career, project int) int {
	sum := ClampPoints(skill) + ClampPoints(career) + ClampPoints(project)
	if sum > MaxTotalScore {
		return MaxTotalScore
	}
	return sum
}

// SortEntriesDesc orders entries by entry date, most recent first.
func SortEntriesDesc(entries []models.DailyEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate > entries[j].EntryDate
	})
}

// CurrentStreak is a presence flag: 1 when there is an entry dated today or
// yesterday, 0 otherwise.
func CurrentStreak(entries []models.DailyEntry, now time.Time) int {
	today := FormatDate(now)
	yesterday := FormatDate(AddDays(now, -1))
	for _, e := range entries {
		if e.EntryDate == today || e.EntryDate == yesterday {
			return 1
		}
	}
	return 0
}

// LongestStreak scans entries newest first and returns the longest run of
// consecutive calendar days. Any non-empty history yields at least 1.
func LongestStreak(entries []models.DailyEntry) int {
	sorted := make([]models.DailyEntry, len(entries))
	copy(sorted, entries)
	SortEntriesDesc(sorted)

	longest, run := 0, 0
	for i := range sorted {
		if i == 0 || IsConsecutive(sorted[i-1].EntryDate, sorted[i].EntryDate) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// Compute derives the entry statistics for one user's history.
func Compute(entries []models.DailyEntry, now time.Time) models.Stats {
	var s models.Stats
	s.TotalEntries = len(entries)
	for _, e := range entries {
		s.TotalScore += e.TotalScore
	}
	if s.TotalEntries > 0 {
		s.AverageScore = Round1(float64(s.TotalScore) / float64(s.TotalEntries))
	}
	s.CurrentStreak = CurrentStreak(entries, now)
	s.LongestStreak = max(LongestStreak(entries), s.CurrentStreak)
	return s
}

// Round1 rounds to one decimal place.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}
