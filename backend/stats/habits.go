package stats

import (
	"math"
	"time"

	"tracker/backend/models"
)

const (
	// DailyHabitScore is the score of a day with every habit completed.
	DailyHabitScore = 70
	TrendDays       = 30
	// CompletionDenominator is fixed regardless of leap years or elapsed days.
	CompletionDenominator = 365
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func CompletedCount(vector []bool) int {
	n := 0
	for _, done := range vector {
		if done {
			n++
		}
	}
	return n
}

// HabitScore allocates DailyHabitScore evenly over habitCount habits. The
// count is the profile's current habit count, not the vector length.
func HabitScore(completed, habitCount int) int {
	if habitCount <= 0 {
		return 0
	}
	perHabit := float64(DailyHabitScore) / float64(habitCount)
	return int(math.Round(float64(completed) * perHabit))
}

// HeatmapLevel quantizes a score into five buckets on a nominal 0..10 scale.
func HeatmapLevel(score int) int {
	switch {
	case score <= 0:
		return 0
	case score <= 3:
		return 1
	case score <= 6:
		return 2
	case score <= 8:
		return 3
	default:
		return 4
	}
}

// BuildHeatmap lists every day of year with its stored score and level.
func BuildHeatmap(year int, scores map[string]int) models.Heatmap {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	days := make([]models.HeatmapDay, 0, 366)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		score := scores[date]
		days = append(days, models.HeatmapDay{
			Date:  date,
			Score: score,
			Level: HeatmapLevel(score),
		})
	}

	return models.Heatmap{
		Days:      days,
		TotalDays: len(days),
		StartDate: start.Format(DateLayout),
		EndDate:   end.Format(DateLayout),
	}
}

// WeekScores returns Mon..Sun score lookups for the week containing now.
func WeekScores(now time.Time, scores map[string]int) []models.WeekdayScore {
	dates := WeekDates(now)
	out := make([]models.WeekdayScore, len(dates))
	for i, date := range dates {
		out[i] = models.WeekdayScore{Day: weekdayLabels[i], Score: scores[date]}
	}
	return out
}

// Trend returns the last days calendar days ending today, oldest first,
// labelled MM-DD.
func Trend(now time.Time, scores map[string]int, days int) []models.TrendPoint {
	out := make([]models.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := FormatDate(AddDays(now, -i))
		out = append(out, models.TrendPoint{Date: date[5:], Score: scores[date]})
	}
	return out
}

// CompletionRate is the share of recorded days over a fixed 365-day year.
func CompletionRate(recordedDays int) int {
	return int(math.Round(100 * float64(recordedDays) / CompletionDenominator))
}

func SumScores(scores map[string]int) int {
	total := 0
	for _, s := range scores {
		total += s
	}
	return total
}

func BuildWeeklyStats(now time.Time, scores map[string]int) models.WeeklyStats {
	return models.WeeklyStats{
		WeekStats:      WeekScores(now, scores),
		TrendData:      Trend(now, scores, TrendDays),
		TotalScore:     SumScores(scores),
		CompletionRate: CompletionRate(len(scores)),
	}
}
