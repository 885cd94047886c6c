package models

type Stats struct {
	TotalEntries  int     `json:"totalEntries"`
	TotalScore    int     `json:"totalScore"`
	AverageScore  float64 `json:"averageScore"`
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
}

type HeatmapDay struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

type Heatmap struct {
	Days      []HeatmapDay `json:"heatmapDays"`
	TotalDays int          `json:"totalDays"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
}

type WeekdayScore struct {
	Day   string `json:"day"`
	Score int    `json:"score"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

type WeeklyStats struct {
	WeekStats      []WeekdayScore `json:"weekStats"`
	TrendData      []TrendPoint   `json:"trendData"`
	TotalScore     int            `json:"totalScore"`
	CompletionRate int            `json:"completionRate"`
}
