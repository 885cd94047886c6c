package models

// HabitProfile holds a user's tracked habits. The slice order is the index
// used by every day vector.
type HabitProfile struct {
	UserID uint     `json:"user_id"`
	Habits []string `json:"habits"`
}

type DayHabits struct {
	Date   string `json:"date"`
	Habits []bool `json:"habits"`
}
