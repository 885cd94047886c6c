package models

import "time"

// DailyEntry is one user's checklist for one calendar day. EntryDate is
// formatted as YYYY-MM-DD and is unique per user.
type DailyEntry struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	EntryDate     string    `json:"entry_date"`
	SkillPoints   int       `json:"skill_points"`
	CareerPoints  int       `json:"career_points"`
	ProjectPoints int       `json:"project_points"`
	TotalScore    int       `json:"total_score"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
