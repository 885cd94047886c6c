package models

import "time"

const DefaultCareerGoal = "AI Engineer"

type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CareerGoal   string    `json:"career_goal"`
	JoinedDate   time.Time `json:"joined_date"`
}
