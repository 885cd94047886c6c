package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tracker/backend/models"
	"tracker/backend/repositories"
	"tracker/backend/stats"
	"tracker/backend/storage"
	"tracker/backend/utils"
)

// DefaultHabits is copied into every new habit profile.
var DefaultHabits = []string{
	"Study 2.5 hour",
	"Workout",
	"Watch 1 Movie",
	"Leet Code 1 problem",
	"Learn Skills",
	"Linux Commands",
	"Water intake",
	"Sleep 7h",
	"Programming Practice",
	"Aptitude",
}

type HabitService struct {
	habits  *repositories.HabitRepository
	locks   *keyedMutex[uint]
	reads   *readCache
	logger  *zap.Logger
	now     func() time.Time
	initial []string
}

// Profile returns the user's habit profile, creating it from the default
// list on first access.
func (s *HabitService) Profile(ctx context.Context, userID uint) (*models.HabitProfile, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.profileLocked(ctx, userID)
}

func (s *HabitService) profileLocked(ctx context.Context, userID uint) (*models.HabitProfile, error) {
	p, err := s.habits.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load habit profile: %w", err)
	}

	p = &models.HabitProfile{
		UserID: userID,
		Habits: append([]string(nil), s.initial...),
	}
	if err := s.habits.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("create habit profile: %w", err)
	}
	s.logger.Info("habit_profile_created", zap.Uint("user_id", userID), zap.Int("habits", len(p.Habits)))
	return p, nil
}

// SetDayHabits stores vector as given for date and records the day's score.
// The score is weighted by the profile's current habit count, whatever the
// vector length.
func (s *HabitService) SetDayHabits(ctx context.Context, userID uint, date string, vector []bool) (int, error) {
	if _, err := stats.ParseDate(date); err != nil {
		return 0, ErrInvalidDate
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	profile, err := s.profileLocked(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.habits.SaveDay(ctx, userID, date, vector); err != nil {
		return 0, fmt.Errorf("save habits for %s: %w", date, err)
	}

	score := stats.HabitScore(stats.CompletedCount(vector), len(profile.Habits))
	if err := s.habits.SaveScore(ctx, userID, date, score); err != nil {
		return 0, fmt.Errorf("save score for %s: %w", date, err)
	}
	s.reads.invalidate(ctx, userID)

	utils.Writes.WithLabelValues("habit_day").Inc()
	s.logger.Info("habit_day_recorded",
		zap.Uint("user_id", userID),
		zap.String("date", date),
		zap.Int("completed", stats.CompletedCount(vector)),
		zap.Int("score", score),
	)
	return score, nil
}

// Week returns the Monday-start week containing anchor. Days without a
// stored vector get an all-false vector sized to the profile.
func (s *HabitService) Week(ctx context.Context, userID uint, anchor time.Time) (*models.HabitProfile, []models.DayHabits, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	dates := stats.WeekDates(anchor)
	week := make([]models.DayHabits, 0, len(dates))
	for _, date := range dates {
		vector, err := s.habits.GetDay(ctx, userID, date)
		if errors.Is(err, storage.ErrNotFound) {
			vector = make([]bool, len(profile.Habits))
		} else if err != nil {
			return nil, nil, fmt.Errorf("load habits for %s: %w", date, err)
		}
		week = append(week, models.DayHabits{Date: date, Habits: vector})
	}
	return profile, week, nil
}

// CurrentWeek is Week anchored at today.
func (s *HabitService) CurrentWeek(ctx context.Context, userID uint) (*models.HabitProfile, []models.DayHabits, error) {
	return s.Week(ctx, userID, s.now())
}

func (s *HabitService) CurrentYear() int {
	return s.now().UTC().Year()
}

func (s *HabitService) Heatmap(ctx context.Context, userID uint, year int) (models.Heatmap, error) {
	var out models.Heatmap
	err := s.reads.load(ctx, userID, &out, func() error {
		scores, err := s.habits.Scores(ctx, userID)
		if err != nil {
			return fmt.Errorf("load scores: %w", err)
		}
		out = stats.BuildHeatmap(year, scores)
		return nil
	}, "heatmap", strconv.Itoa(year))
	return out, err
}

func (s *HabitService) WeeklyStats(ctx context.Context, userID uint) (models.WeeklyStats, error) {
	now := s.now()
	var out models.WeeklyStats
	err := s.reads.load(ctx, userID, &out, func() error {
		scores, err := s.habits.Scores(ctx, userID)
		if err != nil {
			return fmt.Errorf("load scores: %w", err)
		}
		out = stats.BuildWeeklyStats(now, scores)
		return nil
	}, "weekly", stats.FormatDate(now))
	return out, err
}
