package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tracker/backend/models"
	"tracker/backend/repositories"
	"tracker/backend/stats"
	"tracker/backend/storage"
	"tracker/backend/utils"
)

// EntryInput carries raw category points; they are clamped, never rejected.
type EntryInput struct {
	SkillPoints   int
	CareerPoints  int
	ProjectPoints int
	Notes         string
}

type EntryService struct {
	entries *repositories.EntryRepository
	locks   *keyedMutex[uint]
	reads   *readCache
	logger  *zap.Logger
	now     func() time.Time
}

// TodayDate returns the current calendar day (UTC) as YYYY-MM-DD.
func (s *EntryService) TodayDate() string {
	return stats.FormatDate(s.now())
}

// Upsert creates or replaces the user's entry for date. The returned bool is
// true when a new entry was created. Replacing keeps ID and CreatedAt.
func (s *EntryService) Upsert(ctx context.Context, userID uint, date string, in EntryInput) (*models.DailyEntry, bool, error) {
	if _, err := stats.ParseDate(date); err != nil {
		return nil, false, ErrInvalidDate
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	skill := stats.ClampPoints(in.SkillPoints)
	career := stats.ClampPoints(in.CareerPoints)
	project := stats.ClampPoints(in.ProjectPoints)
	total := stats.TotalScore(skill, career, project)
	now := s.now().UTC()

	entry, err := s.entries.Get(ctx, userID, date)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		id, err := s.entries.NextID(ctx)
		if err != nil {
			return nil, false, err
		}
		entry = &models.DailyEntry{
			ID:        id,
			UserID:    userID,
			EntryDate: date,
			CreatedAt: now,
		}
		created = true
	default:
		return nil, false, fmt.Errorf("load entry %s: %w", date, err)
	}

	entry.SkillPoints = skill
	entry.CareerPoints = career
	entry.ProjectPoints = project
	entry.TotalScore = total
	entry.Notes = in.Notes
	entry.UpdatedAt = now

	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, false, fmt.Errorf("save entry %s: %w", date, err)
	}
	s.reads.invalidate(ctx, userID)

	kind := "entry_updated"
	if created {
		kind = "entry_created"
	}
	utils.Writes.WithLabelValues(kind).Inc()
	s.logger.Info("entry_upserted",
		zap.Uint("user_id", userID),
		zap.String("date", date),
		zap.Int("total_score", total),
		zap.Bool("created", created),
	)
	return entry, created, nil
}

// SubmitToday upserts the entry dated today.
func (s *EntryService) SubmitToday(ctx context.Context, userID uint, in EntryInput) (*models.DailyEntry, bool, error) {
	return s.Upsert(ctx, userID, s.TodayDate(), in)
}

func (s *EntryService) List(ctx context.Context, userID uint) ([]models.DailyEntry, error) {
	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Get returns ErrEntryNotFound when the user has no entry for date.
func (s *EntryService) Get(ctx context.Context, userID uint, date string) (*models.DailyEntry, error) {
	entry, err := s.entries.Get(ctx, userID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load entry %s: %w", date, err)
	}
	return entry, nil
}

func (s *EntryService) Today(ctx context.Context, userID uint) (*models.DailyEntry, error) {
	return s.Get(ctx, userID, s.TodayDate())
}

// Stats aggregates the user's whole entry history.
func (s *EntryService) Stats(ctx context.Context, userID uint) (models.Stats, error) {
	now := s.now()
	var out models.Stats
	err := s.reads.load(ctx, userID, &out, func() error {
		entries, err := s.List(ctx, userID)
		if err != nil {
			return err
		}
		out = stats.Compute(entries, now)
		return nil
	}, "entry_stats", stats.FormatDate(now))
	return out, err
}
