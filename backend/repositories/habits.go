package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tracker/backend/models"
	"tracker/backend/storage"
)

type HabitRepository struct {
	kv storage.KV
}

func NewHabitRepository(kv storage.KV) *HabitRepository {
	return &HabitRepository{kv: kv}
}

func profileKey(userID uint) string { return fmt.Sprintf("habits/%d/profile", userID) }

func dayKey(userID uint, date string) string { return fmt.Sprintf("habits/%d/days/%s", userID, date) }

func scorePrefix(userID uint) string { return fmt.Sprintf("scores/%d/", userID) }

func (r *HabitRepository) GetProfile(ctx context.Context, userID uint) (*models.HabitProfile, error) {
	var p models.HabitProfile
	if err := getJSON(ctx, r.kv, profileKey(userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *HabitRepository) SaveProfile(ctx context.Context, p *models.HabitProfile) error {
	return putJSON(ctx, r.kv, profileKey(p.UserID), p)
}

func (r *HabitRepository) GetDay(ctx context.Context, userID uint, date string) ([]bool, error) {
	var vector []bool
	if err := getJSON(ctx, r.kv, dayKey(userID, date), &vector); err != nil {
		return nil, err
	}
	return vector, nil
}

func (r *HabitRepository) SaveDay(ctx context.Context, userID uint, date string, vector []bool) error {
	return putJSON(ctx, r.kv, dayKey(userID, date), vector)
}

func (r *HabitRepository) SaveScore(ctx context.Context, userID uint, date string, score int) error {
	return r.kv.Put(ctx, scorePrefix(userID)+date, []byte(strconv.Itoa(score)))
}

// Scores returns every recorded daily score for the user keyed by date.
func (r *HabitRepository) Scores(ctx context.Context, userID uint) (map[string]int, error) {
	prefix := scorePrefix(userID)
	recs, err := r.kv.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int, len(recs))
	for _, rec := range recs {
		score, err := strconv.Atoi(string(rec.Value))
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", rec.Key, err)
		}
		scores[strings.TrimPrefix(rec.Key, prefix)] = score
	}
	return scores, nil
}
