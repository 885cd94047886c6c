package repositories

import (
	"context"
	"fmt"

	"tracker/backend/models"
	"tracker/backend/stats"
	"tracker/backend/storage"
)

const entrySeq = "seq/entries"

type EntryRepository struct {
	kv storage.KV
}

func NewEntryRepository(kv storage.KV) *EntryRepository {
	return &EntryRepository{kv: kv}
}

func entryPrefix(userID uint) string { return fmt.Sprintf("entries/%d/", userID) }

func entryKey(userID uint, date string) string { return entryPrefix(userID) + date }

func (r *EntryRepository) NextID(ctx context.Context) (uint, error) {
	return nextID(ctx, r.kv, entrySeq)
}

func (r *EntryRepository) Get(ctx context.Context, userID uint, date string) (*models.DailyEntry, error) {
	var e models.DailyEntry
	if err := getJSON(ctx, r.kv, entryKey(userID, date), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepository) Save(ctx context.Context, e *models.DailyEntry) error {
	return putJSON(ctx, r.kv, entryKey(e.UserID, e.EntryDate), e)
}

// ListByUser returns the user's entries, most recent date first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID uint) ([]models.DailyEntry, error) {
	recs, err := r.kv.List(ctx, entryPrefix(userID))
	if err != nil {
		return nil, err
	}

	entries := make([]models.DailyEntry, 0, len(recs))
	for _, rec := range recs {
		var e models.DailyEntry
		if err := decode(rec, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	stats.SortEntriesDesc(entries)
	return entries, nil
}
