package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord backs GormKV.Get/Put/List.
type KVRecord struct {
	Key       string `gorm:"column:record_key;primaryKey;size:255"`
	Value     []byte `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

func (KVRecord) TableName() string { return "kv_records" }

// KVCounter backs GormKV.Incr.
type KVCounter struct {
	Key   string `gorm:"column:counter_key;primaryKey;size:255"`
	Value int64  `gorm:"column:value;not null"`
}

func (KVCounter) TableName() string { return "kv_counters" }

type GormKV struct {
	db *gorm.DB
}

// NewGormKV migrates the KV tables and returns a store over db.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&KVRecord{}, &KVCounter{}); err != nil {
		return nil, fmt.Errorf("migrate kv tables: %w", err)
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := g.db.WithContext(ctx).Where("record_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return rec.Value, nil
}

func (g *GormKV) Put(ctx context.Context, key string, value []byte) error {
	rec := KVRecord{Key: key, Value: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (g *GormKV) List(ctx context.Context, prefix string) ([]Record, error) {
	var recs []KVRecord
	err := g.db.WithContext(ctx).
		Where("record_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("record_key").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = Record{Key: r.Key, Value: r.Value}
	}
	return out, nil
}

func (g *GormKV) Incr(ctx context.Context, key string) (int64, error) {
	counter := KVCounter{Key: key, Value: 1}
	err := g.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "counter_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value": gorm.Expr("kv_counters.value + 1"),
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "value"}}},
	).Create(&counter).Error
	if err != nil {
		return 0, fmt.Errorf("incr %q: %w", key, err)
	}
	return counter.Value, nil
}

func (g *GormKV) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
