package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is one keyed envelope row
type Slot struct {
	Key       string `gorm:"primaryKey;size:128"`
	Data      string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name
func (Slot) TableName() string {
	return "storage_slots"
}

// Gorm keeps the slot as a single row in postgres
type Gorm struct {
	db  *gorm.DB
	key string
}

func NewGorm(db *gorm.DB, key string) *Gorm {
	if key == "" {
		key = DefaultKey
	}
	return &Gorm{db: db, key: key}
}

func (g *Gorm) Load(ctx context.Context) (model.State, error) {
	var slot Slot
	err := g.db.WithContext(ctx).Where("key = ?", g.key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Decode(nil)
	}
	if err != nil {
		return model.State{}, fmt.Errorf("failed to load storage slot %q: %w", g.key, err)
	}
	return Decode([]byte(slot.Data))
}

func (g *Gorm) Save(ctx context.Context, state model.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	slot := Slot{Key: g.key, Data: string(data), UpdatedAt: time.Now().UTC()}
	err = g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to save storage slot %q: %w", g.key, err)
	}
	return nil
}
