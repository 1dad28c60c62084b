package matching

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// MatchRun records one result set written by a run.
type MatchRun struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RunID       string    `gorm:"size:36;index" json:"run_id"`
	Track       string    `gorm:"size:32" json:"track"`
	ResultKey   string    `gorm:"size:191" json:"result_key"`
	Object      string    `gorm:"size:255" json:"object"`
	RowCount    int       `json:"rows"`
	ColumnCount int       `json:"columns"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName implements gorm's tabler.
func (MatchRun) TableName() string {
	return "match_runs"
}

// History persists run outputs.
type History struct {
	db *gorm.DB
}

// NewHistory creates a history over db.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Migrate creates or updates the match_runs table.
func (h *History) Migrate() error {
	return h.db.AutoMigrate(&MatchRun{})
}

// Record stores one row per output of run.
func (h *History) Record(ctx context.Context, runID string, outputs []Output) error {
	if len(outputs) == 0 {
		return nil
	}
	rows := make([]MatchRun, len(outputs))
	for i, o := range outputs {
		rows[i] = MatchRun{
			RunID:       runID,
			Track:       o.Track,
			ResultKey:   o.Key,
			Object:      o.Object,
			RowCount:    o.Rows,
			ColumnCount: o.Columns,
		}
	}
	return h.db.WithContext(ctx).Create(&rows).Error
}

// Latest returns up to limit recorded outputs, newest first.
func (h *History) Latest(ctx context.Context, limit int) ([]MatchRun, error) {
	var runs []MatchRun
	err := h.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&runs).Error
	return runs, err
}
