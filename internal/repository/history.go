package repository

import (
	"context"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/quiz"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var byTimestamp = clause.Column{Name: "timestamp"}

// HistoryRepository is the append-only mcq_history store.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Record(ctx context.Context, rec quiz.HistoryRecord) error {
	entry := models.HistoryEntry{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Topic:      rec.Topic,
		Date:       rec.Date,
		Score:      rec.Score,
		Percentage: rec.Percentage,
		Correct:    rec.Correct,
		Total:      rec.Total,
		Timestamp:  rec.Timestamp,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// ForUser returns a user's attempts, newest first.
func (r *HistoryRepository) ForUser(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: byTimestamp, Desc: true}).
		Find(&entries).Error
	return entries, err
}

// ScorePoint is one attempt on the score-over-time chart.
type ScorePoint struct {
	Timestamp  time.Time
	Topic      string
	Percentage int
}

// Timeline returns a user's scores in chronological order, optionally for one topic.
func (r *HistoryRepository) Timeline(ctx context.Context, userID, topic string) ([]ScorePoint, error) {
	var points []ScorePoint
	q := r.db.WithContext(ctx).
		Model(&models.HistoryEntry{}).
		Select([]string{"timestamp", "topic", "percentage"}).
		Where("user_id = ?", userID)
	if topic != "" {
		q = q.Where("topic = ?", topic)
	}
	err := q.Order(clause.OrderByColumn{Column: byTimestamp}).Scan(&points).Error
	return points, err
}
