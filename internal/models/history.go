package models

import "time"

// HistoryEntry is one finished quiz attempt.
type HistoryEntry struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"index;size:36;not null" json:"userId"`
	Topic      string    `gorm:"not null" json:"topic"`
	Date       string    `json:"date"`
	Score      string    `json:"score"`
	Percentage int       `json:"percentage"`
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

func (HistoryEntry) TableName() string { return "mcq_history" }
