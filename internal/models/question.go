package models

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Question is one document of a topic's question collection.
type Question struct {
	Collection  string  `gorm:"primaryKey;size:64"`
	ID          string  `gorm:"primaryKey;size:64"`
	Position    int     `gorm:"not null"`
	Prompt      string  `gorm:"not null"`
	OptionKeys  Strings `gorm:"not null"`
	OptionTexts Strings `gorm:"not null"`
	Correct     string  `gorm:"size:16"`
}

// Strings is a text[] column on postgres and array-literal text elsewhere.
type Strings []string

func (s Strings) Value() (driver.Value, error) {
	return pq.StringArray(s).Value()
}

func (s *Strings) Scan(src any) error {
	return (*pq.StringArray)(s).Scan(src)
}

func (Strings) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
