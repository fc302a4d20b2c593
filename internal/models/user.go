package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// ProfileMetadata is written once when an account is created.
type ProfileMetadata struct {
	Path      string    `gorm:"primaryKey;size:255" json:"path"` // artifacts/{appId}/users/{uid}/profile/metadata
	AppID     string    `gorm:"index;size:64" json:"appId"`
	UserID    string    `gorm:"index;size:36" json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProfileMetadata) TableName() string { return "profile_metadata" }
