package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

// UserRepository stores accounts and their profile metadata.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser hashes the password and stores the account together with its
// profile metadata document.
func (r *UserRepository) CreateUser(ctx context.Context, email, password, firstName, lastName string, profile func(*models.User) *models.ProfileMetadata) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     normalizeEmail(email),
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailTaken
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if profile == nil {
			return nil
		}
		return tx.Create(profile(user)).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email))
	return &user, result.Error
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	return &user, result.Error
}

func (r *UserRepository) GetProfile(ctx context.Context, path string) (*models.ProfileMetadata, error) {
	var profile models.ProfileMetadata
	result := r.db.WithContext(ctx).First(&profile, "path = ?", path)
	return &profile, result.Error
}

func (r *UserRepository) UpdateUser(ctx context.Context, userID, firstName, lastName string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{"first_name": firstName, "last_name": lastName}).Error
}

func (r *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", userID).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
