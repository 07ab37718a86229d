package store

import (
	"errors"
	"fmt"

	"github.com/example/task-reminder-bot/domain/user"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user lookup misses.
var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user storage.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate finds the user with the given phone identifier, creating it
// with a prefix-derived default timezone when unseen. The second return
// value reports whether the user was created by this call.
func (r *UserRepository) GetOrCreate(phone string) (*user.User, bool, error) {
	var u user.User
	err := r.db.First(&u, "phone = ?", phone).Error
	if err == nil {
		return &u, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	u = user.User{Phone: phone, Timezone: user.GuessTimezone(phone)}
	if err := r.db.Create(&u).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, true, nil
}

// FindByPhone retrieves a user by phone identifier.
func (r *UserRepository) FindByPhone(phone string) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// SetTimezone updates the stored zone for a user. Single-field update so a
// concurrent task mutation cannot clobber it.
func (r *UserRepository) SetTimezone(userID uint, zone string) error {
	result := r.db.Model(&user.User{}).Where("id = ?", userID).Update("timezone", zone)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update timezone: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
