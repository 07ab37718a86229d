// Package user holds the user entity and the default-timezone heuristic.
package user

import "time"

// User is an end user identified by a phone-like string (the messaging
// provider's sender id). Users are created on first contact and never
// deleted. The timezone defaults from the phone prefix and is mutable via
// the timezone command.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Phone     string    `gorm:"size:64;uniqueIndex;not null" json:"phone"`
	Timezone  string    `gorm:"size:64;not null;default:UTC" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Location resolves the stored zone name, falling back to UTC if the stored
// value no longer loads (e.g. the host tzdata shrank).
func (u *User) Location() *time.Location {
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
