// user.go - Defines the User model for the database

package models

import "time"

// User mirrors a Supabase auth user. ID is the Supabase "sub" claim.
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"` // Supabase user id
	Name      string    `json:"name"`                         // Display name
	Email     *string   `gorm:"uniqueIndex" json:"email"`     // NULL for anonymous and phone sign-ins
	Password  string    `gorm:"not null;default:''" json:"-"` // Supabase owns credentials; kept empty
	Avatar    string    `json:"avatar"`                       // Avatar URL
	CreatedAt time.Time `json:"createdAt"`                    // Set by gorm
	UpdatedAt time.Time `json:"updatedAt"`                    // Set by gorm

	Measurements []Measurement `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Diseases     []Disease     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Payments     []Payment     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// EmailAddress returns the stored email or "" when there is none.
func (u *User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
