package model

import (
	"time"
)

// Roles assignable to a user. Role changes happen only through direct
// administrative action on the database, never through the API.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Authentication providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a registered identity.
//
// PasswordHash is empty for externally-authenticated identities
// (Provider != local). The verification and reset tokens are single
// use: they are cleared when consumed, and a reset token whose expiry
// has passed is treated as absent even if still stored.
type User struct {
	ID                     uint       `json:"id" gorm:"primaryKey"`
	Email                  string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash           string     `json:"-" gorm:"size:255"`
	FirstName              string     `json:"firstName" gorm:"size:100;not null"`
	LastName               string     `json:"lastName" gorm:"size:100;not null"`
	ProfileImage           string     `json:"profileImage,omitempty" gorm:"size:255"`
	Role                   string     `json:"role" gorm:"size:50;not null;default:'user'"`
	IsEmailVerified        bool       `json:"isEmailVerified" gorm:"not null;default:false"`
	EmailVerificationToken *string    `json:"-" gorm:"size:255;index"`
	PasswordResetToken     *string    `json:"-" gorm:"size:255;index"`
	PasswordResetExpires   *time.Time `json:"-"`
	GoogleID               *string    `json:"-" gorm:"size:255;uniqueIndex"`
	Provider               string     `json:"provider" gorm:"size:50;not null;default:'local'"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// PublicUser is the compact user shape embedded in auth responses.
type PublicUser struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         string `json:"role"`
}

// Public returns the compact representation of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
	}
}
