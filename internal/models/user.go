package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
	RoleAdmin   UserRole = "admin"
)

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// User mirrors an identity owned by the external auth provider. The row is
// created on first authenticated sight; role and status are mutable by admins
// and authoritative locally.
type User struct {
	ID            string     `json:"id" gorm:"primaryKey;size:255"`
	Name          string     `json:"name" gorm:"not null;size:100"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	EmailVerified bool       `json:"email_verified" gorm:"default:false"`
	Role          UserRole   `json:"role" gorm:"not null;default:student;size:20;index"`
	Status        UserStatus `json:"status" gorm:"not null;default:active;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student *Student `json:"student,omitempty" gorm:"foreignKey:UserID"`
	Tutor   *Tutor   `json:"tutor,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// Session carries the metadata of the resolved external session. It is
// attached to the request context by the auth middleware and never persisted.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}
