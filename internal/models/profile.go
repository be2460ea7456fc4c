package models

import (
	"time"
)

type AcademicGroup string

const (
	GroupNone            AcademicGroup = "NONE"
	GroupScience         AcademicGroup = "SCIENCE"
	GroupHumanities      AcademicGroup = "HUMANITIES"
	GroupBusinessStudies AcademicGroup = "BUSINESS_STUDIES"
)

// Valid reports whether the value is one of the known academic groups.
func (g AcademicGroup) Valid() bool {
	switch g {
	case GroupNone, GroupScience, GroupHumanities, GroupBusinessStudies:
		return true
	}
	return false
}

// Student is the student-side profile, at most one per user.
type Student struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	UserID     string        `json:"user_id" gorm:"uniqueIndex;not null;size:255"`
	Class      string        `json:"class" gorm:"not null;size:50"`
	Institute  string        `json:"institute" gorm:"not null;size:200"`
	Address    string        `json:"address" gorm:"not null;size:300"`
	Phone      string        `json:"phone" gorm:"not null;size:30"`
	ProfilePic *string       `json:"profile_pic" gorm:"size:500"`
	Bio        *string       `json:"bio" gorm:"type:text"`
	Group      AcademicGroup `json:"group" gorm:"not null;default:NONE;size:30"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Student) TableName() string {
	return "students"
}

// Tutor is the tutor-side profile, at most one per user. IsFeatured is
// admin-only; the availability flag and window are settable by the owner or
// an admin.
type Tutor struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	UserID        string        `json:"user_id" gorm:"uniqueIndex;not null;size:255"`
	Subject       string        `json:"subject" gorm:"not null;size:100;index"`
	Experience    string        `json:"experience" gorm:"not null;size:200"`
	Address       string        `json:"address" gorm:"not null;size:300"`
	Phone         string        `json:"phone" gorm:"not null;size:30"`
	ProfilePic    *string       `json:"profile_pic" gorm:"size:500"`
	Bio           *string       `json:"bio" gorm:"type:text"`
	Institute     *string       `json:"institute" gorm:"size:200"`
	Group         AcademicGroup `json:"group" gorm:"not null;default:NONE;size:30"`
	CategoryID    uint          `json:"category_id" gorm:"not null;index"`
	PricePerDay   float64       `json:"price_per_day" gorm:"not null"`
	IsFeatured    bool          `json:"is_featured" gorm:"not null;default:false;index"`
	IsAvailable   bool          `json:"is_available" gorm:"not null;default:true;index"`
	AvailableFrom *string       `json:"available_from" gorm:"size:20"`
	AvailableTo   *string       `json:"available_to" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:TutorID"`

	// Computed fields (not stored)
	AvgRating    float64 `json:"avg_rating" gorm:"-"`
	ReviewsCount int     `json:"reviews_count" gorm:"-"`
}

func (Tutor) TableName() string {
	return "tutors"
}
