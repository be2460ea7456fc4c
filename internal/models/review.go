package models

import (
	"time"
)

// Review is created exactly once per completed booking, by the booking's own
// student. The unique index on BookingID backstops the one-shot rule.
type Review struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	StudentID uint    `json:"student_id" gorm:"not null;index"`
	TutorID   uint    `json:"tutor_id" gorm:"not null;index"`
	BookingID uint    `json:"booking_id" gorm:"uniqueIndex;not null"`
	Rating    int     `json:"rating" gorm:"not null"`
	Comment   *string `json:"comment" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Tutor   *Tutor   `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
}

func (Review) TableName() string {
	return "reviews"
}
