package models

import (
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a scheduled engagement between one student and one tutor.
// Status moves CONFIRMED -> COMPLETED or CONFIRMED -> CANCELLED, both
// terminal; any transition is a conditional update guarded on CONFIRMED.
type Booking struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	StudentID uint          `json:"student_id" gorm:"not null;index"`
	TutorID   uint          `json:"tutor_id" gorm:"not null;index"`
	Date      time.Time     `json:"date" gorm:"not null;index"`
	Time      string        `json:"time" gorm:"not null;size:20"`
	Duration  int           `json:"duration" gorm:"not null"`
	Status    BookingStatus `json:"status" gorm:"not null;default:CONFIRMED;size:20;index"`
	Notes     *string       `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Tutor   *Tutor   `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
	Review  *Review  `json:"review,omitempty" gorm:"foreignKey:BookingID"`
}

func (Booking) TableName() string {
	return "bookings"
}
