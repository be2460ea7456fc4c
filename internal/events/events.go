package events

import "time"

// Event types carried on the marketplace events topic.
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
	ReviewCreated    = "review.created"
	UserDeleted      = "user.deleted"
)

// MetadataEventType is the message metadata key holding the event type.
const MetadataEventType = "event_type"

type BookingEvent struct {
	BookingID uint      `json:"booking_id"`
	StudentID uint      `json:"student_id"`
	TutorID   uint      `json:"tutor_id"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
}

type ReviewEvent struct {
	ReviewID  uint `json:"review_id"`
	BookingID uint `json:"booking_id"`
	StudentID uint `json:"student_id"`
	TutorID   uint `json:"tutor_id"`
	Rating    int  `json:"rating"`
}

type UserEvent struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
