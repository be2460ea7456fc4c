package validator

import (
	"time"

	"github.com/tutorlane/marketplace-service/internal/models"
)

// ===== STUDENT PROFILE =====

// StudentProfileUpsertRequest creates or fully overwrites the caller's
// student profile.
type StudentProfileUpsertRequest struct {
	Class      string                `json:"class" validate:"required,max=50"`
	Institute  string                `json:"institute" validate:"required,max=200"`
	Address    string                `json:"address" validate:"required,max=300"`
	Phone      string                `json:"phone" validate:"required,max=30"`
	ProfilePic *string               `json:"profile_pic" validate:"omitempty,max=500"`
	Bio        *string               `json:"bio" validate:"omitempty,max=2000"`
	Group      *models.AcademicGroup `json:"group" validate:"omitempty,academic_group"`
}

// StudentProfilePatchRequest mutates only the fields present in the body.
type StudentProfilePatchRequest struct {
	Class      Optional[string]               `json:"class"`
	Institute  Optional[string]               `json:"institute"`
	Address    Optional[string]               `json:"address"`
	Phone      Optional[string]               `json:"phone"`
	ProfilePic Optional[string]               `json:"profile_pic"`
	Bio        Optional[string]               `json:"bio"`
	Group      Optional[models.AcademicGroup] `json:"group"`
}

// ===== TUTOR PROFILE =====

type TutorProfileUpsertRequest struct {
	Subject       string                `json:"subject" validate:"required,max=100"`
	Experience    string                `json:"experience" validate:"required,max=200"`
	Address       string                `json:"address" validate:"required,max=300"`
	Phone         string                `json:"phone" validate:"required,max=30"`
	ProfilePic    *string               `json:"profile_pic" validate:"omitempty,max=500"`
	Bio           *string               `json:"bio" validate:"omitempty,max=2000"`
	Institute     *string               `json:"institute" validate:"omitempty,max=200"`
	Group         *models.AcademicGroup `json:"group" validate:"omitempty,academic_group"`
	CategoryID    uint                  `json:"category_id" validate:"required"`
	PricePerDay   float64               `json:"price_per_day" validate:"required,gt=0"`
	IsAvailable   *bool                 `json:"is_available"`
	AvailableFrom *string               `json:"available_from" validate:"omitempty,time_of_day"`
	AvailableTo   *string               `json:"available_to" validate:"omitempty,time_of_day"`
}

type TutorProfilePatchRequest struct {
	Subject       Optional[string]               `json:"subject"`
	Experience    Optional[string]               `json:"experience"`
	Address       Optional[string]               `json:"address"`
	Phone         Optional[string]               `json:"phone"`
	ProfilePic    Optional[string]               `json:"profile_pic"`
	Bio           Optional[string]               `json:"bio"`
	Institute     Optional[string]               `json:"institute"`
	Group         Optional[models.AcademicGroup] `json:"group"`
	CategoryID    Optional[uint]                 `json:"category_id"`
	PricePerDay   Optional[float64]              `json:"price_per_day"`
	AvailableFrom Optional[string]               `json:"available_from"`
	AvailableTo   Optional[string]               `json:"available_to"`
}

// AvailabilityUpdateRequest toggles the availability flag; the window fields
// follow the patch presence rule.
type AvailabilityUpdateRequest struct {
	IsAvailable   *bool            `json:"is_available" validate:"required"`
	AvailableFrom Optional[string] `json:"available_from"`
	AvailableTo   Optional[string] `json:"available_to"`
}

// ===== BOOKINGS & REVIEWS =====

type BookingCreateRequest struct {
	TutorID  uint      `json:"tutor_id" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Time     string    `json:"time" validate:"required,time_of_day"`
	Duration int       `json:"duration" validate:"required,min=1,max=24"`
	Notes    *string   `json:"notes" validate:"omitempty,max=1000"`
}

type ReviewCreateRequest struct {
	BookingID uint    `json:"booking_id" validate:"required"`
	Rating    int     `json:"rating" validate:"required,rating"`
	Comment   *string `json:"comment" validate:"omitempty,max=2000"`
}

// ===== ADMIN =====

type CategoryCreateRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Subjects []string `json:"subjects" validate:"omitempty,dive,required,max=100"`
}

type CategoryUpdateRequest struct {
	Name     Optional[string]   `json:"name"`
	Subjects Optional[[]string] `json:"subjects"`
}

type UserRoleUpdateRequest struct {
	Role models.UserRole `json:"role" validate:"required,user_role"`
}

type UserStatusUpdateRequest struct {
	Status models.UserStatus `json:"status" validate:"required,user_status"`
}

type FeaturedUpdateRequest struct {
	IsFeatured *bool `json:"is_featured" validate:"required"`
}
