package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category is a subject-area grouping tutors belong to. Subjects keeps its
// insertion order, hence a JSON column rather than a join table.
type Category struct {
	ID       uint                        `json:"id" gorm:"primaryKey"`
	Name     string                      `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Subjects datatypes.JSONSlice[string] `json:"subjects"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
