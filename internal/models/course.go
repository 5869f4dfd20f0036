package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

type Course struct {
    ID        string `gorm:"type:uuid;primaryKey"`
    Name      string `gorm:"uniqueIndex"`
    OwnerRef  string `gorm:"index"` // UserID of the teacher who created it
    Active    bool
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (co *Course) BeforeCreate(tx *gorm.DB) (err error) {
    if co.ID == "" {
        co.ID = uuid.NewString()
    }
    return nil
}

// Enrollment maps a student to a course they take.
type Enrollment struct {
    ID           uint   `gorm:"primaryKey"`
    StudentIDRef string `gorm:"uniqueIndex:uniq_student_course"`
    CourseIDRef  string `gorm:"uniqueIndex:uniq_student_course"`
    CreatedAt    time.Time
}
