package models

import "time"

type Assignment struct {
    ID          uint   `gorm:"primaryKey"`
    CourseIDRef string `gorm:"index"`
    Name        string
    Deadline    *time.Time
    CreatedAt   time.Time
    UpdatedAt   time.Time
}
