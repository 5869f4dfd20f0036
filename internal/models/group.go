package models

import "time"

// UnassignedGroupID marks GroupAssignment rows whose student has no group yet.
// Deleting a group moves its members back to this value, never to a dangling id.
const UnassignedGroupID int64 = -1

type Group struct {
    ID              int64 `gorm:"primaryKey"`
    Name            string
    AssignmentIDRef uint `gorm:"index"`
    CreatedAt       time.Time
    UpdatedAt       time.Time
}

// GroupAssignment records which group a student occupies for an assignment.
// Exactly one row exists per (student, assignment); moves update it in place.
type GroupAssignment struct {
    ID              uint   `gorm:"primaryKey"`
    StudentIDRef    string `gorm:"uniqueIndex:uniq_student_assignment"`
    AssignmentIDRef uint   `gorm:"uniqueIndex:uniq_student_assignment"`
    GroupIDRef      int64  `gorm:"index;default:-1"`
    CreatedAt       time.Time
    UpdatedAt       time.Time
}
