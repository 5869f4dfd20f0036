package models

import "time"

// OneTimeCode is an emailed login code usable once in place of a password.
type OneTimeCode struct {
    ID        uint   `gorm:"primaryKey"`
    UserIDRef uint   `gorm:"index"`
    Code      string `gorm:"uniqueIndex"`
    ExpiresAt time.Time
    UsedAt    *time.Time `gorm:"index"`
    CreatedAt time.Time
}
