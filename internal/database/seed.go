package database

import (
    "log"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/zaqqye/peergrade_backend_v1/internal/config"
    "github.com/zaqqye/peergrade_backend_v1/internal/models"
    "github.com/zaqqye/peergrade_backend_v1/internal/utils"
)

// SeedTeacher creates the initial teacher account when no teacher exists
// yet, so a fresh deployment can be logged into.
func SeedTeacher(db *gorm.DB, cfg *config.Config) error {
    var count int64
    if err := db.Model(&models.User{}).Where("is_teacher = ?", true).Count(&count).Error; err != nil {
        return err
    }
    if count > 0 {
        return nil
    }

    hashed, err := utils.HashPassword(cfg.TeacherPassword)
    if err != nil {
        return err
    }
    teacher := models.User{
        UserID:    uuid.NewString(),
        FullName:  cfg.TeacherFullName,
        Email:     cfg.TeacherEmail,
        Password:  hashed,
        IsTeacher: true,
        Active:    true,
    }
    if err := db.Create(&teacher).Error; err != nil {
        return err
    }
    log.Println("Seeded initial teacher:", teacher.Email)
    return nil
}
