package database

import (
    "log"

    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/config"
    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/utils"
)

func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
    var count int64
    if err := db.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
        return err
    }
    if count > 0 {
        return nil
    }

    hashed, err := utils.HashPassword(cfg.AdminPassword)
    if err != nil {
        return err
    }

    admin := models.User{
        Email:    cfg.AdminEmail,
        Password: hashed,
        FullName: cfg.AdminFullName,
        Role:     "admin",
        Active:   true,
    }
    if err := db.Create(&admin).Error; err != nil {
        return err
    }
    log.Println("Seeded initial admin:", cfg.AdminEmail)
    return nil
}
