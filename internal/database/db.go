package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/config"
    "github.com/Metatavu/muisti-api/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
    dsn := fmt.Sprintf(
        "host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
        cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
    )
    return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &models.User{},
        &models.Exhibition{},
        &models.ExhibitionFloor{},
        &models.ExhibitionRoom{},
        &models.DeviceGroup{},
        &models.DeviceModel{},
        &models.ExhibitionDevice{},
        &models.RfidAntenna{},
        &models.ContentVersion{},
        &models.ContentVersionRoom{},
        &models.GroupContentVersion{},
        &models.PageLayout{},
        &models.SubLayout{},
        &models.ExhibitionPage{},
        &models.Visitor{},
        &models.VisitorSession{},
        &models.VisitorSessionVisitor{},
        &models.VisitorSessionVariable{},
        &models.VisitorSessionVisitedDeviceGroup{},
    )
}
