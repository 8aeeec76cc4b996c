package service

import (
    "testing"

    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"

    "github.com/Metatavu/muisti-api/internal/models"
)

// openTestDB opens a fresh in-memory database with the full schema.
// One connection only, so the memory database is not cloned per
// pooled connection.
func openTestDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
        Logger: logger.Default.LogMode(logger.Silent),
    })
    require.NoError(t, err)
    sqlDB, err := db.DB()
    require.NoError(t, err)
    sqlDB.SetMaxOpenConns(1)

    require.NoError(t, db.AutoMigrate(
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
    ))
    return db
}

func createExhibition(t *testing.T, db *gorm.DB, name string) *models.Exhibition {
    t.Helper()
    exhibition := models.Exhibition{Name: name, CreatorID: "actor", LastModifierID: "actor"}
    require.NoError(t, db.Create(&exhibition).Error)
    return &exhibition
}

func createVisitor(t *testing.T, db *gorm.DB, exhibitionID, email string) *models.Visitor {
    t.Helper()
    visitor := models.Visitor{ExhibitionID: exhibitionID, Email: email, CreatorID: "actor", LastModifierID: "actor"}
    require.NoError(t, db.Create(&visitor).Error)
    return &visitor
}

func createRoom(t *testing.T, db *gorm.DB, exhibitionID, name string) *models.ExhibitionRoom {
    t.Helper()
    floor := models.ExhibitionFloor{ExhibitionID: exhibitionID, Name: name + " floor", CreatorID: "actor", LastModifierID: "actor"}
    require.NoError(t, db.Create(&floor).Error)
    room := models.ExhibitionRoom{ExhibitionID: exhibitionID, FloorID: floor.ID, Name: name, CreatorID: "actor", LastModifierID: "actor"}
    require.NoError(t, db.Create(&room).Error)
    return &room
}
