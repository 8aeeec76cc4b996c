package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

type DeviceModel struct {
    ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID    string    `gorm:"type:uuid;index" json:"exhibitionId"`
    Manufacturer    string    `json:"manufacturer"`
    Model           string    `json:"model"`
    ScreenWidth     int       `json:"screenWidth"`
    ScreenHeight    int       `json:"screenHeight"`
    CapabilityTouch bool      `json:"capabilityTouch"`
    CreatorID       string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID  string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt       time.Time `json:"createdAt"`
    UpdatedAt       time.Time `json:"modifiedAt"`
}

func (m *DeviceModel) BeforeCreate(tx *gorm.DB) (err error) {
    if m.ID == "" {
        m.ID = uuid.NewString()
    }
    return nil
}
