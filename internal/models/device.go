package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Screen orientations supported by exhibition devices.
const (
    ScreenOrientationPortrait  = "PORTRAIT"
    ScreenOrientationLandscape = "LANDSCAPE"
)

// ExhibitionDevice is a single physical device in a device group.
// IndexPageID optionally points at the page shown when idle.
type ExhibitionDevice struct {
    ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID      string    `gorm:"type:uuid;index" json:"exhibitionId"`
    GroupID           string    `gorm:"type:uuid;index" json:"groupId"`
    ModelID           string    `gorm:"type:uuid" json:"modelId"`
    Name              string    `json:"name"`
    LocationX         *float64  `json:"locationX,omitempty"`
    LocationY         *float64  `json:"locationY,omitempty"`
    ScreenOrientation string    `json:"screenOrientation"`
    IndexPageID       *string   `gorm:"type:uuid" json:"indexPageId,omitempty"`
    CreatorID         string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID    string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt         time.Time `json:"createdAt"`
    UpdatedAt         time.Time `json:"modifiedAt"`
}

func (d *ExhibitionDevice) BeforeCreate(tx *gorm.DB) (err error) {
    if d.ID == "" {
        d.ID = uuid.NewString()
    }
    return nil
}
