package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/datatypes"
    "gorm.io/gorm"
)

type ExhibitionFloor struct {
    ID              string         `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID    string         `gorm:"type:uuid;index" json:"exhibitionId"`
    Name            string         `json:"name"`
    FloorPlanURL    string         `json:"floorPlanUrl,omitempty"`
    FloorPlanBounds datatypes.JSON `json:"floorPlanBounds,omitempty"`
    CreatorID       string         `gorm:"type:uuid" json:"creatorId"`
    LastModifierID  string         `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt       time.Time      `json:"createdAt"`
    UpdatedAt       time.Time      `json:"modifiedAt"`
}

func (f *ExhibitionFloor) BeforeCreate(tx *gorm.DB) (err error) {
    if f.ID == "" {
        f.ID = uuid.NewString()
    }
    return nil
}
