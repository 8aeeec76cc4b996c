package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// ExhibitionRoom is a physical room on one floor. GeoShape holds an
// optional GeoJSON polygon describing the room outline.
type ExhibitionRoom struct {
    ID             string         `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID   string         `gorm:"type:uuid;index" json:"exhibitionId"`
    FloorID        string         `gorm:"type:uuid;index" json:"floorId"`
    Name           string         `json:"name"`
    GeoShape       datatypes.JSON `json:"geoShape,omitempty"`
    CreatorID      string         `gorm:"type:uuid" json:"creatorId"`
    LastModifierID string         `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt      time.Time      `json:"createdAt"`
    UpdatedAt      time.Time      `json:"modifiedAt"`
}

func (r *ExhibitionRoom) BeforeCreate(tx *gorm.DB) (err error) {
    if r.ID == "" {
        r.ID = uuid.NewString()
    }
    return nil
}
