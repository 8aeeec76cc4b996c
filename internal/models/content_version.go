package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// ContentVersion is a named, language-tagged bundle of page content
// applicable to a set of rooms.
type ContentVersion struct {
    ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID   string    `gorm:"type:uuid;index" json:"exhibitionId"`
    Name           string    `json:"name"`
    Language       string    `json:"language"`
    CreatorID      string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt      time.Time `json:"createdAt"`
    UpdatedAt      time.Time `json:"modifiedAt"`
}

func (v *ContentVersion) BeforeCreate(tx *gorm.DB) (err error) {
    if v.ID == "" {
        v.ID = uuid.NewString()
    }
    return nil
}

// ContentVersionRoom joins a content version to one of its rooms.
// Rows are managed exclusively through the content version endpoints;
// they have no endpoint of their own.
type ContentVersionRoom struct {
    ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
    ContentVersionID string    `gorm:"type:uuid;index" json:"contentVersionId"`
    RoomID           string    `gorm:"type:uuid;index" json:"roomId"`
    CreatedAt        time.Time `json:"createdAt"`
}

func (r *ContentVersionRoom) BeforeCreate(tx *gorm.DB) (err error) {
    if r.ID == "" {
        r.ID = uuid.NewString()
    }
    return nil
}
