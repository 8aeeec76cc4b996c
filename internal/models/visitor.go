package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Visitor is a physical person inside one exhibition, linked to an
// identity-provider user and optionally to an RFID tag.
type Visitor struct {
    ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID   string    `gorm:"type:uuid;index" json:"exhibitionId"`
    Email          string    `json:"email"`
    TagID          string    `gorm:"index" json:"tagId,omitempty"`
    UserID         string    `gorm:"type:uuid" json:"userId,omitempty"`
    CreatorID      string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt      time.Time `json:"createdAt"`
    UpdatedAt      time.Time `json:"modifiedAt"`
}

func (v *Visitor) BeforeCreate(tx *gorm.DB) (err error) {
    if v.ID == "" {
        v.ID = uuid.NewString()
    }
    return nil
}
