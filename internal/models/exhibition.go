package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Exhibition is the root tenant scope. Every other entity belongs to
// exactly one exhibition, directly or through its parents.
type Exhibition struct {
    ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
    Name           string    `json:"name"`
    CreatorID      string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt      time.Time `json:"createdAt"`
    UpdatedAt      time.Time `json:"modifiedAt"`
}

func (e *Exhibition) BeforeCreate(tx *gorm.DB) (err error) {
    if e.ID == "" {
        e.ID = uuid.NewString()
    }
    return nil
}
