package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// PageLayout is a reusable visual template for pages. Layouts are not
// scoped to an exhibition; any page may reference any layout.
type PageLayout struct {
    ID                string         `gorm:"type:uuid;primaryKey" json:"id"`
    Name              string         `json:"name"`
    Data              datatypes.JSON `json:"data"`
    ThumbnailURL      string         `json:"thumbnailUrl,omitempty"`
    ScreenOrientation string         `json:"screenOrientation"`
    ModelID           *string        `gorm:"type:uuid" json:"modelId,omitempty"`
    CreatorID         string         `gorm:"type:uuid" json:"creatorId"`
    LastModifierID    string         `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt         time.Time      `json:"createdAt"`
    UpdatedAt         time.Time      `json:"modifiedAt"`
}

func (l *PageLayout) BeforeCreate(tx *gorm.DB) (err error) {
    if l.ID == "" {
        l.ID = uuid.NewString()
    }
    return nil
}

// SubLayout is a partial template that page layouts can embed.
type SubLayout struct {
    ID             string         `gorm:"type:uuid;primaryKey" json:"id"`
    Name           string         `json:"name"`
    Data           datatypes.JSON `json:"data"`
    CreatorID      string         `gorm:"type:uuid" json:"creatorId"`
    LastModifierID string         `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt      time.Time      `json:"createdAt"`
    UpdatedAt      time.Time      `json:"modifiedAt"`
}

func (l *SubLayout) BeforeCreate(tx *gorm.DB) (err error) {
    if l.ID == "" {
        l.ID = uuid.NewString()
    }
    return nil
}
