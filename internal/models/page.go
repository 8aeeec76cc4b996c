package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// ExhibitionPage is one page of content shown on a device. Resources,
// event triggers and transitions are structured blobs interpreted by
// the device client, not relationally modeled.
type ExhibitionPage struct {
    ID               string         `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID     string         `gorm:"type:uuid;index" json:"exhibitionId"`
    DeviceID         string         `gorm:"type:uuid;index" json:"deviceId"`
    ContentVersionID string         `gorm:"type:uuid;index" json:"contentVersionId"`
    LayoutID         string         `gorm:"type:uuid" json:"layoutId"`
    Name             string         `json:"name"`
    Resources        datatypes.JSON `json:"resources"`
    EventTriggers    datatypes.JSON `json:"eventTriggers"`
    EnterTransitions datatypes.JSON `json:"enterTransitions"`
    ExitTransitions  datatypes.JSON `json:"exitTransitions"`
    OrderNumber      int            `json:"orderNumber"`
    CreatorID        string         `gorm:"type:uuid" json:"creatorId"`
    LastModifierID   string         `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt        time.Time      `json:"createdAt"`
    UpdatedAt        time.Time      `json:"modifiedAt"`
}

func (p *ExhibitionPage) BeforeCreate(tx *gorm.DB) (err error) {
    if p.ID == "" {
        p.ID = uuid.NewString()
    }
    return nil
}
