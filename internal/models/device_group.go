package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Visitor session start strategies for a device group.
const (
    SessionStartStrategyOthersBlock = "OTHERSBLOCK"
    SessionStartStrategyEndOthers   = "ENDOTHERS"
)

// DeviceGroup clusters devices in one room and carries the visitor
// session policy shared by all of them.
type DeviceGroup struct {
    ID                          string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID                string    `gorm:"type:uuid;index" json:"exhibitionId"`
    RoomID                      string    `gorm:"type:uuid;index" json:"roomId"`
    Name                        string    `json:"name"`
    AllowVisitorSessionCreation bool      `json:"allowVisitorSessionCreation"`
    VisitorSessionEndTimeout    int64     `json:"visitorSessionEndTimeout"`
    VisitorSessionStartStrategy string    `json:"visitorSessionStartStrategy"`
    IndexPageTimeout            *int64    `json:"indexPageTimeout,omitempty"`
    CreatorID                   string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID              string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt                   time.Time `json:"createdAt"`
    UpdatedAt                   time.Time `json:"modifiedAt"`
}

func (g *DeviceGroup) BeforeCreate(tx *gorm.DB) (err error) {
    if g.ID == "" {
        g.ID = uuid.NewString()
    }
    return nil
}
