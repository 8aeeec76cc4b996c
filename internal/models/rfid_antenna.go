package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// RfidAntenna is a tag reader antenna. It may be placed in a room
// and/or attached to a device group for session start/end detection.
type RfidAntenna struct {
    ID                           string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID                 string    `gorm:"type:uuid;index" json:"exhibitionId"`
    RoomID                       *string   `gorm:"type:uuid;index" json:"roomId,omitempty"`
    GroupID                      *string   `gorm:"type:uuid;index" json:"groupId,omitempty"`
    Name                         string    `json:"name"`
    ReaderID                     string    `json:"readerId"`
    AntennaNumber                int       `json:"antennaNumber"`
    LocationX                    *float64  `json:"locationX,omitempty"`
    LocationY                    *float64  `json:"locationY,omitempty"`
    VisitorSessionStartThreshold int       `json:"visitorSessionStartThreshold"`
    VisitorSessionEndThreshold   int       `json:"visitorSessionEndThreshold"`
    CreatorID                    string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID               string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt                    time.Time `json:"createdAt"`
    UpdatedAt                    time.Time `json:"modifiedAt"`
}

func (a *RfidAntenna) BeforeCreate(tx *gorm.DB) (err error) {
    if a.ID == "" {
        a.ID = uuid.NewString()
    }
    return nil
}
