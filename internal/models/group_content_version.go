package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Rollout statuses of a group content version.
const (
    GroupContentVersionStatusNotStarted = "NOTSTARTED"
    GroupContentVersionStatusInProgress = "INPROGRESS"
    GroupContentVersionStatusReady      = "READY"
)

// GroupContentVersion binds one content version to one device group
// with a rollout status.
type GroupContentVersion struct {
    ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID     string    `gorm:"type:uuid;index" json:"exhibitionId"`
    Name             string    `json:"name"`
    Status           string    `json:"status"`
    ContentVersionID string    `gorm:"type:uuid;index" json:"contentVersionId"`
    DeviceGroupID    string    `gorm:"type:uuid;index" json:"deviceGroupId"`
    CreatorID        string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID   string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt        time.Time `json:"createdAt"`
    UpdatedAt        time.Time `json:"modifiedAt"`
}

func (v *GroupContentVersion) BeforeCreate(tx *gorm.DB) (err error) {
    if v.ID == "" {
        v.ID = uuid.NewString()
    }
    return nil
}
