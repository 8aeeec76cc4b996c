package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// Visitor session states.
const (
    VisitorSessionStateActive   = "ACTIVE"
    VisitorSessionStateComplete = "COMPLETE"
)

// VisitorSession is one visit instance. Its visitors, variables and
// visited device groups live in join rows owned by the session; the
// rows are converged to caller-supplied sets, never created directly.
type VisitorSession struct {
    ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
    ExhibitionID   string    `gorm:"type:uuid;index" json:"exhibitionId"`
    State          string    `json:"state"`
    CreatorID      string    `gorm:"type:uuid" json:"creatorId"`
    LastModifierID string    `gorm:"type:uuid" json:"lastModifierId"`
    CreatedAt      time.Time `json:"createdAt"`
    UpdatedAt      time.Time `json:"modifiedAt"`
}

func (s *VisitorSession) BeforeCreate(tx *gorm.DB) (err error) {
    if s.ID == "" {
        s.ID = uuid.NewString()
    }
    return nil
}

type VisitorSessionVisitor struct {
    ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
    SessionID string    `gorm:"type:uuid;index" json:"sessionId"`
    VisitorID string    `gorm:"type:uuid;index" json:"visitorId"`
    CreatedAt time.Time `json:"createdAt"`
}

func (v *VisitorSessionVisitor) BeforeCreate(tx *gorm.DB) (err error) {
    if v.ID == "" {
        v.ID = uuid.NewString()
    }
    return nil
}

// VisitorSessionVariable is a named key/value pair; Name is unique
// within one session.
type VisitorSessionVariable struct {
    ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
    SessionID string    `gorm:"type:uuid;index;uniqueIndex:idx_session_variable_name" json:"sessionId"`
    Name      string    `gorm:"uniqueIndex:idx_session_variable_name" json:"name"`
    Value     string    `json:"value"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"modifiedAt"`
}

func (v *VisitorSessionVariable) BeforeCreate(tx *gorm.DB) (err error) {
    if v.ID == "" {
        v.ID = uuid.NewString()
    }
    return nil
}

// VisitorSessionVisitedDeviceGroup records that a session visited a
// device group at a point in time.
type VisitorSessionVisitedDeviceGroup struct {
    ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
    SessionID     string    `gorm:"type:uuid;index" json:"sessionId"`
    DeviceGroupID string    `gorm:"type:uuid;index" json:"deviceGroupId"`
    EnteredAt     time.Time `json:"enteredAt"`
    CreatedAt     time.Time `json:"createdAt"`
}

func (v *VisitorSessionVisitedDeviceGroup) BeforeCreate(tx *gorm.DB) (err error) {
    if v.ID == "" {
        v.ID = uuid.NewString()
    }
    return nil
}
