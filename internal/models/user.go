package models

import (
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
)

// User is an API actor (content editor or device account). Its id is
// stamped as creator/last-modifier on every mutation it performs.
type User struct {
    ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
    Email     string    `gorm:"uniqueIndex" json:"email"`
    Password  string    `json:"-"`
    FullName  string    `json:"fullName"`
    Role      string    `json:"role"`
    Active    bool      `json:"active"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"modifiedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
    if u.ID == "" {
        u.ID = uuid.NewString()
    }
    return nil
}
