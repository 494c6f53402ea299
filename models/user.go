package models

import (
    "time"

    "gorm.io/gorm"
)

const (
    RoleAdmin = "ADMIN"
    RoleUser  = "USER"
)

type User struct {
    gorm.Model
    Email          string `gorm:"uniqueIndex;not null"`
    Password       string `gorm:"not null"`
    FullName       string
    Role           string `gorm:"size:10;default:'USER'"`
    ProfilePicture string
    MFAEnabled     bool
    MFACode        string
    Disabled       bool
}

// PasswordReset holds a pending reset code. Code is globally unique so the
// code alone identifies the account; generation retries on collision.
type PasswordReset struct {
    ID        uint   `gorm:"primaryKey"`
    UserID    uint   `gorm:"index;not null"`
    Code      string `gorm:"size:12;uniqueIndex;not null"`
    ExpiresAt time.Time
    CreatedAt time.Time
}
