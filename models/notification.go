package models

import "time"

// Alert kinds.
const (
    AlertReportReady  = "report.ready"
    AlertForumComment = "forum.comment"
)

type Alert struct {
    ID        uint      `gorm:"primaryKey"`
    UserID    uint      `gorm:"index"`
    Kind      string    `gorm:"size:20"`
    Message   string    `gorm:"type:text"`
    Read      bool      `gorm:"default:false"`
    CreatedAt time.Time
}

// UserDevice is a registered push target (one SNS endpoint per device token).
type UserDevice struct {
    ID          uint   `gorm:"primaryKey"`
    UserID      uint   `gorm:"index"`
    Platform    string `gorm:"size:16"` // "android" | "ios"
    TokenHash   string `gorm:"size:64"`
    EndpointARN string `gorm:"size:256"`
    Enabled     bool   `gorm:"default:true"`
    UpdatedAt   time.Time
    CreatedAt   time.Time
}
