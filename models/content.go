package models

import "gorm.io/gorm"

// Content statuses. Non-admin readers only see PUBLISHED rows.
const (
    ContentDraft     = "DRAFT"
    ContentPublished = "PUBLISHED"
    ContentArchived  = "ARCHIVED"
)

func ValidContentStatus(v string) bool {
    switch v {
    case ContentDraft, ContentPublished, ContentArchived:
        return true
    }
    return false
}

type Recipe struct {
    gorm.Model
    AuthorID    uint   `gorm:"index;not null"`
    Title       string `gorm:"size:255;not null"`
    Description string `gorm:"type:text"`
    Ingredients string `gorm:"type:text"`
    Steps       string `gorm:"type:text"`
    ImageURL    string
    AgeRange    string `gorm:"size:20"` // suitable age in months, e.g. "6-12"
    Status      string `gorm:"size:10;default:'DRAFT'"`
}

type Article struct {
    gorm.Model
    AuthorID uint   `gorm:"index;not null"`
    Title    string `gorm:"size:255;not null"`
    Body     string `gorm:"type:text"`
    ImageURL string
    Status   string `gorm:"size:10;default:'DRAFT'"`
}
