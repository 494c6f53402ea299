package models

import (
    "gorm.io/gorm"
)

// Child is a feeding profile owned by exactly one parent account.
type Child struct {
    gorm.Model
    UserID    uint   `gorm:"index;not null"` // FK → users.id (owning parent)
    Name      string `gorm:"not null"`
    Gender    string `gorm:"size:10"` // "MALE" | "FEMALE"
    AgeMonths int
    Height    float64 // cm
    Weight    float64 // kg

    FavoriteFood     string
    HatedFood        string
    Allergies        string `gorm:"type:text"` // comma-sep
    RefusalBehaviors string `gorm:"type:text"` // comma-sep

    MealDuration      string `gorm:"size:20"` // "UNDER_15" | "15_30" | "OVER_30"
    TexturePreference string `gorm:"size:20"` // "PUREED" | "SOFT" | "NORMAL"
    EatingPattern     string `gorm:"size:20"` // appetite-change bucket
    WeightEnergy      string `gorm:"size:20"` // weight/energy bucket
}
