package models

import (
    "time"

    "gorm.io/gorm"
)

// Meal time slots.
const (
    MealBreakfast = "BREAKFAST"
    MealLunch     = "LUNCH"
    MealDinner    = "DINNER"
)

// Child responses to an offered meal.
const (
    ResponseFinished  = "FINISHED"
    ResponsePartially = "PARTIALLY"
    ResponseRefused   = "REFUSED"
)

type MealLog struct {
    gorm.Model
    ChildID       uint `gorm:"index;not null"` // FK → children.id
    Child         Child
    PhotoURL      string
    FoodName      string    `gorm:"not null"`
    MealTime      string    `gorm:"size:10;not null"`
    ChildResponse string    `gorm:"size:10;not null"`
    Notes         string    `gorm:"type:text"`
    LoggedAt      time.Time `gorm:"index;not null"`
}

func ValidMealTime(v string) bool {
    switch v {
    case MealBreakfast, MealLunch, MealDinner:
        return true
    }
    return false
}

func ValidChildResponse(v string) bool {
    switch v {
    case ResponseFinished, ResponsePartially, ResponseRefused:
        return true
    }
    return false
}
