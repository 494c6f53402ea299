package models

import (
    "time"

    "gorm.io/gorm"
)

// Report types.
const (
    ReportDaily   = "DAILY"
    ReportWeekly  = "WEEKLY"
    ReportMonthly = "MONTHLY"
)

// Report statuses. VIEWED is set automatically on the owner's first read;
// ARCHIVED is a valid terminal state with no transition endpoint.
const (
    ReportGenerated = "GENERATED"
    ReportViewed    = "VIEWED"
    ReportArchived  = "ARCHIVED"
)

func ValidReportType(v string) bool {
    switch v {
    case ReportDaily, ReportWeekly, ReportMonthly:
        return true
    }
    return false
}

type ReportSummary struct {
    TotalMeals         int    `json:"total_meals"`
    MealsFinished      int    `json:"meals_finished"`
    MealsPartial       int    `json:"meals_partial"`
    MealsRefused       int    `json:"meals_refused"`
    FinishedRate       string `json:"finished_rate"` // percent, 1 decimal; "0" when no meals
    RefusedRate        string `json:"refused_rate"`
    MostCommonMealTime string `json:"most_common_meal_time"`
    MostCommonResponse string `json:"most_common_response"`
}

type ReportInsight struct {
    Type    string `json:"type"` // "positive" | "concern"
    Message string `json:"message"`
}

type ReportRecommendation struct {
    Category   string `json:"category"`
    Suggestion string `json:"suggestion"`
}

// ReportMeal is a point-in-time copy of a meal log; later edits to the
// underlying MealLog must not alter an already generated report.
type ReportMeal struct {
    MealLogID     uint      `json:"meal_log_id"`
    FoodName      string    `json:"food_name"`
    MealTime      string    `json:"meal_time"`
    ChildResponse string    `json:"child_response"`
    Notes         string    `json:"notes,omitempty"`
    LoggedAt      time.Time `json:"logged_at"`
}

// At most one Report per (child, type, period); regeneration overwrites.
type Report struct {
    gorm.Model
    ChildID    uint   `gorm:"not null;uniqueIndex:idx_reports_child_type_period"`
    ReportType string `gorm:"size:10;not null;uniqueIndex:idx_reports_child_type_period"`
    Period     string `gorm:"size:10;not null;uniqueIndex:idx_reports_child_type_period"`
    StartDate  time.Time
    EndDate    time.Time

    Summary         ReportSummary          `gorm:"serializer:json;type:text"`
    Insights        []ReportInsight        `gorm:"serializer:json;type:text"`
    Recommendations []ReportRecommendation `gorm:"serializer:json;type:text"`
    MealDetails     []ReportMeal           `gorm:"serializer:json;type:text"`

    TotalMeals    int
    MealsFinished int
    MealsPartial  int
    MealsRefused  int

    Status string `gorm:"size:10;default:'GENERATED'"`
}
