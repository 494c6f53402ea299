// services/report_service.go
//
// Periodic feeding reports: aggregate a child's meal logs over one period
// into counts, rates, rule-based insights and recommendations, and upsert
// the result keyed by (child, type, period).
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type ReportService struct {
	db       *gorm.DB
	children *ChildService
}

func NewReportService(db *gorm.DB, children *ChildService) *ReportService {
	return &ReportService{db: db, children: children}
}

// PeriodLabel derives the bucket key for a report type from its start date.
// WEEKLY uses the ISO-8601 week (the week containing the year's first
// Thursday is week 1), so labels stay correct across year boundaries.
func PeriodLabel(reportType string, start time.Time) (string, error) {
	switch reportType {
	case models.ReportDaily:
		return start.Format("2006-01-02"), nil
	case models.ReportWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), nil
	case models.ReportMonthly:
		return start.Format("2006-01"), nil
	}
	return "", fmt.Errorf("%w: report type must be DAILY, WEEKLY or MONTHLY", ErrValidation)
}

// Generate builds and persists the report for one (child, type, period).
// The caller supplies the date range; its length is not checked against the
// report type. Regenerating for the same key overwrites the existing row
// and resets its status to GENERATED.
func (s *ReportService) Generate(userID, childID uint, reportType string, start, end time.Time) (*models.Report, error) {
	period, err := PeriodLabel(reportType, start)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidation)
	}
	child, err := s.children.Get(userID, childID)
	if err != nil {
		return nil, err
	}

	// [start, end] inclusive, oldest first
	var logs []models.MealLog
	if err := s.db.
		Where("child_id = ? AND logged_at >= ? AND logged_at <= ?", child.ID, start, end).
		Order("logged_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	summary, finishedRate, refusedRate := summarize(logs)
	insights := buildInsights(child, summary, finishedRate, refusedRate)
	recommendations := buildRecommendations(child, refusedRate)
	details := snapshotMeals(logs)

	report := models.Report{
		ChildID:         child.ID,
		ReportType:      reportType,
		Period:          period,
		StartDate:       start,
		EndDate:         end,
		Summary:         summary,
		Insights:        insights,
		Recommendations: recommendations,
		MealDetails:     details,
		TotalMeals:      summary.TotalMeals,
		MealsFinished:   summary.MealsFinished,
		MealsPartial:    summary.MealsPartial,
		MealsRefused:    summary.MealsRefused,
		Status:          models.ReportGenerated,
	}

	var existing models.Report
	err = s.db.
		Where("child_id = ? AND report_type = ? AND period = ?", child.ID, reportType, period).
		First(&existing).Error
	switch {
	case err == nil:
		report.ID = existing.ID
		report.CreatedAt = existing.CreatedAt
		if err := s.db.Save(&report).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(&report).Error; err != nil {
			// A concurrent generate for the same key may win the insert;
			// the loser surfaces the constraint error (no retry here).
			return nil, err
		}
	default:
		return nil, err
	}

	EmitAlert(userID, models.AlertReportReady,
		fmt.Sprintf("Your %s report for %s is ready.", reportType, child.Name))

	return &report, nil
}

// Get returns the report and flips GENERATED to VIEWED on the owner's
// first read. Foreign or absent reports are both NotFound.
func (s *ReportService) Get(userID, reportID uint) (*models.Report, error) {
	var report models.Report
	err := s.db.
		Joins("JOIN children ON children.id = reports.child_id").
		Where("reports.id = ? AND children.user_id = ? AND children.deleted_at IS NULL", reportID, userID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %d", ErrNotFound, reportID)
		}
		return nil, err
	}

	if report.Status == models.ReportGenerated {
		report.Status = models.ReportViewed
		if err := s.db.Model(&report).UpdateColumn("status", models.ReportViewed).Error; err != nil {
			return nil, err
		}
	}
	return &report, nil
}

func (s *ReportService) List(userID, childID uint, reportType string) ([]models.Report, error) {
	if _, err := s.children.Get(userID, childID); err != nil {
		return nil, err
	}
	q := s.db.Where("child_id = ?", childID)
	if reportType != "" {
		if !models.ValidReportType(reportType) {
			return nil, fmt.Errorf("%w: report type must be DAILY, WEEKLY or MONTHLY", ErrValidation)
		}
		q = q.Where("report_type = ?", reportType)
	}
	var reports []models.Report
	err := q.Order("updated_at DESC").Find(&reports).Error
	return reports, err
}

func (s *ReportService) Delete(userID, reportID uint) error {
	report, err := s.Get(userID, reportID)
	if err != nil {
		return err
	}
	return s.db.Delete(report).Error
}

// ---------- aggregation ----------

func summarize(logs []models.MealLog) (models.ReportSummary, float64, float64) {
	byTime := map[string]int{}
	byResponse := map[string]int{}
	sum := models.ReportSummary{TotalMeals: len(logs)}

	for _, l := range logs {
		byTime[l.MealTime]++
		byResponse[l.ChildResponse]++
		switch l.ChildResponse {
		case models.ResponseFinished:
			sum.MealsFinished++
		case models.ResponsePartially:
			sum.MealsPartial++
		case models.ResponseRefused:
			sum.MealsRefused++
		}
	}

	finishedRate := percent(sum.MealsFinished, sum.TotalMeals)
	refusedRate := percent(sum.MealsRefused, sum.TotalMeals)
	sum.FinishedRate = formatRate(finishedRate, sum.TotalMeals)
	sum.RefusedRate = formatRate(refusedRate, sum.TotalMeals)
	sum.MostCommonMealTime = mostCommon(byTime)
	sum.MostCommonResponse = mostCommon(byResponse)

	return sum, finishedRate, refusedRate
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100.0
}

// formatRate renders a percentage with one decimal; "0" when there were no
// meals at all.
func formatRate(rate float64, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", rate)
}

// mostCommon picks the most frequent key; ties break to the
// lexicographically smallest key so results are deterministic.
func mostCommon(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestCount := "", -1
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

// ---------- rules ----------

func buildInsights(child *models.Child, sum models.ReportSummary, finishedRate, refusedRate float64) []models.ReportInsight {
	insights := []models.ReportInsight{}
	if sum.TotalMeals == 0 {
		return insights
	}

	if finishedRate >= 70 {
		insights = append(insights, models.ReportInsight{
			Type:    "positive",
			Message: fmt.Sprintf("%s is doing great: %s%% of meals were finished this period.", child.Name, sum.FinishedRate),
		})
	}
	if finishedRate < 50 {
		insights = append(insights, models.ReportInsight{
			Type:    "concern",
			Message: fmt.Sprintf("Only %s%% of meals were finished. %s may need smaller portions or more appealing options.", sum.FinishedRate, child.Name),
		})
	}
	if refusedRate > 30 {
		insights = append(insights, models.ReportInsight{
			Type:    "concern",
			Message: fmt.Sprintf("%s refused %s%% of offered meals, which is higher than expected.", child.Name, sum.RefusedRate),
		})
	}
	if sum.MostCommonResponse == models.ResponseRefused {
		insights = append(insights, models.ReportInsight{
			Type:    "concern",
			Message: fmt.Sprintf("Refusing was %s's most common response this period. Consider discussing this with a pediatrician if it persists.", child.Name),
		})
	}

	return insights
}

func buildRecommendations(child *models.Child, refusedRate float64) []models.ReportRecommendation {
	recs := []models.ReportRecommendation{}

	if refusedRate > 20 {
		recs = append(recs,
			models.ReportRecommendation{
				Category:   "portion",
				Suggestion: "Serve smaller portions and let your child ask for more instead of facing a full plate.",
			},
			models.ReportRecommendation{
				Category:   "environment",
				Suggestion: "Reduce distractions during meals: no screens or toys at the table.",
			},
		)
	}
	if child.TexturePreference == "PUREED" && child.AgeMonths > 12 {
		recs = append(recs, models.ReportRecommendation{
			Category:   "texture",
			Suggestion: "Start offering mashed and soft finger foods to move beyond purees.",
		})
	}

	// universal suggestions, always appended
	recs = append(recs,
		models.ReportRecommendation{
			Category:   "variety",
			Suggestion: "Rotate ingredients, colors and shapes across the week to keep meals interesting.",
		},
		models.ReportRecommendation{
			Category:   "routine",
			Suggestion: "Keep meal and snack times consistent from day to day.",
		},
	)

	return recs
}

func snapshotMeals(logs []models.MealLog) []models.ReportMeal {
	details := make([]models.ReportMeal, 0, len(logs))
	for _, l := range logs {
		details = append(details, models.ReportMeal{
			MealLogID:     l.ID,
			FoodName:      l.FoodName,
			MealTime:      l.MealTime,
			ChildResponse: l.ChildResponse,
			Notes:         l.Notes,
			LoggedAt:      l.LoggedAt,
		})
	}
	return details
}
