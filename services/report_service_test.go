package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodLabel(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
		label, err := PeriodLabel(models.ReportDaily, start)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-05", label)
	})

	t.Run("weekly at ISO year boundary", func(t *testing.T) {
		// Jan 1, 2024 is a Monday, so ISO week 1 starts that day.
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
		label, err := PeriodLabel(models.ReportWeekly, start)
		require.NoError(t, err)
		assert.Equal(t, "2024-W01", label)
	})

	t.Run("weekly rolls back to previous ISO year", func(t *testing.T) {
		// Jan 1, 2023 is a Sunday and belongs to 2022's last week.
		start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
		label, err := PeriodLabel(models.ReportWeekly, start)
		require.NoError(t, err)
		assert.Equal(t, "2022-W52", label)
	})

	t.Run("monthly", func(t *testing.T) {
		start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
		label, err := PeriodLabel(models.ReportMonthly, start)
		require.NoError(t, err)
		assert.Equal(t, "2024-03", label)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := PeriodLabel("YEARLY", time.Now())
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestGenerateComputesSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, parent.ID, "Sari")

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 7, 23, 59, 59, 0, time.Local)

	// 10 meals: 8 finished, 1 partial, 1 refused
	for i := 0; i < 8; i++ {
		seedMeal(t, db, child.ID, models.MealLunch, models.ResponseFinished, start.AddDate(0, 0, i%7).Add(12*time.Hour))
	}
	seedMeal(t, db, child.ID, models.MealBreakfast, models.ResponsePartially, start.Add(8*time.Hour))
	seedMeal(t, db, child.ID, models.MealDinner, models.ResponseRefused, start.Add(19*time.Hour))

	report, err := svc.Generate(parent.ID, child.ID, models.ReportWeekly, start, end)
	require.NoError(t, err)

	assert.Equal(t, "2024-W09", report.Period)
	assert.Equal(t, 10, report.TotalMeals)
	assert.Equal(t, 8, report.MealsFinished)
	assert.Equal(t, 1, report.MealsPartial)
	assert.Equal(t, 1, report.MealsRefused)
	assert.Equal(t, "80.0", report.Summary.FinishedRate)
	assert.Equal(t, "10.0", report.Summary.RefusedRate)
	assert.Equal(t, models.MealLunch, report.Summary.MostCommonMealTime)
	assert.Equal(t, models.ResponseFinished, report.Summary.MostCommonResponse)
	assert.Equal(t, models.ReportGenerated, report.Status)
	assert.Len(t, report.MealDetails, 10)

	// 80% finished fires the positive rule and nothing else
	require.Len(t, report.Insights, 1)
	assert.Equal(t, "positive", report.Insights[0].Type)

	// universal suggestions always present
	require.GreaterOrEqual(t, len(report.Recommendations), 2)
	categories := map[string]bool{}
	for _, r := range report.Recommendations {
		categories[r.Category] = true
	}
	assert.True(t, categories["variety"])
	assert.True(t, categories["routine"])
}

func TestGenerateEmptyPeriod(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, parent.ID, "Sari")

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	report, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-05", report.Period)
	assert.Equal(t, 0, report.TotalMeals)
	assert.Equal(t, "0", report.Summary.FinishedRate)
	assert.Equal(t, "0", report.Summary.RefusedRate)
	assert.Empty(t, report.Insights)
	assert.Len(t, report.Recommendations, 2) // just the universal pair
	assert.Empty(t, report.MealDetails)
}

func TestGenerateConcernRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, parent.ID, "Sari")

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	// 2 finished, 3 refused: finished 40% (<50), refused 60% (>30),
	// REFUSED is the dominant response
	for i := 0; i < 2; i++ {
		seedMeal(t, db, child.ID, models.MealLunch, models.ResponseFinished, start.Add(time.Duration(i)*time.Hour))
	}
	for i := 0; i < 3; i++ {
		seedMeal(t, db, child.ID, models.MealDinner, models.ResponseRefused, start.Add(time.Duration(5+i)*time.Hour))
	}

	report, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)

	assert.Equal(t, "40.0", report.Summary.FinishedRate)
	assert.Equal(t, "60.0", report.Summary.RefusedRate)
	require.Len(t, report.Insights, 3)
	for _, in := range report.Insights {
		assert.Equal(t, "concern", in.Type)
	}

	// refused > 20% adds portion and environment suggestions
	categories := map[string]bool{}
	for _, r := range report.Recommendations {
		categories[r.Category] = true
	}
	assert.True(t, categories["portion"])
	assert.True(t, categories["environment"])
	assert.Len(t, report.Recommendations, 4)
}

func TestTextureRecommendation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := &models.Child{UserID: parent.ID, Name: "Budi", AgeMonths: 18, TexturePreference: "PUREED"}
	require.NoError(t, db.Create(child).Error)

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	seedMeal(t, db, child.ID, models.MealLunch, models.ResponseFinished, start.Add(12*time.Hour))

	report, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)

	categories := map[string]bool{}
	for _, r := range report.Recommendations {
		categories[r.Category] = true
	}
	assert.True(t, categories["texture"])
	assert.Len(t, report.Recommendations, 3)
}

func TestMostCommonTieBreak(t *testing.T) {
	counts := map[string]int{
		models.MealDinner:    2,
		models.MealBreakfast: 2,
		models.MealLunch:     1,
	}
	// ties resolve to the lexicographically smallest key
	assert.Equal(t, models.MealBreakfast, mostCommon(counts))

	assert.Equal(t, "", mostCommon(map[string]int{}))
}

func TestGenerateUpsertsByKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, parent.ID, "Sari")

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	first, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)

	// log a meal and regenerate the same period
	seedMeal(t, db, child.ID, models.MealLunch, models.ResponseFinished, start.Add(12*time.Hour))
	second, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same key must reuse the row")
	assert.Equal(t, 1, second.TotalMeals)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).
		Where("child_id = ?", child.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetFlipsGeneratedToViewed(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, parent.ID, "Sari")

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	generated, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)
	assert.Equal(t, models.ReportGenerated, generated.Status)

	got, err := svc.Get(parent.ID, generated.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportViewed, got.Status)

	again, err := svc.Get(parent.ID, generated.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportViewed, again.Status)

	// regeneration resets the status
	regen, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)
	assert.Equal(t, models.ReportGenerated, regen.Status)
}

func TestReportOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	child := seedChild(t, db, alice.ID, "Sari")

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)

	_, err := svc.Generate(bob.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	assert.ErrorIs(t, err, ErrNotFound)

	report, err := svc.Generate(alice.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)

	_, err = svc.Get(bob.ID, report.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.List(bob.ID, child.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotIsPointInTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, parent.ID, "Sari")

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	meal := seedMeal(t, db, child.ID, models.MealLunch, models.ResponseFinished, start.Add(12*time.Hour))

	report, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, start, dayEnd(start))
	require.NoError(t, err)
	require.Len(t, report.MealDetails, 1)
	assert.Equal(t, "test food", report.MealDetails[0].FoodName)

	// editing the log afterwards must not change the stored snapshot
	require.NoError(t, db.Model(meal).Update("food_name", "edited").Error)

	reloaded, err := svc.Get(parent.ID, report.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.MealDetails, 1)
	assert.Equal(t, "test food", reloaded.MealDetails[0].FoodName)
}

func TestListOrdersByMostRecent(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, NewChildService(db))

	parent := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, parent.ID, "Sari")

	d1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	_, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, d1, dayEnd(d1))
	require.NoError(t, err)
	second, err := svc.Generate(parent.ID, child.ID, models.ReportDaily, d2, dayEnd(d2))
	require.NoError(t, err)

	reports, err := svc.List(parent.ID, child.ID, models.ReportDaily)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, second.ID, reports[0].ID)

	_, err = svc.List(parent.ID, child.ID, "HOURLY")
	assert.ErrorIs(t, err, ErrValidation)
}
