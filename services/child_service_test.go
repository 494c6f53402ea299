package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewChildService(db)
	user := seedUser(t, db, "parent@example.com")

	child, err := svc.Create(user.ID, ChildInput{
		Name:              "Sari",
		Gender:            "FEMALE",
		AgeMonths:         18,
		TexturePreference: "PUREED",
	})
	require.NoError(t, err)
	require.NotZero(t, child.ID)

	got, err := svc.Get(user.ID, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sari", got.Name)
	assert.Equal(t, 18, got.AgeMonths)

	updated, err := svc.Update(user.ID, child.ID, ChildInput{
		Name:      "Sari",
		AgeMonths: 19,
		HatedFood: "broccoli",
	})
	require.NoError(t, err)
	assert.Equal(t, 19, updated.AgeMonths)
	assert.Equal(t, "broccoli", updated.HatedFood)

	list, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(user.ID, child.ID))
	_, err = svc.Get(user.ID, child.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChildBirthdayResolvesAge(t *testing.T) {
	db := newTestDB(t)
	svc := NewChildService(db)
	user := seedUser(t, db, "parent@example.com")

	restore := now
	now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	defer func() { now = restore }()

	child, err := svc.Create(user.ID, ChildInput{Name: "Budi", Birthday: "2023-06-01"})
	require.NoError(t, err)
	assert.Equal(t, 12, child.AgeMonths)

	_, err = svc.Create(user.ID, ChildInput{Name: "Bad", Birthday: "01-06-2023"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(user.ID, ChildInput{Name: "Bad", AgeMonths: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChildOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewChildService(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	child := seedChild(t, db, alice.ID, "Sari")

	_, err := svc.Get(bob.ID, child.ID)
	assert.ErrorIs(t, err, ErrNotFound, "foreign children look absent, not forbidden")

	_, err = svc.Update(bob.ID, child.ID, ChildInput{Name: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(bob.ID, child.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestChildDeleteRemovesMealLogs(t *testing.T) {
	db := newTestDB(t)
	children := NewChildService(db)
	meals := NewMealLogService(db, children)

	user := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, user.ID, "Sari")
	meal := seedMeal(t, db, child.ID, models.MealLunch, models.ResponseFinished, time.Now())

	require.NoError(t, children.Delete(user.ID, child.ID))

	_, err := meals.Get(user.ID, meal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealLogValidation(t *testing.T) {
	db := newTestDB(t)
	children := NewChildService(db)
	svc := NewMealLogService(db, children)

	user := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, user.ID, "Sari")

	_, err := svc.Create(user.ID, child.ID, MealLogInput{
		FoodName: "porridge", MealTime: "BRUNCH", ChildResponse: models.ResponseFinished,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(user.ID, child.ID, MealLogInput{
		FoodName: "porridge", MealTime: models.MealBreakfast, ChildResponse: "MEH",
	})
	assert.ErrorIs(t, err, ErrValidation)

	log, err := svc.Create(user.ID, child.ID, MealLogInput{
		FoodName: "porridge", MealTime: models.MealBreakfast, ChildResponse: models.ResponseFinished,
	})
	require.NoError(t, err)
	assert.False(t, log.LoggedAt.IsZero(), "logged_at defaults to now")
}

func TestMealLogOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	children := NewChildService(db)
	svc := NewMealLogService(db, children)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	child := seedChild(t, db, alice.ID, "Sari")
	meal := seedMeal(t, db, child.ID, models.MealDinner, models.ResponseRefused, time.Now())

	_, err := svc.Create(bob.ID, child.ID, MealLogInput{
		FoodName: "rice", MealTime: models.MealDinner, ChildResponse: models.ResponseFinished,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(bob.ID, meal.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListByChild(bob.ID, child.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(bob.ID, meal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealLogUpdateKeepsIdentity(t *testing.T) {
	db := newTestDB(t)
	children := NewChildService(db)
	svc := NewMealLogService(db, children)

	user := seedUser(t, db, "parent@example.com")
	child := seedChild(t, db, user.ID, "Sari")
	loggedAt := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	meal := seedMeal(t, db, child.ID, models.MealBreakfast, models.ResponsePartially, loggedAt)

	updated, err := svc.Update(user.ID, meal.ID, MealLogInput{
		FoodName:      "banana",
		MealTime:      models.MealBreakfast,
		ChildResponse: models.ResponseFinished,
		Notes:         "ate it all",
	})
	require.NoError(t, err)
	assert.Equal(t, meal.ID, updated.ID)
	assert.Equal(t, child.ID, updated.ChildID)
	assert.Equal(t, "banana", updated.FoodName)
	assert.True(t, updated.LoggedAt.Equal(loggedAt), "zero logged_at leaves the timestamp alone")

	list, err := svc.ListByChild(user.ID, child.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ResponseFinished, list[0].ChildResponse)
}
