package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PasswordReset{},
		&models.Child{},
		&models.MealLog{},
		&models.Report{},
		&models.ForumPost{},
		&models.ForumComment{},
		&models.ForumPostLike{},
		&models.ForumPostVote{},
		&models.Recipe{},
		&models.Article{},
		&models.Alert{},
		&models.UserDevice{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "x", FullName: "Test Parent", Role: models.RoleUser}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedChild(t *testing.T, db *gorm.DB, userID uint, name string) *models.Child {
	t.Helper()
	c := &models.Child{UserID: userID, Name: name, Gender: "MALE", AgeMonths: 24}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedMeal(t *testing.T, db *gorm.DB, childID uint, mealTime, response string, at time.Time) *models.MealLog {
	t.Helper()
	m := &models.MealLog{
		ChildID:       childID,
		FoodName:      "test food",
		MealTime:      mealTime,
		ChildResponse: response,
		LoggedAt:      at,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
