// services/meal_log_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type MealLogService struct {
	db       *gorm.DB
	children *ChildService
}

func NewMealLogService(db *gorm.DB, children *ChildService) *MealLogService {
	return &MealLogService{db: db, children: children}
}

type MealLogInput struct {
	FoodName      string    `json:"food_name" binding:"required"`
	MealTime      string    `json:"meal_time" binding:"required"`
	ChildResponse string    `json:"child_response" binding:"required"`
	Notes         string    `json:"notes"`
	LoggedAt      time.Time `json:"logged_at"`
	PhotoBase64   string    `json:"photo_base64"`
}

func (in MealLogInput) validate() error {
	if !models.ValidMealTime(in.MealTime) {
		return fmt.Errorf("%w: meal_time must be BREAKFAST, LUNCH or DINNER", ErrValidation)
	}
	if !models.ValidChildResponse(in.ChildResponse) {
		return fmt.Errorf("%w: child_response must be FINISHED, PARTIALLY or REFUSED", ErrValidation)
	}
	return nil
}

func (s *MealLogService) Create(userID, childID uint, in MealLogInput) (*models.MealLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	child, err := s.children.Get(userID, childID)
	if err != nil {
		return nil, err
	}

	loggedAt := in.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = now()
	}

	log := &models.MealLog{
		ChildID:       child.ID,
		FoodName:      in.FoodName,
		MealTime:      in.MealTime,
		ChildResponse: in.ChildResponse,
		Notes:         in.Notes,
		LoggedAt:      loggedAt,
	}
	if in.PhotoBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.PhotoBase64, "meal-photos", fmt.Sprintf("child-%d", child.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload meal photo: %w", err)
		}
		log.PhotoURL = url
	}

	if err := s.db.Create(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

func (s *MealLogService) ListByChild(userID, childID uint) ([]models.MealLog, error) {
	if _, err := s.children.Get(userID, childID); err != nil {
		return nil, err
	}
	var logs []models.MealLog
	err := s.db.
		Where("child_id = ?", childID).
		Order("logged_at DESC").
		Find(&logs).Error
	return logs, err
}

func (s *MealLogService) Get(userID, mealLogID uint) (*models.MealLog, error) {
	var log models.MealLog
	err := s.db.
		Joins("JOIN children ON children.id = meal_logs.child_id").
		Where("meal_logs.id = ? AND children.user_id = ? AND children.deleted_at IS NULL", mealLogID, userID).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal log %d", ErrNotFound, mealLogID)
		}
		return nil, err
	}
	return &log, nil
}

// Update mutates everything but the log's identity; a new photo replaces
// the stored URL.
func (s *MealLogService) Update(userID, mealLogID uint, in MealLogInput) (*models.MealLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	log, err := s.Get(userID, mealLogID)
	if err != nil {
		return nil, err
	}

	log.FoodName = in.FoodName
	log.MealTime = in.MealTime
	log.ChildResponse = in.ChildResponse
	log.Notes = in.Notes
	if !in.LoggedAt.IsZero() {
		log.LoggedAt = in.LoggedAt
	}
	if in.PhotoBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.PhotoBase64, "meal-photos", fmt.Sprintf("child-%d", log.ChildID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload meal photo: %w", err)
		}
		log.PhotoURL = url
	}

	if err := s.db.Save(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

func (s *MealLogService) Delete(userID, mealLogID uint) error {
	log, err := s.Get(userID, mealLogID)
	if err != nil {
		return err
	}
	return s.db.Delete(log).Error
}
