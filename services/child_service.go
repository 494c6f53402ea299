package services

import (
	"errors"
	"fmt"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type ChildService struct{ db *gorm.DB }

func NewChildService(db *gorm.DB) *ChildService { return &ChildService{db: db} }

type ChildInput struct {
	Name              string  `json:"name" binding:"required"`
	Gender            string  `json:"gender"`
	AgeMonths         int     `json:"age_months"`
	Birthday          string  `json:"birthday"` // YYYY-MM-DD, alternative to age_months
	Height            float64 `json:"height"`
	Weight            float64 `json:"weight"`
	FavoriteFood      string  `json:"favorite_food"`
	HatedFood         string  `json:"hated_food"`
	Allergies         string  `json:"allergies"`
	RefusalBehaviors  string  `json:"refusal_behaviors"`
	MealDuration      string  `json:"meal_duration"`
	TexturePreference string  `json:"texture_preference"`
	EatingPattern     string  `json:"eating_pattern"`
	WeightEnergy      string  `json:"weight_energy"`
	PhotoBase64       string  `json:"photo_base64"`
}

func (s *ChildService) Create(userID uint, in ChildInput) (*models.Child, error) {
	ageMonths, err := resolveAgeMonths(in)
	if err != nil {
		return nil, err
	}

	child := &models.Child{
		UserID:            userID,
		Name:              in.Name,
		Gender:            in.Gender,
		AgeMonths:         ageMonths,
		Height:            in.Height,
		Weight:            in.Weight,
		FavoriteFood:      in.FavoriteFood,
		HatedFood:         in.HatedFood,
		Allergies:         in.Allergies,
		RefusalBehaviors:  in.RefusalBehaviors,
		MealDuration:      in.MealDuration,
		TexturePreference: in.TexturePreference,
		EatingPattern:     in.EatingPattern,
		WeightEnergy:      in.WeightEnergy,
	}
	if err := s.db.Create(child).Error; err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) List(userID uint) ([]models.Child, error) {
	var children []models.Child
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&children).Error
	return children, err
}

// Get returns ErrNotFound both for absent children and for children owned
// by someone else, so existence never leaks across accounts.
func (s *ChildService) Get(userID, childID uint) (*models.Child, error) {
	var child models.Child
	err := s.db.
		Where("id = ? AND user_id = ?", childID, userID).
		First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: child %d", ErrNotFound, childID)
		}
		return nil, err
	}
	return &child, nil
}

func (s *ChildService) Update(userID, childID uint, in ChildInput) (*models.Child, error) {
	child, err := s.Get(userID, childID)
	if err != nil {
		return nil, err
	}

	ageMonths, err := resolveAgeMonths(in)
	if err != nil {
		return nil, err
	}

	child.Name = in.Name
	child.Gender = in.Gender
	child.AgeMonths = ageMonths
	child.Height = in.Height
	child.Weight = in.Weight
	child.FavoriteFood = in.FavoriteFood
	child.HatedFood = in.HatedFood
	child.Allergies = in.Allergies
	child.RefusalBehaviors = in.RefusalBehaviors
	child.MealDuration = in.MealDuration
	child.TexturePreference = in.TexturePreference
	child.EatingPattern = in.EatingPattern
	child.WeightEnergy = in.WeightEnergy

	if err := s.db.Save(child).Error; err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) Delete(userID, childID uint) error {
	child, err := s.Get(userID, childID)
	if err != nil {
		return err
	}
	if err := s.db.Where("child_id = ?", child.ID).Delete(&models.MealLog{}).Error; err != nil {
		return err
	}
	return s.db.Delete(child).Error
}

func resolveAgeMonths(in ChildInput) (int, error) {
	if in.Birthday == "" {
		if in.AgeMonths < 0 {
			return 0, fmt.Errorf("%w: age_months must not be negative", ErrValidation)
		}
		return in.AgeMonths, nil
	}
	birthday, err := parseDate(in.Birthday)
	if err != nil {
		return 0, fmt.Errorf("%w: birthday must be YYYY-MM-DD", ErrValidation)
	}
	months, err := utils.AgeInMonths(birthday, now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return months, nil
}
