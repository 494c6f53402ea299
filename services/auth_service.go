package services

import (
	"errors"
	"fmt"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// resetCodeAttempts bounds the regenerate-on-collision loop for password
// reset codes; every other write path surfaces duplicate-key errors as-is.
const resetCodeAttempts = 5

const resetCodeTTL = 15 * time.Minute

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Role:     models.RoleUser,
	}

	err = config.DB.Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: email already registered", ErrValidation)
	}
	return err
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}
	return &user, nil
}

func AuthenticateUser(email, password string) (*models.User, error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, errors.New("incorrect password")
	}
	return user, nil
}

// CreatePasswordReset allocates a reset code unique across all pending
// resets. On a duplicate-key collision it draws a fresh code, up to
// resetCodeAttempts times.
func CreatePasswordReset(userID uint) (string, error) {
	var lastErr error
	for i := 0; i < resetCodeAttempts; i++ {
		code := utils.GenerateRandomCode(6)
		reset := models.PasswordReset{
			UserID:    userID,
			Code:      code,
			ExpiresAt: time.Now().Add(resetCodeTTL),
		}
		err := config.DB.Create(&reset).Error
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("could not allocate a unique reset code: %w", lastErr)
}

// ConsumePasswordReset validates the code, sets the new password and
// removes every pending reset for that account.
func ConsumePasswordReset(code, newPassword string) error {
	var reset models.PasswordReset
	err := config.DB.Where("code = ?", code).First(&reset).Error
	if err != nil || time.Now().After(reset.ExpiresAt) {
		return fmt.Errorf("%w: invalid or expired reset code", ErrValidation)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", reset.UserID).
		Update("password", hashed).Error; err != nil {
		return err
	}

	return config.DB.Where("user_id = ?", reset.UserID).Delete(&models.PasswordReset{}).Error
}
