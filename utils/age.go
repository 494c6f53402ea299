package utils

import (
	"errors"
	"time"
)

// AgeInMonths returns the number of whole months between birthday and now.
func AgeInMonths(birthday, now time.Time) (int, error) {
	if birthday.After(now) {
		return 0, errors.New("birthday is in the future")
	}

	months := (now.Year()-birthday.Year())*12 + int(now.Month()) - int(birthday.Month())
	if now.Day() < birthday.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months, nil
}
