package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateName validates a display or pledge name.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("name is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}

// ValidateDistrict requires a non-empty district of at most 60 characters.
func ValidateDistrict(district string) error {
	trimmed := strings.TrimSpace(district)
	if trimmed == "" {
		return errors.New("district is required")
	}
	if utf8.RuneCountInString(trimmed) > 60 {
		return errors.New("district is too long (max 60 characters)")
	}
	return nil
}

var leaderboardCategories = map[string]bool{
	"workers":  true,
	"students": true,
	"free":     true,
}

func ValidateCategory(category string) error {
	if !leaderboardCategories[category] {
		return errors.New("category must be one of workers, students, free")
	}
	return nil
}

func ValidateTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return errors.New("theme must be light or dark")
	}
	return nil
}
