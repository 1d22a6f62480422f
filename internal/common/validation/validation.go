package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinAboutLength    = 50
	MinPasswordLength = 6
	MaxNameLength     = 100
)

// Indian mobile numbers: exactly 10 digits starting 6-9.
var mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidateMobile checks the 10-digit mobile identifier.
func ValidateMobile(mobile string) error {
	if mobile == "" {
		return fmt.Errorf("mobile number cannot be empty")
	}

	if !mobileRegex.MatchString(mobile) {
		return fmt.Errorf("mobile number must start with 6, 7, 8, or 9 and be 10 digits")
	}

	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}

	return nil
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}

	return nil
}

// ValidateAbout checks the free-text bio supplied on profile completion.
func ValidateAbout(about string) error {
	if len(strings.TrimSpace(about)) < MinAboutLength {
		return fmt.Errorf("about must be at least %d characters long", MinAboutLength)
	}

	return nil
}
