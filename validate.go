package yandexid

import (
	"fmt"
	"strings"
	"unicode"
)

// Device ID length bounds enforced by Yandex OAuth.
const (
	minDeviceIDLength = 6
	maxDeviceIDLength = 50

	maxDeviceNameLength = 100
)

// ValidateDeviceID validates a device identifier. A valid ID is 6 to 50
// characters, alphanumeric only. Failures wrap ErrInvalidDeviceID.
func ValidateDeviceID(deviceID string) error {
	if len(deviceID) < minDeviceIDLength {
		return fmt.Errorf("%w: device ID is too short", ErrInvalidDeviceID)
	}
	if len(deviceID) > maxDeviceIDLength {
		return fmt.Errorf("%w: device ID is too long", ErrInvalidDeviceID)
	}
	for _, r := range deviceID {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: device ID must contain only alphanumeric characters", ErrInvalidDeviceID)
		}
	}
	return nil
}

// ValidateDeviceName validates a device name. The only constraint is a
// maximum length of 100 characters. Failures wrap ErrInvalidDeviceName.
func ValidateDeviceName(deviceName string) error {
	if len(deviceName) > maxDeviceNameLength {
		return fmt.Errorf("%w: device name is too long", ErrInvalidDeviceName)
	}
	return nil
}

// OptionalScopeWarnings checks a comma-separated optional_scope value against
// the granted scope string and returns the items that are not granted.
//
// Matching is substring containment of the granted scope string, not token
// membership: "login" counts as granted when grantedScope contains
// "login:info". This mirrors how Yandex evaluates optional scopes.
//
// The result is diagnostic only; optional scopes outside the grant are
// ignored by the provider, never rejected.
func OptionalScopeWarnings(grantedScope, optionalScope string) []string {
	var ignored []string
	for _, item := range strings.Split(optionalScope, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.Contains(grantedScope, item) {
			ignored = append(ignored, item)
		}
	}
	return ignored
}
