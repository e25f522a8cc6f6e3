package driver

import (
	"strings"

	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/core"
)

// Platform is the target mobile platform. Unrecognized platform strings
// fail at parse time; there is no fallback platform.
type Platform int

const (
	Android Platform = iota
	IOS
)

// String returns the canonical platformName capability value.
func (p Platform) String() string {
	switch p {
	case Android:
		return "Android"
	case IOS:
		return "iOS"
	default:
		return "unknown"
	}
}

// ParsePlatform parses a platform string, case-insensitively. Anything
// other than "android" or "ios" is rejected.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "android":
		return Android, nil
	case "ios":
		return IOS, nil
	default:
		return 0, core.ErrUnsupportedPlatform.WithMessage("unsupported platform: " + s)
	}
}

// automationName returns the default automation engine for the platform.
func (p Platform) automationName() string {
	if p == IOS {
		return "XCUITest"
	}
	return "UiAutomator2"
}

// defaultDevice returns the fallback device name for the platform.
func (p Platform) defaultDevice() string {
	if p == IOS {
		return "iPhone 14"
	}
	return "Android Emulator"
}
