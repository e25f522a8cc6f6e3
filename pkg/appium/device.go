package appium

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"
)

// Screen Operations

// WindowSize returns the current screen dimensions. The size is read fresh
// on every call so it stays correct across rotation and resizing.
func (s *Session) WindowSize() (width, height int, err error) {
	resp, err := s.get(s.sessionPath() + "/window/rect")
	if err != nil {
		return 0, 0, err
	}
	value, ok := resp["value"].(map[string]any)
	if !ok {
		return 0, 0, fmt.Errorf("invalid window rect response")
	}
	w, _ := value["width"].(float64)
	h, _ := value["height"].(float64)
	return int(w), int(h), nil
}

// Screenshot returns a screenshot of the current screen as PNG bytes.
func (s *Session) Screenshot() ([]byte, error) {
	resp, err := s.get(s.sessionPath() + "/screenshot")
	if err != nil {
		return nil, err
	}
	encoded, ok := resp["value"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid screenshot response")
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// SaveScreenshot captures the current screen and writes it to filename.
func (s *Session) SaveScreenshot(filename string) error {
	data, err := s.Screenshot()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Source returns the page source XML.
func (s *Session) Source() (string, error) {
	resp, err := s.get(s.sessionPath() + "/source")
	if err != nil {
		return "", err
	}
	source, _ := resp["value"].(string)
	return source, nil
}

// Keyboard

// IsKeyboardShown reports whether the on-screen keyboard is visible.
// Keyboard state is platform-dependent and not reliable on every driver.
func (s *Session) IsKeyboardShown() (bool, error) {
	resp, err := s.get(s.sessionPath() + "/appium/device/is_keyboard_shown")
	if err != nil {
		return false, err
	}
	shown, _ := resp["value"].(bool)
	return shown, nil
}

// HideKeyboard hides the on-screen keyboard.
func (s *Session) HideKeyboard() error {
	_, err := s.post(s.sessionPath()+"/appium/device/hide_keyboard", nil)
	return err
}

// Keys

// PressKeyCode presses a key by keycode (Android).
func (s *Session) PressKeyCode(keycode int) error {
	_, err := s.post(s.sessionPath()+"/appium/device/press_keycode", map[string]any{
		"keycode": keycode,
	})
	return err
}

// Back presses the back button.
func (s *Session) Back() error {
	return s.PressKeyCode(4) // Android KEYCODE_BACK
}

// App Management

// BackgroundApp sends the app under test to the background for the given
// number of seconds, then brings it back.
func (s *Session) BackgroundApp(seconds int) error {
	_, err := s.post(s.sessionPath()+"/appium/app/background", map[string]any{
		"seconds": seconds,
	})
	return err
}

// ResetApp resets the app under test to its initial state, clearing data.
func (s *Session) ResetApp() error {
	_, err := s.post(s.sessionPath()+"/appium/app/reset", nil)
	return err
}

// CloseApp closes the app under test.
func (s *Session) CloseApp() error {
	_, err := s.post(s.sessionPath()+"/appium/app/close", nil)
	return err
}

// LaunchApp launches the app under test.
func (s *Session) LaunchApp() error {
	_, err := s.post(s.sessionPath()+"/appium/app/launch", nil)
	return err
}

// Orientation

// GetOrientation returns the current orientation (portrait/landscape).
func (s *Session) GetOrientation() (string, error) {
	resp, err := s.get(s.sessionPath() + "/orientation")
	if err != nil {
		return "", err
	}
	orientation, _ := resp["value"].(string)
	return strings.ToLower(orientation), nil
}

// SetOrientation sets the orientation.
func (s *Session) SetOrientation(orientation string) error {
	_, err := s.post(s.sessionPath()+"/orientation", map[string]any{
		"orientation": strings.ToUpper(orientation),
	})
	return err
}

// Clipboard

// GetClipboard returns clipboard text.
func (s *Session) GetClipboard() (string, error) {
	resp, err := s.post(s.sessionPath()+"/appium/device/get_clipboard", map[string]any{
		"contentType": "plaintext",
	})
	if err != nil {
		return "", err
	}
	encoded, _ := resp["value"].(string)
	decoded, _ := base64.StdEncoding.DecodeString(encoded)
	return string(decoded), nil
}

// SetClipboard sets clipboard text.
func (s *Session) SetClipboard(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := s.post(s.sessionPath()+"/appium/device/set_clipboard", map[string]any{
		"content":     encoded,
		"contentType": "plaintext",
	})
	return err
}

// Timeouts

// SetImplicitWait sets the server-side implicit wait timeout.
func (s *Session) SetImplicitWait(timeout time.Duration) error {
	_, err := s.post(s.sessionPath()+"/timeouts", map[string]any{
		"implicit": timeout.Milliseconds(),
	})
	return err
}
