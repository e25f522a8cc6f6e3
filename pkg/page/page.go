// Package page provides the base page object for mobile UI tests: polled
// element waits, taps, text entry, gestures, and app-lifecycle helpers on
// top of a live Appium session. Page-object types embed Page and add
// screen-specific locators and flows.
package page

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/appium"
	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/core"
)

// Defaults for wait and gesture parameters. A zero timeout/duration on any
// method means the default listed here.
const (
	DefaultFindTimeout       = 10 * time.Second
	DefaultPresenceTimeout   = 5 * time.Second
	DefaultSwipeDuration     = 800 * time.Millisecond
	DefaultLongPressDuration = 1 * time.Second
	DefaultBackgroundSeconds = 5

	defaultPollInterval = 500 * time.Millisecond
)

// Page wraps a live session handle with common mobile interactions. It does
// not own the session: lifetime is managed by the driver manager, and a
// Page must not be used after the session is closed. Single-caller use
// only; no internal locking.
type Page struct {
	session      *appium.Session
	pollInterval time.Duration
}

// New creates a page bound to an already-open session.
func New(session *appium.Session) *Page {
	return &Page{
		session:      session,
		pollInterval: defaultPollInterval,
	}
}

// Session returns the underlying session handle for operations the page
// doesn't wrap.
func (p *Page) Session() *appium.Session {
	return p.session
}

// FindElement polls for element presence until found or the timeout
// expires. Zero timeout means DefaultFindTimeout. Expiry fails with
// core.ErrElementNotFound carrying the last protocol error.
func (p *Page) FindElement(loc core.Locator, timeout time.Duration) (*appium.Element, error) {
	if timeout <= 0 {
		timeout = DefaultFindTimeout
	}

	deadline := time.Now().Add(timeout)
	var lastErr error

	for {
		elem, err := p.session.FindElement(loc)
		if err == nil {
			log.Debug().Stringer("locator", loc).Msg("Found element")
			return elem, nil
		}
		lastErr = err

		if time.Now().After(deadline) {
			log.Error().Stringer("locator", loc).Msg("Element not found")
			return nil, core.ErrElementNotFound.
				WithMessage("element not found: " + loc.String()).
				WithCause(lastErr)
		}
		time.Sleep(p.pollInterval)
	}
}

// FindElements finds all matching elements with no wait; an empty slice
// means nothing matched.
func (p *Page) FindElements(loc core.Locator) ([]*appium.Element, error) {
	return p.session.FindElements(loc)
}

// IsElementPresent checks for the element without failing. Zero timeout
// means DefaultPresenceTimeout. A timeout converts to false, never an error.
func (p *Page) IsElementPresent(loc core.Locator, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultPresenceTimeout
	}
	_, err := p.FindElement(loc, timeout)
	return err == nil
}

// Tap resolves the element and taps it.
func (p *Page) Tap(loc core.Locator, timeout time.Duration) error {
	elem, err := p.FindElement(loc, timeout)
	if err != nil {
		return err
	}
	if err := elem.Click(); err != nil {
		return err
	}
	log.Info().Stringer("locator", loc).Msg("Tapped element")
	return nil
}

// SendKeys resolves the element, clears its current content, and types text.
func (p *Page) SendKeys(loc core.Locator, text string, timeout time.Duration) error {
	elem, err := p.FindElement(loc, timeout)
	if err != nil {
		return err
	}
	if err := elem.Clear(); err != nil {
		return err
	}
	if err := elem.SendKeys(text); err != nil {
		return err
	}
	log.Info().Stringer("locator", loc).Str("text", text).Msg("Typed into element")
	return nil
}

// GetText resolves the element and returns its text content.
func (p *Page) GetText(loc core.Locator, timeout time.Duration) (string, error) {
	elem, err := p.FindElement(loc, timeout)
	if err != nil {
		return "", err
	}
	return elem.Text()
}

// HideKeyboard hides the on-screen keyboard if one is visible. Keyboard
// visibility is platform-dependent and unreliable to query, so this is
// fully best-effort: every error is logged and swallowed.
func (p *Page) HideKeyboard() {
	shown, err := p.session.IsKeyboardShown()
	if err != nil {
		log.Debug().Err(err).Msg("Could not query keyboard state")
		return
	}
	if !shown {
		return
	}
	if err := p.session.HideKeyboard(); err != nil {
		log.Debug().Err(err).Msg("Could not hide keyboard")
		return
	}
	log.Debug().Msg("Keyboard hidden")
}

// TakeScreenshot captures the current screen to the given path.
func (p *Page) TakeScreenshot(filename string) error {
	if err := p.session.SaveScreenshot(filename); err != nil {
		return err
	}
	log.Info().Str("file", filename).Msg("Screenshot saved")
	return nil
}

// App Management

// BackgroundApp sends the app to the background for the given number of
// seconds; zero means DefaultBackgroundSeconds.
func (p *Page) BackgroundApp(seconds int) error {
	if seconds <= 0 {
		seconds = DefaultBackgroundSeconds
	}
	if err := p.session.BackgroundApp(seconds); err != nil {
		return err
	}
	log.Info().Int("seconds", seconds).Msg("App backgrounded")
	return nil
}

// ResetApp resets the app to its initial state, clearing data.
func (p *Page) ResetApp() error {
	if err := p.session.ResetApp(); err != nil {
		return err
	}
	log.Info().Msg("App reset")
	return nil
}

// CloseApp closes the app.
func (p *Page) CloseApp() error {
	if err := p.session.CloseApp(); err != nil {
		return err
	}
	log.Info().Msg("App closed")
	return nil
}

// LaunchApp launches the app.
func (p *Page) LaunchApp() error {
	if err := p.session.LaunchApp(); err != nil {
		return err
	}
	log.Info().Msg("App launched")
	return nil
}

// Back presses the hardware back button (Android).
func (p *Page) Back() error {
	return p.session.Back()
}
