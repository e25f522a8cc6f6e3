package page

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/appium"
	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/core"
)

// Waiting helpers. All of them poll at the page's fixed cadence; there is
// no backoff and no cancellation beyond the timeout itself.

// WaitForElementVisible polls until the element is present and visually
// rendered: displayed with non-zero size. Zero timeout means
// DefaultFindTimeout; expiry fails with core.ErrWaitTimeout.
func (p *Page) WaitForElementVisible(loc core.Locator, timeout time.Duration) (*appium.Element, error) {
	return p.waitFor(loc, timeout, "element not visible", func(e *appium.Element) bool {
		displayed, err := e.Displayed()
		if err != nil || !displayed {
			return false
		}
		rect, err := e.Rect()
		return err == nil && !rect.Empty()
	})
}

// WaitForElementClickable polls until the element is present, visible, and
// enabled.
func (p *Page) WaitForElementClickable(loc core.Locator, timeout time.Duration) (*appium.Element, error) {
	return p.waitFor(loc, timeout, "element not clickable", func(e *appium.Element) bool {
		displayed, err := e.Displayed()
		if err != nil || !displayed {
			return false
		}
		enabled, err := e.Enabled()
		return err == nil && enabled
	})
}

// WaitForText polls until the element's text contains expected. A timeout
// converts to false, never an error.
func (p *Page) WaitForText(loc core.Locator, expected string, timeout time.Duration) bool {
	_, err := p.waitFor(loc, timeout, "text not present", func(e *appium.Element) bool {
		text, err := e.Text()
		return err == nil && strings.Contains(text, expected)
	})
	return err == nil
}

// waitFor polls until the element is present and the condition holds.
func (p *Page) waitFor(loc core.Locator, timeout time.Duration, desc string, cond func(*appium.Element) bool) (*appium.Element, error) {
	if timeout <= 0 {
		timeout = DefaultFindTimeout
	}

	deadline := time.Now().Add(timeout)

	for {
		elem, err := p.session.FindElement(loc)
		if err == nil && cond(elem) {
			return elem, nil
		}

		if time.Now().After(deadline) {
			log.Error().Stringer("locator", loc).Msg("Wait timed out: " + desc)
			return nil, core.ErrWaitTimeout.WithMessage(desc + ": " + loc.String())
		}
		time.Sleep(p.pollInterval)
	}
}
