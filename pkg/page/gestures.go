package page

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/appium"
	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/core"
)

// ScrollDirection selects which way ScrollToElement swipes. The zero value
// is ScrollUp, matching the common case of scrolling content downward.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)

// String returns the string representation of ScrollDirection
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseScrollDirection parses a direction string, case-insensitively.
// Anything other than "up" or "down" is rejected.
func ParseScrollDirection(s string) (ScrollDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return ScrollUp, nil
	case "down":
		return ScrollDown, nil
	default:
		return 0, core.ErrInvalidDirection.WithMessage("invalid scroll direction: " + s)
	}
}

// ScrollOptions tune ScrollToElement. Zero values mean the documented
// defaults: 10 scrolls, upward swipes, 500ms pause between attempts.
type ScrollOptions struct {
	MaxScrolls int
	Direction  ScrollDirection
	Pause      time.Duration
}

const (
	defaultMaxScrolls  = 10
	defaultScrollPause = 500 * time.Millisecond
	scrollProbeTimeout = 2 * time.Second
)

// Gesture geometry: swipes travel between 80% and 20% of the screen along
// the gesture axis, centered on the other axis.
const (
	swipeFarFraction  = 0.8
	swipeNearFraction = 0.2
)

// SwipeUp swipes from the lower part of the screen to the upper part,
// scrolling content down. Zero duration means DefaultSwipeDuration.
func (p *Page) SwipeUp(duration time.Duration) error {
	w, h, err := p.session.WindowSize()
	if err != nil {
		return err
	}
	x := w / 2
	startY := int(float64(h) * swipeFarFraction)
	endY := int(float64(h) * swipeNearFraction)

	if err := p.session.Swipe(x, startY, x, endY, swipeMillis(duration)); err != nil {
		return err
	}
	log.Debug().Msg("Swiped up")
	return nil
}

// SwipeDown swipes from the upper part of the screen to the lower part,
// scrolling content up.
func (p *Page) SwipeDown(duration time.Duration) error {
	w, h, err := p.session.WindowSize()
	if err != nil {
		return err
	}
	x := w / 2
	startY := int(float64(h) * swipeNearFraction)
	endY := int(float64(h) * swipeFarFraction)

	if err := p.session.Swipe(x, startY, x, endY, swipeMillis(duration)); err != nil {
		return err
	}
	log.Debug().Msg("Swiped down")
	return nil
}

// SwipeLeft swipes from the right edge area to the left.
func (p *Page) SwipeLeft(duration time.Duration) error {
	w, h, err := p.session.WindowSize()
	if err != nil {
		return err
	}
	y := h / 2
	startX := int(float64(w) * swipeFarFraction)
	endX := int(float64(w) * swipeNearFraction)

	if err := p.session.Swipe(startX, y, endX, y, swipeMillis(duration)); err != nil {
		return err
	}
	log.Debug().Msg("Swiped left")
	return nil
}

// SwipeRight swipes from the left edge area to the right.
func (p *Page) SwipeRight(duration time.Duration) error {
	w, h, err := p.session.WindowSize()
	if err != nil {
		return err
	}
	y := h / 2
	startX := int(float64(w) * swipeNearFraction)
	endX := int(float64(w) * swipeFarFraction)

	if err := p.session.Swipe(startX, y, endX, y, swipeMillis(duration)); err != nil {
		return err
	}
	log.Debug().Msg("Swiped right")
	return nil
}

func swipeMillis(duration time.Duration) int {
	if duration <= 0 {
		duration = DefaultSwipeDuration
	}
	return int(duration.Milliseconds())
}

// ScrollToElement swipes until the element is present, up to
// opts.MaxScrolls attempts. Each iteration probes presence with a short
// timeout; when the element turns up it is returned immediately with no
// further swiping. Exhausting the attempts returns found=false and no
// error; an error means an invalid direction or a failed swipe.
func (p *Page) ScrollToElement(loc core.Locator, opts ScrollOptions) (*appium.Element, bool, error) {
	maxScrolls := opts.MaxScrolls
	if maxScrolls <= 0 {
		maxScrolls = defaultMaxScrolls
	}
	pause := opts.Pause
	if pause <= 0 {
		pause = defaultScrollPause
	}
	if opts.Direction != ScrollUp && opts.Direction != ScrollDown {
		return nil, false, core.ErrInvalidDirection
	}

	for i := 0; i < maxScrolls; i++ {
		if elem, err := p.FindElement(loc, scrollProbeTimeout); err == nil {
			log.Info().Stringer("locator", loc).Int("scrolls", i).Msg("Found element after scrolling")
			return elem, true, nil
		}

		var err error
		if opts.Direction == ScrollUp {
			err = p.SwipeUp(0)
		} else {
			err = p.SwipeDown(0)
		}
		if err != nil {
			return nil, false, err
		}

		time.Sleep(pause) // Brief pause between scrolls
	}

	log.Warn().Stringer("locator", loc).Int("maxScrolls", maxScrolls).
		Msg("Element not found after scrolling")
	return nil, false, nil
}

// LongPress resolves the element with the default find timeout and long
// presses it. Zero duration means DefaultLongPressDuration.
func (p *Page) LongPress(loc core.Locator, duration time.Duration) error {
	if duration <= 0 {
		duration = DefaultLongPressDuration
	}

	elem, err := p.FindElement(loc, 0)
	if err != nil {
		return err
	}
	if err := p.session.LongPressElement(elem, int(duration.Milliseconds())); err != nil {
		return err
	}
	log.Info().Stringer("locator", loc).Dur("duration", duration).Msg("Long pressed element")
	return nil
}
