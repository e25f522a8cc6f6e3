package appium

import (
	"fmt"

	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/core"
)

// Element is a handle to a located UI element, bound to the session that
// found it. It becomes stale when the underlying view is rebuilt; commands
// on a stale element surface the server's stale-element error.
type Element struct {
	session *Session
	ID      string
}

// FindElement finds a single element. This is a single round-trip with no
// client-side wait; the page layer adds polling on top.
func (s *Session) FindElement(loc core.Locator) (*Element, error) {
	body := map[string]any{
		"using": string(loc.Using),
		"value": loc.Value,
	}

	resp, err := s.post(s.sessionPath()+"/element", body)
	if err != nil {
		return nil, err
	}

	value, ok := resp["value"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("element not found: %s", loc)
	}

	id := extractElementID(value)
	if id == "" {
		return nil, fmt.Errorf("element not found: %s", loc)
	}
	return &Element{session: s, ID: id}, nil
}

// FindElements finds all matching elements. No wait is applied; an empty
// slice and nil error means nothing matched.
func (s *Session) FindElements(loc core.Locator) ([]*Element, error) {
	body := map[string]any{
		"using": string(loc.Using),
		"value": loc.Value,
	}

	resp, err := s.post(s.sessionPath()+"/elements", body)
	if err != nil {
		return nil, err
	}

	values, ok := resp["value"].([]any)
	if !ok {
		return nil, nil
	}

	var elements []*Element
	for _, v := range values {
		if raw, ok := v.(map[string]any); ok {
			if id := extractElementID(raw); id != "" {
				elements = append(elements, &Element{session: s, ID: id})
			}
		}
	}
	return elements, nil
}

// ActiveElement returns the currently focused element.
func (s *Session) ActiveElement() (*Element, error) {
	resp, err := s.get(s.sessionPath() + "/element/active")
	if err != nil {
		return nil, err
	}
	if value, ok := resp["value"].(map[string]any); ok {
		if id := extractElementID(value); id != "" {
			return &Element{session: s, ID: id}, nil
		}
	}
	return nil, fmt.Errorf("no active element")
}

// Click clicks the element using the WebDriver standard endpoint.
func (e *Element) Click() error {
	_, err := e.session.post(e.session.elementPath(e.ID)+"/click", nil)
	return err
}

// Clear clears the element's text content.
func (e *Element) Clear() error {
	_, err := e.session.post(e.session.elementPath(e.ID)+"/clear", nil)
	return err
}

// SendKeys types text into the element.
func (e *Element) SendKeys(text string) error {
	_, err := e.session.post(e.session.elementPath(e.ID)+"/value", map[string]any{
		"text": text,
	})
	return err
}

// Text returns the element's text content.
func (e *Element) Text() (string, error) {
	resp, err := e.session.get(e.session.elementPath(e.ID) + "/text")
	if err != nil {
		return "", err
	}
	text, _ := resp["value"].(string)
	return text, nil
}

// Attribute returns the named attribute's value.
func (e *Element) Attribute(name string) (string, error) {
	resp, err := e.session.get(e.session.elementPath(e.ID) + "/attribute/" + name)
	if err != nil {
		return "", err
	}
	value, _ := resp["value"].(string)
	return value, nil
}

// Rect returns the element's position and size.
func (e *Element) Rect() (core.Bounds, error) {
	resp, err := e.session.get(e.session.elementPath(e.ID) + "/rect")
	if err != nil {
		return core.Bounds{}, err
	}
	value, ok := resp["value"].(map[string]any)
	if !ok {
		return core.Bounds{}, fmt.Errorf("invalid rect response")
	}

	x, _ := value["x"].(float64)
	y, _ := value["y"].(float64)
	w, _ := value["width"].(float64)
	h, _ := value["height"].(float64)
	return core.Bounds{X: int(x), Y: int(y), Width: int(w), Height: int(h)}, nil
}

// Displayed checks if the element is visible.
func (e *Element) Displayed() (bool, error) {
	resp, err := e.session.get(e.session.elementPath(e.ID) + "/displayed")
	if err != nil {
		return false, err
	}
	displayed, _ := resp["value"].(bool)
	return displayed, nil
}

// Enabled checks if the element is enabled.
func (e *Element) Enabled() (bool, error) {
	resp, err := e.session.get(e.session.elementPath(e.ID) + "/enabled")
	if err != nil {
		return false, err
	}
	enabled, _ := resp["value"].(bool)
	return enabled, nil
}
