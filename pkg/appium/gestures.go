package appium

// Touch gestures via W3C pointer actions.

func (s *Session) performTouchAction(actions []map[string]any) error {
	payload := []map[string]any{
		{
			"type":       "pointer",
			"id":         "finger1",
			"parameters": map[string]any{"pointerType": "touch"},
			"actions":    actions,
		},
	}
	_, err := s.post(s.sessionPath()+"/actions", map[string]any{"actions": payload})
	return err
}

// Tap performs a tap at coordinates.
func (s *Session) Tap(x, y int) error {
	return s.performTouchAction([]map[string]any{
		{"type": "pointerMove", "duration": 0, "x": x, "y": y, "origin": "viewport"},
		{"type": "pointerDown", "button": 0},
		{"type": "pause", "duration": 50},
		{"type": "pointerUp", "button": 0},
	})
}

// TapElement performs a tap on an element using element origin.
func (s *Session) TapElement(e *Element) error {
	return s.performTouchAction([]map[string]any{
		{
			"type":     "pointerMove",
			"duration": 0,
			"x":        0,
			"y":        0,
			"origin":   map[string]any{w3cElementKey: e.ID},
		},
		{"type": "pointerDown", "button": 0},
		{"type": "pause", "duration": 50},
		{"type": "pointerUp", "button": 0},
	})
}

// LongPress performs a long press at coordinates.
func (s *Session) LongPress(x, y, durationMs int) error {
	return s.performTouchAction([]map[string]any{
		{"type": "pointerMove", "duration": 0, "x": x, "y": y},
		{"type": "pointerDown", "button": 0},
		{"type": "pause", "duration": durationMs},
		{"type": "pointerUp", "button": 0},
	})
}

// LongPressElement performs a long press on an element using element origin.
func (s *Session) LongPressElement(e *Element, durationMs int) error {
	return s.performTouchAction([]map[string]any{
		{
			"type":     "pointerMove",
			"duration": 0,
			"x":        0,
			"y":        0,
			"origin":   map[string]any{w3cElementKey: e.ID},
		},
		{"type": "pointerDown", "button": 0},
		{"type": "pause", "duration": durationMs},
		{"type": "pointerUp", "button": 0},
	})
}

// Swipe performs a timed swipe gesture between two points.
func (s *Session) Swipe(startX, startY, endX, endY, durationMs int) error {
	return s.performTouchAction([]map[string]any{
		{"type": "pointerMove", "duration": 0, "x": startX, "y": startY},
		{"type": "pointerDown", "button": 0},
		{"type": "pointerMove", "duration": durationMs, "x": endX, "y": endY},
		{"type": "pointerUp", "button": 0},
	})
}
