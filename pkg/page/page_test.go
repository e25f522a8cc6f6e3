package page

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/appium"
	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/core"
)

func writeJSON(w http.ResponseWriter, data any) {
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func decodeJSON(t *testing.T, r *http.Request, dst any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		t.Fatalf("bad request body: %v", err)
	}
}

// newTestPage opens a session against a fake server and returns a page
// polling fast enough for tight test timeouts. handler serves every request
// after the session handshake.
func newTestPage(t *testing.T, handler http.HandlerFunc) *Page {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/session" && r.Method == "POST" {
			writeJSON(w, map[string]any{
				"value": map[string]any{
					"sessionId":    "sess-1",
					"capabilities": map[string]any{"platformName": "Android"},
				},
			})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	session, err := appium.Open(server.URL, map[string]any{"platformName": "Android"})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	p := New(session)
	p.pollInterval = 10 * time.Millisecond
	return p
}

func noSuchElement(w http.ResponseWriter) {
	writeJSON(w, map[string]any{
		"value": map[string]any{
			"error":   "no such element",
			"message": "element could not be located",
		},
	})
}

func elementFound(w http.ResponseWriter, id string) {
	writeJSON(w, map[string]any{
		"value": map[string]any{"element-6066-11e4-a52e-4f735466cecf": id},
	})
}

func TestFindElement_FoundAfterRetries(t *testing.T) {
	findCalls := 0
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/session/sess-1/element" {
			findCalls++
			if findCalls < 3 {
				noSuchElement(w)
				return
			}
			elementFound(w, "elem-1")
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	elem, err := p.FindElement(core.ByID("slow"), time.Second)
	if err != nil {
		t.Fatalf("FindElement failed: %v", err)
	}
	if elem.ID != "elem-1" {
		t.Errorf("Expected 'elem-1', got '%s'", elem.ID)
	}
	if findCalls != 3 {
		t.Errorf("expected 3 find attempts, got %d", findCalls)
	}
}

func TestFindElement_Timeout(t *testing.T) {
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		noSuchElement(w)
	})

	_, err := p.FindElement(core.ByID("missing"), 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, core.ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

func TestIsElementPresent(t *testing.T) {
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		elementFound(w, "elem-1")
	})

	if !p.IsElementPresent(core.ByID("there"), 50*time.Millisecond) {
		t.Error("expected element to be present")
	}
}

func TestIsElementPresent_AbsentIsFalseNotError(t *testing.T) {
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		noSuchElement(w)
	})

	if p.IsElementPresent(core.ByID("missing"), 50*time.Millisecond) {
		t.Error("expected element to be absent")
	}
}

func TestTap(t *testing.T) {
	clicked := false
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/session/sess-1/element":
			elementFound(w, "elem-1")
		case "/session/sess-1/element/elem-1/click":
			clicked = true
			writeJSON(w, map[string]any{"value": nil})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	if err := p.Tap(core.ByAccessibilityID("submit"), time.Second); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	if !clicked {
		t.Error("click endpoint was not called")
	}
}

func TestSendKeys_ClearsBeforeTyping(t *testing.T) {
	var order []string
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/session/sess-1/element":
			elementFound(w, "elem-1")
		case "/session/sess-1/element/elem-1/clear":
			order = append(order, "clear")
			writeJSON(w, map[string]any{"value": nil})
		case "/session/sess-1/element/elem-1/value":
			order = append(order, "value")
			writeJSON(w, map[string]any{"value": nil})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	if err := p.SendKeys(core.ByID("field"), "hello", time.Second); err != nil {
		t.Fatalf("SendKeys failed: %v", err)
	}
	if len(order) != 2 || order[0] != "clear" || order[1] != "value" {
		t.Errorf("expected clear before value, got %v", order)
	}
}

func TestGetText(t *testing.T) {
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/session/sess-1/element":
			elementFound(w, "elem-1")
		case "/session/sess-1/element/elem-1/text":
			writeJSON(w, map[string]any{"value": "Welcome"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	text, err := p.GetText(core.ByID("title"), time.Second)
	if err != nil {
		t.Fatalf("GetText failed: %v", err)
	}
	if text != "Welcome" {
		t.Errorf("Expected 'Welcome', got '%s'", text)
	}
}

func TestHideKeyboard_WhenShown(t *testing.T) {
	hideCalled := false
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/session/sess-1/appium/device/is_keyboard_shown":
			writeJSON(w, map[string]any{"value": true})
		case "/session/sess-1/appium/device/hide_keyboard":
			hideCalled = true
			writeJSON(w, map[string]any{"value": nil})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	p.HideKeyboard()
	if !hideCalled {
		t.Error("expected hide_keyboard to be called")
	}
}

func TestHideKeyboard_NotShown(t *testing.T) {
	hideCalled := false
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/session/sess-1/appium/device/is_keyboard_shown":
			writeJSON(w, map[string]any{"value": false})
		case "/session/sess-1/appium/device/hide_keyboard":
			hideCalled = true
			writeJSON(w, map[string]any{"value": nil})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	p.HideKeyboard()
	if hideCalled {
		t.Error("hide_keyboard should not be called when the keyboard is down")
	}
}

func TestHideKeyboard_SwallowsErrors(t *testing.T) {
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"value": map[string]any{
				"error":   "unknown error",
				"message": "keyboard state unavailable",
			},
		})
	})

	// Must not panic or surface the failure
	p.HideKeyboard()
}

func TestTakeScreenshot(t *testing.T) {
	data := []byte("fake-png-data")
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/session/sess-1/screenshot" {
			writeJSON(w, map[string]any{"value": base64.StdEncoding.EncodeToString(data)})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := p.TakeScreenshot(path); err != nil {
		t.Fatalf("TakeScreenshot failed: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if string(written) != string(data) {
		t.Error("screenshot data mismatch")
	}
}

func TestBackgroundApp_DefaultSeconds(t *testing.T) {
	var sentSeconds any
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/session/sess-1/appium/app/background" {
			var body map[string]any
			decodeJSON(t, r, &body)
			sentSeconds = body["seconds"]
			writeJSON(w, map[string]any{"value": nil})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	if err := p.BackgroundApp(0); err != nil {
		t.Fatalf("BackgroundApp failed: %v", err)
	}
	if sentSeconds != 5.0 {
		t.Errorf("expected default 5 seconds, got %v", sentSeconds)
	}
}

func TestAppLifecycle(t *testing.T) {
	called := map[string]bool{}
	p := newTestPage(t, func(w http.ResponseWriter, r *http.Request) {
		called[r.URL.Path] = true
		writeJSON(w, map[string]any{"value": nil})
	})

	if err := p.ResetApp(); err != nil {
		t.Fatalf("ResetApp failed: %v", err)
	}
	if err := p.CloseApp(); err != nil {
		t.Fatalf("CloseApp failed: %v", err)
	}
	if err := p.LaunchApp(); err != nil {
		t.Fatalf("LaunchApp failed: %v", err)
	}

	for _, path := range []string{
		"/session/sess-1/appium/app/reset",
		"/session/sess-1/appium/app/close",
		"/session/sess-1/appium/app/launch",
	} {
		if !called[path] {
			t.Errorf("%s was not called", path)
		}
	}
}
