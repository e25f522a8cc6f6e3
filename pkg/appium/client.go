// Package appium is a thin client for the W3C WebDriver protocol as spoken
// by Appium servers. It owns a single remote session and exposes the
// element, gesture, and app-lifecycle commands the page layer builds on.
package appium

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// W3C WebDriver element identifier key (standard constant)
const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

// Capability names the W3C spec defines; everything else must carry the
// "appium:" vendor prefix on the wire.
var w3cStandardCaps = map[string]bool{
	"browserName":             true,
	"browserVersion":          true,
	"platformName":            true,
	"acceptInsecureCerts":     true,
	"pageLoadStrategy":        true,
	"proxy":                   true,
	"setWindowRect":           true,
	"timeouts":                true,
	"unhandledPromptBehavior": true,
}

// Session is a handle to one live remote-controlled app session. It is
// single-owner: the protocol does not support concurrent commands on one
// session and no internal locking is provided.
type Session struct {
	serverURL string
	sessionID string
	client    *http.Client
	platform  string // ios, android
}

// Open creates a new session against the Appium server at serverURL with
// the given capabilities. Non-standard capability keys are vendor-prefixed
// before hitting the wire.
func Open(serverURL string, capabilities map[string]any) (*Session, error) {
	s := &Session{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client: &http.Client{
			Timeout: 5 * time.Minute, // Long timeout for install/screenshot
		},
	}

	body := map[string]any{
		"capabilities": map[string]any{
			"alwaysMatch": prefixCapabilities(capabilities),
		},
	}

	resp, err := s.post("/session", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	value, ok := resp["value"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid session response")
	}

	s.sessionID, _ = value["sessionId"].(string)
	if s.sessionID == "" {
		return nil, fmt.Errorf("no session ID in response")
	}

	// Server-negotiated capabilities carry the effective platform
	if caps, ok := value["capabilities"].(map[string]any); ok {
		if platform, ok := caps["platformName"].(string); ok {
			s.platform = strings.ToLower(platform)
		}
	}
	if s.platform == "" {
		if platform, ok := capabilities["platformName"].(string); ok {
			s.platform = strings.ToLower(platform)
		}
	}

	log.Debug().Str("sessionId", s.sessionID).Str("platform", s.platform).Msg("Session opened")
	return s, nil
}

// Close deletes the session. Calling Close on an already-closed session is
// a no-op.
func (s *Session) Close() error {
	if s.sessionID == "" {
		return nil
	}
	_, err := s.delete(s.sessionPath())
	s.sessionID = ""
	return err
}

// ID returns the server-assigned session identifier.
func (s *Session) ID() string {
	return s.sessionID
}

// Platform returns the platform (ios/android).
func (s *Session) Platform() string {
	return s.platform
}

// prefixCapabilities applies the "appium:" vendor prefix to every
// capability the W3C spec doesn't name. Already-prefixed keys pass through.
func prefixCapabilities(caps map[string]any) map[string]any {
	out := make(map[string]any, len(caps))
	for k, v := range caps {
		if w3cStandardCaps[k] || strings.Contains(k, ":") {
			out[k] = v
			continue
		}
		out["appium:"+k] = v
	}
	return out
}

// HTTP Helpers

func (s *Session) sessionPath() string {
	return "/session/" + s.sessionID
}

func (s *Session) elementPath(elementID string) string {
	return s.sessionPath() + "/element/" + elementID
}

func (s *Session) get(path string) (map[string]any, error) {
	return s.request("GET", path, nil)
}

func (s *Session) post(path string, body any) (map[string]any, error) {
	return s.request("POST", path, body)
}

func (s *Session) delete(path string) (map[string]any, error) {
	return s.request("DELETE", path, nil)
}

func (s *Session) request(method, path string, body any) (map[string]any, error) {
	url := s.serverURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for WebDriver error
	if errValue, ok := result["value"].(map[string]any); ok {
		if errMsg, ok := errValue["message"].(string); ok {
			if errType, ok := errValue["error"].(string); ok {
				return result, fmt.Errorf("%s: %s", errType, errMsg)
			}
		}
	}

	return result, nil
}

func extractElementID(value map[string]any) string {
	// W3C format
	if id, ok := value[w3cElementKey].(string); ok {
		return id
	}
	// Legacy format
	if id, ok := value["ELEMENT"].(string); ok {
		return id
	}
	return ""
}
