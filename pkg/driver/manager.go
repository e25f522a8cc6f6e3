// Package driver creates and manages Appium sessions for Android and iOS
// apps: capability layering, endpoint resolution, and session lifetime.
package driver

import (
	"github.com/rs/zerolog/log"

	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/appium"
	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/config"
	"github.com/JasonTeixeira/Mobile-Testing-Framework/pkg/core"
)

// DefaultServerURL is used when no appiumUrl capability is configured.
const DefaultServerURL = "http://localhost:4723"

// defaultCommandTimeout is the newCommandTimeout fallback in seconds.
const defaultCommandTimeout = 300

// SessionOptions are per-session overrides applied on top of the config
// file. Caps is applied last and wins over everything.
type SessionOptions struct {
	// AppPath points at the .apk/.app/.ipa (optional for installed apps).
	AppPath string
	// DeviceName selects a specific device or simulator.
	DeviceName string
	// Caps are extra capabilities, highest precedence.
	Caps config.Capabilities
}

// Manager builds platform capabilities and owns at most one live session.
// Creating a new session replaces the held handle, never pools.
type Manager struct {
	cfg     *config.File
	session *appium.Session
}

// NewManager loads the capability config at configPath and returns a
// manager. A missing file degrades to an empty config; a malformed file is
// an error. Pass config.DefaultPath for the conventional location.
func NewManager(configPath string) (*Manager, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &Manager{cfg: cfg}, nil
}

// CreateDriver creates a session for the named platform. The platform
// string is matched case-insensitively; anything other than android/ios
// fails with core.ErrUnsupportedPlatform.
func (m *Manager) CreateDriver(platform string, opts SessionOptions) (*appium.Session, error) {
	p, err := ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	if p == IOS {
		return m.CreateIOSDriver(opts)
	}
	return m.CreateAndroidDriver(opts)
}

// CreateAndroidDriver creates an Android session driven by UiAutomator2.
func (m *Manager) CreateAndroidDriver(opts SessionOptions) (*appium.Session, error) {
	log.Info().Msg("Creating Android driver...")
	return m.create(Android, m.cfg.Android, opts)
}

// CreateIOSDriver creates an iOS session driven by XCUITest.
func (m *Manager) CreateIOSDriver(opts SessionOptions) (*appium.Session, error) {
	log.Info().Msg("Creating iOS driver...")
	return m.create(IOS, m.cfg.IOS, opts)
}

func (m *Manager) create(p Platform, fileCaps config.Capabilities, opts SessionOptions) (*appium.Session, error) {
	caps := buildCapabilities(p, fileCaps, opts)

	serverURL := DefaultServerURL
	if url, ok := caps.String("appiumUrl"); ok {
		serverURL = url
	}
	// appiumUrl addresses the server, it is not a session capability
	delete(caps, "appiumUrl")

	session, err := appium.Open(serverURL, caps)
	if err != nil {
		log.Error().Err(err).Str("platform", p.String()).Str("server", serverURL).
			Msg("Failed to create driver")
		return nil, core.ErrSessionCreation.WithCause(err)
	}

	device := opts.DeviceName
	if device == "" {
		device = "default device"
	}
	log.Info().Str("platform", p.String()).Str("device", device).Msg("Driver created")

	m.session = session
	return session, nil
}

// buildCapabilities layers the capability set: file config, then
// appPath/deviceName overrides, then extra caps, then built-in defaults
// filled in only for keys still absent.
func buildCapabilities(p Platform, fileCaps config.Capabilities, opts SessionOptions) config.Capabilities {
	caps := fileCaps.Clone()

	if opts.AppPath != "" {
		caps["app"] = opts.AppPath
	}
	if opts.DeviceName != "" {
		caps["deviceName"] = opts.DeviceName
	}
	caps = caps.Merge(opts.Caps)

	caps.SetDefault("platformName", p.String())
	caps.SetDefault("automationName", p.automationName())
	caps.SetDefault("deviceName", p.defaultDevice())
	caps.SetDefault("newCommandTimeout", defaultCommandTimeout)

	return caps
}

// Session returns the currently held session handle, nil when none is open.
func (m *Manager) Session() *appium.Session {
	return m.session
}

// Quit closes the held session. It is idempotent: quitting with no session
// is a no-op, and close failures are logged but never returned, since
// cleanup must not fail the caller. The handle is cleared on every path.
func (m *Manager) Quit() error {
	if m.session == nil {
		return nil
	}
	defer func() { m.session = nil }()

	if err := m.session.Close(); err != nil {
		log.Warn().Err(err).Msg("Error quitting driver")
		return nil
	}
	log.Info().Msg("Driver quit successfully")
	return nil
}

// WithSession runs fn with a freshly created session and guarantees the
// session is quit on every exit path, including when fn returns an error.
func (m *Manager) WithSession(platform string, opts SessionOptions, fn func(*appium.Session) error) error {
	session, err := m.CreateDriver(platform, opts)
	if err != nil {
		return err
	}
	defer m.Quit()

	return fn(session)
}
