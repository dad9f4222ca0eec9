package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is an exclusively owned browser, context and page.
type Session struct {
	// ID is a short identifier used in log lines
	ID string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Interactive is true for a visible (headed) browser
	Interactive bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string

	closed bool
}

// Target describes how to reach the service-selection surface.
type Target struct {
	URL      string
	Password string

	PasswordSelector string
	SubmitSelector   string
	ServiceSelector  string
}

// ServiceSelection is a snapshot of the loaded service-selection surface.
type ServiceSelection struct {
	// URL is the page URL the surface was read from
	URL string

	// HTML is the inner markup of the surface element
	HTML string
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values
const (
	DefaultTimeout        = 30 * time.Second
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	DefaultPasswordSelector = "#password"
	DefaultSubmitSelector   = "#submit"
	DefaultServiceSelector  = "#serviceOption"
)

var (
	// ErrNotInitialized is returned when a session is opened before Initialize.
	ErrNotInitialized = errors.New("browser driver not initialized")

	// ErrNavigationTimeout means the page or the password surface never
	// became reachable within the wait window.
	ErrNavigationTimeout = errors.New("navigation timeout")

	// ErrAuthenticationRejected means the credential was submitted but the
	// service-selection surface never appeared.
	ErrAuthenticationRejected = errors.New("authentication rejected")
)

// WithDefaults returns a copy of t with empty selectors filled in.
func (t Target) WithDefaults() Target {
	if t.PasswordSelector == "" {
		t.PasswordSelector = DefaultPasswordSelector
	}
	if t.SubmitSelector == "" {
		t.SubmitSelector = DefaultSubmitSelector
	}
	if t.ServiceSelector == "" {
		t.ServiceSelector = DefaultServiceSelector
	}
	return t
}

// Validate checks that the target can be navigated.
func (t Target) Validate() error {
	if t.URL == "" {
		return fmt.Errorf("target url is required")
	}
	if t.Password == "" {
		return fmt.Errorf("target password is required")
	}
	return nil
}
