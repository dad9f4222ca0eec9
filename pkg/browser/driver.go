package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/prioritywatch/pkg/logging"
)

// Driver owns the Playwright process and launches sessions on it.
type Driver struct {
	mu          sync.Mutex
	playwright  *playwright.Playwright
	timeout     time.Duration
	viewport    Viewport
	initialized bool
	log         *logging.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithTimeout sets the wait window applied to every page operation.
func WithTimeout(d time.Duration) Option {
	return func(drv *Driver) {
		if d > 0 {
			drv.timeout = d
		}
	}
}

// WithViewport sets the viewport for new sessions.
func WithViewport(width, height int) Option {
	return func(drv *Driver) {
		drv.viewport = Viewport{Width: width, Height: height}
	}
}

// NewDriver creates a new, uninitialized driver.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		timeout: DefaultTimeout,
		viewport: Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
		log: logging.MustNew("browser"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Timeout returns the configured wait window.
func (d *Driver) Timeout() time.Duration {
	return d.timeout
}

// Initialize installs browsers if needed and starts the Playwright driver.
// It is safe to call more than once.
func (d *Driver) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}

	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	d.playwright = pw
	d.initialized = true
	d.log.Debugf("playwright driver started")
	return nil
}

// OpenSession launches a new browser. Interactive sessions are headed so a
// person can take over; background sessions are headless.
func (d *Driver) OpenSession(interactive bool) (*Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return nil, ErrNotInitialized
	}

	headless := !interactive
	browser, err := d.playwright.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &headless,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  d.viewport.Width,
			Height: d.viewport.Height,
		},
	})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		_ = browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	timeoutMs := float64(d.timeout.Milliseconds())
	page.SetDefaultTimeout(timeoutMs)
	page.SetDefaultNavigationTimeout(timeoutMs)

	session := &Session{
		ID:          uuid.New().String()[:8],
		Browser:     browser,
		Context:     context,
		Page:        page,
		Interactive: interactive,
		CreatedAt:   time.Now(),
		CurrentURL:  "about:blank",
	}

	d.log.Debugf("opened session %s (interactive=%v)", session.ID, interactive)
	return session, nil
}

// Shutdown stops the Playwright driver. Browsers launched from it, including
// an interactive session left open for a person, go away with it.
func (d *Driver) Shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized || d.playwright == nil {
		return nil
	}

	if err := d.playwright.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	d.initialized = false
	return nil
}
