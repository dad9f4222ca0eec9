package watch

import (
	"context"
	"errors"
	"strings"

	"github.com/entrhq/prioritywatch/pkg/browser"
	"github.com/entrhq/prioritywatch/pkg/extract"
	"github.com/entrhq/prioritywatch/pkg/logging"
	"github.com/entrhq/prioritywatch/pkg/notify"
)

// State is a step of a single poll attempt.
type State string

const (
	StateStart         State = "start"
	StateSessionOpened State = "session_opened"
	StateNavigated     State = "navigated"
	StateEvaluated     State = "evaluated"
	StateAlerting      State = "alerting"
	StateHandoffOpen   State = "handoff_open"
	StateNoMatch       State = "no_match"
	StateFailed        State = "failed"
	StateClosed        State = "closed"
)

// CycleConfig is what a Cycle needs to know about the watched page.
type CycleConfig struct {
	Target  browser.Target
	Matcher *extract.Matcher
	Message string
}

// Cycle performs one complete check of the target page per Run.
type Cycle struct {
	driver   Driver
	notifier notify.Notifier
	target   browser.Target
	matcher  *extract.Matcher
	message  string
	log      *logging.Logger

	path        []State
	interactive Session
}

// NewCycle creates a poll cycle.
func NewCycle(driver Driver, notifier notify.Notifier, cfg CycleConfig) *Cycle {
	if cfg.Matcher == nil {
		cfg.Matcher = extract.MustMatcher(extract.DefaultPattern)
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Cycle{
		driver:   driver,
		notifier: notifier,
		target:   cfg.Target.WithDefaults(),
		matcher:  cfg.Matcher,
		message:  cfg.Message,
		log:      logging.MustNew("watch"),
	}
}

// Run performs one attempt and reports whether the wanted option was found.
//
// Failures never escape: they are logged and reported as false, and the
// background session is closed on every path. On success the background
// session is replaced with an interactive one that is deliberately left open.
func (c *Cycle) Run(ctx context.Context) (found bool) {
	c.path = c.path[:0]
	c.enter(StateStart)

	var session Session
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("error during check: unexpected fault: %v", r)
			c.enter(StateFailed)
			c.closeSession(session)
			found = false
		}
	}()

	session, err := c.driver.OpenSession(false)
	if err != nil {
		c.log.Errorf("error during check: could not open browser: %v", err)
		c.enter(StateFailed)
		return false
	}
	c.enter(StateSessionOpened)

	selection, err := session.AuthenticateAndNavigate(c.target)
	if err != nil {
		c.logNavigationError(err)
		c.enter(StateFailed)
		c.closeSession(session)
		return false
	}
	c.enter(StateNavigated)

	option, ok := extract.FindMatchingOption(selection.HTML, c.matcher)
	c.enter(StateEvaluated)

	if !ok {
		c.enter(StateNoMatch)
		c.log.Infof("only normal service is available (%s)", describe(extract.ListOptions(selection.HTML)))
		c.closeSession(session)
		return false
	}

	c.enter(StateAlerting)
	c.log.Infof("found option %q (value=%s)", option.Label, option.Value)

	c.sendAlert(ctx)

	c.log.Infof("%s Reopening in interactive mode...", c.message)
	c.closeSession(session)
	session = nil

	c.openHandoff()
	return true
}

// sendAlert places the alert. Its outcome never affects the result of the
// cycle, so errors and panics from the notifier are logged and dropped.
func (c *Cycle) sendAlert(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("error making phone call: notifier faulted: %v", r)
		}
	}()

	if err := c.notifier.Notify(ctx, c.message); err != nil {
		c.log.Errorf("error making phone call: %v", err)
	}
}

// openHandoff opens the interactive session and walks it to the service
// options. Failures here are a degraded success: the detection stands.
func (c *Cycle) openHandoff() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warnf("degraded success: interactive session faulted: %v", r)
		}
	}()

	s, err := c.driver.OpenSession(true)
	if err != nil {
		c.log.Warnf("degraded success: could not open interactive browser: %v", err)
		return
	}
	c.interactive = s
	c.enter(StateHandoffOpen)

	if _, err := s.AuthenticateAndNavigate(c.target); err != nil {
		c.log.Warnf("degraded success: interactive login did not complete, finish it manually: %v", err)
		return
	}
	c.log.Infof("interactive browser is ready for manual follow-through")
}

// LastPath returns the states visited by the most recent Run.
func (c *Cycle) LastPath() []State {
	out := make([]State, len(c.path))
	copy(out, c.path)
	return out
}

// LastState returns the final state of the most recent Run.
func (c *Cycle) LastState() State {
	if len(c.path) == 0 {
		return ""
	}
	return c.path[len(c.path)-1]
}

// Interactive returns the session handed off to a person, if any.
func (c *Cycle) Interactive() Session {
	return c.interactive
}

func (c *Cycle) enter(s State) {
	c.path = append(c.path, s)
	c.log.Debugf("cycle state -> %s", s)
}

func (c *Cycle) closeSession(s Session) {
	if s == nil {
		return
	}
	if err := s.Close(); err != nil {
		c.log.Warnf("failed to close browser session: %v", err)
	}
	c.enter(StateClosed)
}

func (c *Cycle) logNavigationError(err error) {
	switch {
	case errors.Is(err, browser.ErrAuthenticationRejected):
		c.log.Errorf("error during check: login was not accepted: %v", err)
	case errors.Is(err, browser.ErrNavigationTimeout):
		c.log.Errorf("error during check: page did not load: %v", err)
	default:
		c.log.Errorf("error during check: %v", err)
	}
}

func describe(options []extract.ServiceOption) string {
	if len(options) == 0 {
		return "no options listed"
	}
	labels := make([]string, 0, len(options))
	for _, o := range options {
		labels = append(labels, o.Label)
	}
	return "options: " + strings.Join(labels, ", ")
}
