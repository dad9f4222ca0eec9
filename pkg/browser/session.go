package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// AuthenticateAndNavigate drives the session from a blank page to the
// service-selection surface: open the target URL, wait for the password
// input, submit the credential, then wait for the service options.
//
// Anything that fails before the credential is submitted is reported as
// ErrNavigationTimeout. A service surface that never appears after
// submission is reported as ErrAuthenticationRejected.
func (s *Session) AuthenticateAndNavigate(target Target) (*ServiceSelection, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	target = target.WithDefaults()

	if _, err := s.Page.Goto(target.URL); err != nil {
		return nil, stepError(ErrNavigationTimeout, "open "+target.URL, err)
	}
	s.CurrentURL = s.Page.URL()

	if err := s.waitFor(target.PasswordSelector); err != nil {
		return nil, stepError(ErrNavigationTimeout, "wait for password input", err)
	}

	if err := s.Page.Fill(target.PasswordSelector, target.Password); err != nil {
		return nil, stepError(ErrNavigationTimeout, "fill password", err)
	}

	if err := s.Page.Click(target.SubmitSelector); err != nil {
		return nil, stepError(ErrNavigationTimeout, "click submit", err)
	}

	if err := s.waitFor(target.ServiceSelector); err != nil {
		return nil, stepError(ErrAuthenticationRejected, "wait for service options", err)
	}
	s.CurrentURL = s.Page.URL()

	markup, err := s.innerHTML(target.ServiceSelector)
	if err != nil {
		return nil, stepError(ErrAuthenticationRejected, "read service options", err)
	}

	return &ServiceSelection{
		URL:  s.CurrentURL,
		HTML: markup,
	}, nil
}

// Close releases the page, context and browser. Calling it again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.Page != nil {
		if err := s.Page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close page: %w", err))
		}
	}
	if s.Context != nil {
		if err := s.Context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) waitFor(selector string) error {
	state := playwright.WaitForSelectorState("attached")
	_, err := s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State: &state,
	})
	return err
}

func (s *Session) innerHTML(selector string) (string, error) {
	element, err := s.Page.QuerySelector(selector)
	if err != nil {
		return "", fmt.Errorf("selector query failed: %w", err)
	}
	if element == nil {
		return "", fmt.Errorf("no element found matching selector: %s", selector)
	}
	return element.InnerHTML()
}

// stepError wraps err with the failure class and the step that failed.
func stepError(class error, step string, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %s: timed out: %w", class, step, err)
	}
	return fmt.Errorf("%w: %s: %w", class, step, err)
}
