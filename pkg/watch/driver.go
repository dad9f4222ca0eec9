package watch

import (
	"github.com/entrhq/prioritywatch/pkg/browser"
)

// Session is one browser automation context owned by a single poll attempt.
type Session interface {
	AuthenticateAndNavigate(target browser.Target) (*browser.ServiceSelection, error)
	Close() error
}

// Driver opens sessions. Interactive sessions are visible to a person;
// background sessions are not.
type Driver interface {
	OpenSession(interactive bool) (Session, error)
}

// BrowserDriver adapts a Playwright driver to Driver.
func BrowserDriver(d *browser.Driver) Driver {
	return browserDriver{d: d}
}

type browserDriver struct {
	d *browser.Driver
}

func (b browserDriver) OpenSession(interactive bool) (Session, error) {
	s, err := b.d.OpenSession(interactive)
	if err != nil {
		return nil, err
	}
	return s, nil
}
