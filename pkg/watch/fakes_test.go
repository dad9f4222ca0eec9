package watch

import (
	"context"
	"errors"

	"github.com/entrhq/prioritywatch/pkg/browser"
)

const (
	normalPage   = `<input type="radio" name="svc" value="normal"><label>Normal</label><input type="radio" name="svc" value="express"><label>Express</label>`
	priorityPage = `<input type="radio" name="svc" value="normal"><label>Normal</label><input type="radio" name="svc" value="super"><label>Super Priority</label>`
)

type fakeSession struct {
	html        string
	authErr     error
	panicOnAuth bool

	authCalls int
	closes    int
	target    browser.Target
}

func (s *fakeSession) AuthenticateAndNavigate(t browser.Target) (*browser.ServiceSelection, error) {
	s.authCalls++
	s.target = t
	if s.panicOnAuth {
		panic("driver crashed")
	}
	if s.authErr != nil {
		return nil, s.authErr
	}
	return &browser.ServiceSelection{URL: t.URL, HTML: s.html}, nil
}

func (s *fakeSession) Close() error {
	s.closes++
	return nil
}

// fakeDriver hands out a fresh background session per open, built from
// pages[n] (the last entry repeats), and a single interactive session.
type fakeDriver struct {
	pages []fakeSession

	openErr        error
	interactiveErr error
	interactive    *fakeSession

	background       []*fakeSession
	interactiveOpens int
}

func (d *fakeDriver) OpenSession(interactive bool) (Session, error) {
	if interactive {
		d.interactiveOpens++
		if d.interactiveErr != nil {
			return nil, d.interactiveErr
		}
		if d.interactive == nil {
			d.interactive = &fakeSession{html: priorityPage}
		}
		return d.interactive, nil
	}

	if d.openErr != nil {
		return nil, d.openErr
	}
	i := len(d.background)
	if i >= len(d.pages) {
		i = len(d.pages) - 1
	}
	tmpl := d.pages[i]
	s := &fakeSession{html: tmpl.html, authErr: tmpl.authErr, panicOnAuth: tmpl.panicOnAuth}
	d.background = append(d.background, s)
	return s, nil
}

type recordingNotifier struct {
	messages []string
	err      error
	panics   bool
}

func (n *recordingNotifier) Notify(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	if n.panics {
		panic("telephony client crashed")
	}
	return n.err
}

var errUnreachable = errors.New("service unreachable")
