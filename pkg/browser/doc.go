// Package browser drives the watched site through Playwright.
//
// A Driver owns the Playwright process. Each poll attempt opens its own
// Session, either headless (background polling) or headed (interactive
// handoff once the wanted option shows up), and walks it to the
// service-selection surface with AuthenticateAndNavigate.
//
// # Session Lifecycle
//
//  1. Open: Driver.OpenSession(interactive)
//  2. Use: Session.AuthenticateAndNavigate(target)
//  3. Close: Session.Close, on every path except the interactive handoff
//
// # Failures
//
// AuthenticateAndNavigate wraps failures in one of two sentinels so callers
// can tell them apart with errors.Is:
//
//   - ErrNavigationTimeout: the page or the password input never became usable
//   - ErrAuthenticationRejected: the credential was submitted but the
//     service options never appeared
//
// Every wait is bounded by the driver timeout (DefaultTimeout unless set
// with WithTimeout).
package browser
