// Package watch is the poll-detect-notify loop.
//
// A Cycle is one attempt: open a headless session, log in, look for the
// wanted service option, and either close up (no match, or any failure) or
// place the alert call and reopen the page in a visible browser for a
// person to finish. A Scheduler repeats the Cycle on a fixed interval until
// it succeeds once, so at most one alert is ever sent per run.
//
//	Start -> SessionOpened -> Navigated -> Evaluated -> Alerting -> HandoffOpen
//	                                                 \-> NoMatch -> Closed
//	      (any step)     -> Failed -> Closed
package watch
