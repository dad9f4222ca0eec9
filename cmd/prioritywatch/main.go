// Package main runs prioritywatch: it polls the configured appointment page
// until the super priority service option appears, places a phone call, and
// leaves a visible browser open on the page for manual booking.
//
// It takes no arguments; configuration comes from the environment, a .env
// file, or the YAML file named by PRIORITYWATCH_CONFIG.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/prioritywatch/pkg/browser"
	"github.com/entrhq/prioritywatch/pkg/config"
	"github.com/entrhq/prioritywatch/pkg/extract"
	"github.com/entrhq/prioritywatch/pkg/logging"
	"github.com/entrhq/prioritywatch/pkg/notify"
	"github.com/entrhq/prioritywatch/pkg/watch"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "prioritywatch: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logging.SetLevel(level)

	logger, err := logging.NewLogger("main")
	if err != nil {
		logger.Warnf("file logging unavailable, console only: %v", err)
	}
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "prioritywatch: failed to close log file: %v\n", err)
		}
	}()

	matcher, err := extract.NewMatcher(cfg.Poll.OptionMatch)
	if err != nil {
		return fmt.Errorf("invalid option match: %w", err)
	}

	notifier, err := notify.NewTwilio(notify.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		From:       cfg.Twilio.From,
		To:         cfg.Twilio.To,
	})
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}

	driver := browser.NewDriver(browser.WithTimeout(cfg.WaitTimeout()))
	if err := driver.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := driver.Shutdown(); err != nil {
			logger.Warnf("%v", err)
		}
	}()

	cycle := watch.NewCycle(watch.BrowserDriver(driver), notifier, watch.CycleConfig{
		Target: browser.Target{
			URL:              cfg.Target.URL,
			Password:         cfg.Target.Password,
			PasswordSelector: cfg.Target.PasswordSelector,
			SubmitSelector:   cfg.Target.SubmitSelector,
			ServiceSelector:  cfg.Target.ServiceSelector,
		},
		Matcher: matcher,
		Message: cfg.Poll.AlertMessage,
	})

	logger.Infof("watching %s every %s for %q (wait window %s, log: %s)", cfg.Target.URL, cfg.Interval(), matcher, driver.Timeout(), logger.LogPath())

	if err := watch.NewScheduler(cycle, cfg.Interval()).Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	// The interactive browser belongs to the user now; keep the process (and
	// with it the Playwright driver) alive until we are told to stop.
	logger.Infof("Super priority service found. Browser left open, press Ctrl+C to exit.")
	<-ctx.Done()
	return nil
}
