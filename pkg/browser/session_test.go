package browser

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetWithDefaults(t *testing.T) {
	got := Target{URL: "https://example.com", Password: "pw"}.WithDefaults()

	assert.Equal(t, "#password", got.PasswordSelector)
	assert.Equal(t, "#submit", got.SubmitSelector)
	assert.Equal(t, "#serviceOption", got.ServiceSelector)

	custom := Target{ServiceSelector: "#services"}.WithDefaults()
	assert.Equal(t, "#services", custom.ServiceSelector)
}

func TestTargetValidate(t *testing.T) {
	tests := []struct {
		name        string
		target      Target
		expectError string
	}{
		{
			name:   "valid",
			target: Target{URL: "https://example.com", Password: "pw"},
		},
		{
			name:        "missing url",
			target:      Target{Password: "pw"},
			expectError: "url is required",
		},
		{
			name:        "missing password",
			target:      Target{URL: "https://example.com"},
			expectError: "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestAuthenticateAndNavigate_InvalidTarget(t *testing.T) {
	s := &Session{ID: "test"}

	sel, err := s.AuthenticateAndNavigate(Target{})
	assert.Nil(t, sel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target url is required")
}

func TestStepErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		class       error
		cause       error
		wantTimeout bool
	}{
		{
			name:        "navigation timeout",
			class:       ErrNavigationTimeout,
			cause:       fmt.Errorf("waiting for #password: %w", playwright.ErrTimeout),
			wantTimeout: true,
		},
		{
			name:  "navigation failure",
			class: ErrNavigationTimeout,
			cause: errors.New("net::ERR_NAME_NOT_RESOLVED"),
		},
		{
			name:        "rejected credential",
			class:       ErrAuthenticationRejected,
			cause:       fmt.Errorf("waiting for #serviceOption: %w", playwright.ErrTimeout),
			wantTimeout: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := stepError(tt.class, "step", tt.cause)

			assert.ErrorIs(t, err, tt.class)
			assert.ErrorIs(t, err, tt.cause)
			assert.Equal(t, tt.wantTimeout, errors.Is(err, playwright.ErrTimeout))
			if tt.wantTimeout {
				assert.Contains(t, err.Error(), "timed out")
			}
		})
	}

	assert.False(t, errors.Is(stepError(ErrNavigationTimeout, "x", errors.New("boom")), ErrAuthenticationRejected))
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s := &Session{ID: "empty"}

	assert.False(t, s.closed)
	assert.NoError(t, s.Close())
	assert.True(t, s.closed)
	assert.NoError(t, s.Close())
}

func TestDriverRequiresInitialize(t *testing.T) {
	d := NewDriver()

	s, err := d.OpenSession(false)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNotInitialized)

	// shutting down a driver that never started is harmless
	assert.NoError(t, d.Shutdown())
}

func TestDriverOptions(t *testing.T) {
	d := NewDriver()
	assert.Equal(t, DefaultTimeout, d.Timeout())
	assert.Equal(t, Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}, d.viewport)

	d = NewDriver(WithTimeout(10*time.Second), WithViewport(800, 600))
	assert.Equal(t, 10*time.Second, d.Timeout())
	assert.Equal(t, Viewport{Width: 800, Height: 600}, d.viewport)

	d = NewDriver(WithTimeout(0))
	assert.Equal(t, DefaultTimeout, d.Timeout())
}
