package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/twilio/twilio-go/twiml"

	"github.com/entrhq/prioritywatch/pkg/logging"
)

// TwilioConfig is the telephony account and the call endpoints.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
}

// callAPI is the part of the Twilio REST API used to place calls.
type callAPI interface {
	CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error)
}

// Twilio places outbound voice calls that speak the alert message.
type Twilio struct {
	api  callAPI
	from string
	to   string
	log  *logging.Logger
}

// NewTwilio creates a Twilio notifier from account credentials.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio account sid and auth token are required")
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("twilio from and to numbers are required")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilio(client.Api, cfg.From, cfg.To), nil
}

func newTwilio(api callAPI, from, to string) *Twilio {
	return &Twilio{
		api:  api,
		from: from,
		to:   to,
		log:  logging.MustNew("notify"),
	}
}

// Notify places a single call that reads message aloud.
func (t *Twilio) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCallFailed, err)
	}

	doc, err := renderSay(message)
	if err != nil {
		return fmt.Errorf("%w: render twiml: %w", ErrCallFailed, err)
	}

	params := &openapi.CreateCallParams{}
	params.SetTo(t.to)
	params.SetFrom(t.from)
	params.SetTwiml(doc)

	call, err := t.api.CreateCall(params)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCallFailed, err)
	}

	sid := ""
	if call != nil && call.Sid != nil {
		sid = *call.Sid
	}
	t.log.Infof("phone call initiated to %s (sid=%s)", t.to, sid)
	return nil
}

// renderSay builds <Response><Say>message</Say></Response>.
func renderSay(message string) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: message},
	})
}
