// Package verify sends and checks one-time codes for email ownership
// proofs (signup confirmation, password reset).
package verify

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/twilio/twilio-go"
	verifyv2 "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/config"
)

type Verifier interface {
	Start(ctx context.Context, email string) error
	Check(ctx context.Context, email, code string) error
}

// Twilio delivers codes through a Twilio Verify service over the email
// channel.
type Twilio struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilio(cfg *config.Config) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &Twilio{client: client, serviceSID: cfg.TwilioVerifySID}
}

func (t *Twilio) Start(ctx context.Context, email string) error {
	params := &verifyv2.CreateVerificationParams{}
	params.SetTo(email)
	params.SetChannel("email")
	if _, err := t.client.VerifyV2.CreateVerification(t.serviceSID, params); err != nil {
		return fmt.Errorf("starting verification for %s: %w", email, err)
	}
	return nil
}

func (t *Twilio) Check(ctx context.Context, email, code string) error {
	params := &verifyv2.CreateVerificationCheckParams{}
	params.SetTo(email)
	params.SetCode(code)
	check, err := t.client.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return apperror.BadRequest("verify.check-failed")
	}
	if check.Status == nil || *check.Status != "approved" {
		return apperror.BadRequest("verify.invalid-code")
	}
	return nil
}

// Dev keeps codes in memory and logs them instead of sending email. Used
// when Twilio credentials are not configured.
type Dev struct {
	log *slog.Logger
	ttl time.Duration

	mu    sync.Mutex
	codes map[string]devCode
}

type devCode struct {
	code    string
	expires time.Time
}

func NewDev(log *slog.Logger) *Dev {
	return &Dev{log: log, ttl: 10 * time.Minute, codes: make(map[string]devCode)}
}

func (d *Dev) Start(ctx context.Context, email string) error {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	d.mu.Lock()
	d.codes[email] = devCode{code: code, expires: time.Now().Add(d.ttl)}
	d.mu.Unlock()

	d.log.Info("verification code issued", "email", email, "code", code)
	return nil
}

func (d *Dev) Check(ctx context.Context, email, code string) error {
	d.mu.Lock()
	entry, ok := d.codes[email]
	if ok && entry.code == code && time.Now().Before(entry.expires) {
		delete(d.codes, email)
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()
	return apperror.BadRequest("verify.invalid-code")
}

// New picks the Twilio verifier when credentials are present, the dev
// fallback otherwise.
func New(cfg *config.Config, log *slog.Logger) Verifier {
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioVerifySID != "" {
		return NewTwilio(cfg)
	}
	log.Warn("twilio credentials not set, using in-memory verification codes")
	return NewDev(log)
}
