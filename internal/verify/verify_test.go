package verify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhndckngyn/askdev-api/internal/config"
)

func newDev() *Dev {
	return NewDev(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDevVerifierRoundTrip(t *testing.T) {
	d := newDev()
	ctx := context.Background()

	require.NoError(t, d.Start(ctx, "a@example.com"))

	d.mu.Lock()
	code := d.codes["a@example.com"].code
	d.mu.Unlock()
	require.Len(t, code, 6)

	assert.Error(t, d.Check(ctx, "a@example.com", "000000a"))
	assert.NoError(t, d.Check(ctx, "a@example.com", code))

	// single use
	assert.Error(t, d.Check(ctx, "a@example.com", code))
}

func TestDevVerifierExpiry(t *testing.T) {
	d := newDev()
	d.ttl = -time.Minute
	ctx := context.Background()

	require.NoError(t, d.Start(ctx, "a@example.com"))
	d.mu.Lock()
	code := d.codes["a@example.com"].code
	d.mu.Unlock()

	assert.Error(t, d.Check(ctx, "a@example.com", code))
}

func TestNewPicksDevWithoutCredentials(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	v := New(&config.Config{}, log)
	_, ok := v.(*Dev)
	assert.True(t, ok)

	v = New(&config.Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "token",
		TwilioVerifySID:  "VA123",
	}, log)
	_, ok = v.(*Twilio)
	assert.True(t, ok)
}
