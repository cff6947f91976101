//go:build !integration

package content

import (
	"encoding/base64"
	"errors"
	"math/rand"
	"testing"
	"time"

	"aiAutomate/domain"

	"github.com/pobyzaarif/goshortcute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenKey = "0123456789abcdef0123456789abcdef"

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := NewTokenCodec(testTokenKey, time.Hour)
	require.NoError(t, err)

	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued.Add(10 * time.Minute) }

	token, err := codec.Encode(ConversionToken{
		VariantID: "startup-speed",
		Audience:  domain.IntentStartup,
		SessionID: "5b0c7d4e-2f3a-4c1b-9e8d-7a6b5c4d3e2f",
		IssuedAt:  issued,
	})
	require.NoError(t, err)
	assert.NotContains(t, token, "startup-speed")

	got, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "startup-speed", got.VariantID)
	assert.Equal(t, domain.IntentStartup, got.Audience)
	assert.Equal(t, "5b0c7d4e-2f3a-4c1b-9e8d-7a6b5c4d3e2f", got.SessionID)
	assert.True(t, issued.Equal(got.IssuedAt))
}

func TestTokenCodec_Expired(t *testing.T) {
	codec, err := NewTokenCodec(testTokenKey, time.Hour)
	require.NoError(t, err)

	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	token, err := codec.Encode(ConversionToken{VariantID: "a", Audience: domain.IntentSME, IssuedAt: issued})
	require.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = codec.Decode(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenCodec_Empty(t *testing.T) {
	codec, err := NewTokenCodec(testTokenKey, 0)
	require.NoError(t, err)

	_, err = codec.Decode("")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestNewTokenCodec_KeyLength(t *testing.T) {
	_, err := NewTokenCodec("short", 0)
	assert.Error(t, err)

	_, err = NewTokenCodec("0123456789abcdef", 0)
	assert.NoError(t, err)
}

func TestTokenCodec_ForgedCiphertext(t *testing.T) {
	codec, err := NewTokenCodec(testTokenKey, 0)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		// block-aligned garbage, wrapped like Encode wraps real ciphertext
		raw := make([]byte, 16*(2+rng.Intn(3)))
		rng.Read(raw)
		forged := goshortcute.StringtoBase64Encode(base64.StdEncoding.EncodeToString(raw))

		var decodeErr error
		require.NotPanics(t, func() {
			_, decodeErr = codec.Decode(forged)
		})
		assert.True(t, errors.Is(decodeErr, ErrInvalidToken), decodeErr)
	}
}

func TestTokenCodec_WrongKey(t *testing.T) {
	issuer, err := NewTokenCodec(testTokenKey, 0)
	require.NoError(t, err)
	other, err := NewTokenCodec("fedcba9876543210fedcba9876543210", 0)
	require.NoError(t, err)

	token, err := issuer.Encode(ConversionToken{VariantID: "a", Audience: domain.IntentSME, SessionID: "s"})
	require.NoError(t, err)

	var decodeErr error
	require.NotPanics(t, func() {
		_, decodeErr = other.Decode(token)
	})
	assert.True(t, errors.Is(decodeErr, ErrInvalidToken))
}
