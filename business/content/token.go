package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aiAutomate/domain"

	"github.com/pobyzaarif/goshortcute"
)

var ErrInvalidToken = errors.New("invalid conversion token")

// ConversionToken identifies the variant a session was shown.
type ConversionToken struct {
	VariantID string
	Audience  domain.IntentType
	SessionID string
	IssuedAt  time.Time
}

// TokenCodec seals conversion tokens with AES-CBC and base64.
type TokenCodec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenCodec needs a 16, 24 or 32 byte key. A zero ttl never expires tokens.
func NewTokenCodec(key string, ttl time.Duration) (*TokenCodec, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("token key must be 16, 24 or 32 bytes, got %d", len(key))
	}
	return &TokenCodec{
		key: []byte(key),
		ttl: ttl,
		now: time.Now,
	}, nil
}

func (c *TokenCodec) Encode(t ConversionToken) (string, error) {
	if t.IssuedAt.IsZero() {
		t.IssuedAt = c.now()
	}
	plain := strings.Join([]string{
		t.VariantID,
		string(t.Audience),
		t.SessionID,
		strconv.FormatInt(t.IssuedAt.Unix(), 10),
	}, "|")

	encrypted, err := goshortcute.AESCBCEncrypt([]byte(plain), c.key)
	if err != nil {
		return "", fmt.Errorf("encrypt conversion token: %w", err)
	}
	return goshortcute.StringtoBase64Encode(encrypted), nil
}

// decrypt guards against the panic AESCBCDecrypt raises on bad padding.
func (c *TokenCodec) decrypt(raw string) (plain string, err error) {
	defer func() {
		if r := recover(); r != nil {
			plain, err = "", fmt.Errorf("%w: %v", ErrInvalidToken, r)
		}
	}()

	plain, err = goshortcute.AESCBCDecrypt([]byte(raw), c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return plain, nil
}

func (c *TokenCodec) Decode(token string) (ConversionToken, error) {
	if token == "" {
		return ConversionToken{}, fmt.Errorf("%w: empty", ErrInvalidToken)
	}
	raw := goshortcute.StringtoBase64Decode(token)
	if raw == "" {
		return ConversionToken{}, fmt.Errorf("%w: not base64", ErrInvalidToken)
	}

	plain, err := c.decrypt(raw)
	if err != nil {
		return ConversionToken{}, err
	}

	parts := strings.Split(plain, "|")
	if len(parts) != 4 {
		return ConversionToken{}, fmt.Errorf("%w: malformed payload", ErrInvalidToken)
	}
	issued, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return ConversionToken{}, fmt.Errorf("%w: bad timestamp", ErrInvalidToken)
	}

	t := ConversionToken{
		VariantID: parts[0],
		Audience:  domain.IntentType(parts[1]),
		SessionID: parts[2],
		IssuedAt:  time.Unix(issued, 0).UTC(),
	}
	if t.VariantID == "" || !t.Audience.Valid() {
		return ConversionToken{}, fmt.Errorf("%w: unknown variant", ErrInvalidToken)
	}
	if c.ttl > 0 && c.now().Sub(t.IssuedAt) > c.ttl {
		return ConversionToken{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return t, nil
}
