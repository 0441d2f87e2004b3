package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), ToMinorUnits(19.99, "usd"))
	assert.Equal(t, int64(1000), ToMinorUnits(9.999, "usd"))
	assert.Equal(t, int64(1), ToMinorUnits(0.005, "eur"))
	assert.Equal(t, int64(1500), ToMinorUnits(1500, "JPY"))
	assert.Equal(t, 19.99, FromMinorUnits(1999, "usd"))
	assert.Equal(t, 1500.0, FromMinorUnits(1500, "jpy"))
}

func TestConstructEventVerifiesSignature(t *testing.T) {
	cfg := &config.Config{}
	cfg.Stripe.WebhookSecret = "whsec_test"
	s := NewStripeService(cfg)
	require.True(t, s.VerifiesSignatures())

	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	event, err := s.ConstructEvent(payload, sign("whsec_test", payload))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "checkout.session.completed", string(event.Type))

	_, err = s.ConstructEvent(payload, sign("whsec_other", payload))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = s.ConstructEvent(payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEventWithoutSecretParsesBody(t *testing.T) {
	s := NewStripeService(&config.Config{})
	require.False(t, s.VerifiesSignatures())

	event, err := s.ConstructEvent([]byte(`{"id":"evt_2","type":"charge.refunded","data":{"object":{}}}`), "")
	require.NoError(t, err)
	assert.Equal(t, "evt_2", event.ID)

	_, err = s.ConstructEvent([]byte(`not json`), "")
	assert.Error(t, err)
}
