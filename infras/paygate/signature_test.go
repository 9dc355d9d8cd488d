package paygate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"condotel/config"
	"condotel/infras/otel/mocks"
	"condotel/infras/paygate"
	"condotel/shared/failure"
)

func TestVerifyWebhook(t *testing.T) {
	cfg := &config.Config{}
	cfg.Payment.ChecksumKey = "test-checksum-key"

	client := paygate.New(cfg, mocks.NewOtel())

	payload := paygate.WebhookPayload{
		OrderCode: 7_123_456,
		Code:      paygate.CodeSuccess,
		Amount:    500_000,
	}
	payload.Signature = paygate.SignWebhook(cfg.Payment.ChecksumKey, payload)

	assert.NoError(t, client.VerifyWebhook(payload))

	payload.Signature = "deadbeef"
	assert.ErrorIs(t, client.VerifyWebhook(payload), failure.ErrAuthenticity)

	// A tampered amount no longer matches the signed digest.
	signed := paygate.WebhookPayload{OrderCode: 7_123_456, Code: paygate.CodeSuccess, Amount: 500_000}
	signed.Signature = paygate.SignWebhook(cfg.Payment.ChecksumKey, signed)
	signed.Amount = 1

	assert.ErrorIs(t, client.VerifyWebhook(signed), failure.ErrAuthenticity)
}

func TestSignatureEqual(t *testing.T) {
	assert.True(t, paygate.SignatureEqual("abc", "abc"))
	assert.False(t, paygate.SignatureEqual("abc", "abd"))
	assert.False(t, paygate.SignatureEqual("abc", ""))
}
