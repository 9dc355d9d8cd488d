package paygate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signatures are HMAC-SHA256 over a canonical key=value string with keys in
// alphabetical order, hex encoded, keyed by the merchant checksum key.

func sign(checksumKey, canonical string) string {
	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(canonical))

	return hex.EncodeToString(mac.Sum(nil))
}

func SignPaymentLink(checksumKey string, req CreateLinkRequest) string {
	canonical := fmt.Sprintf(
		"amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL,
	)

	return sign(checksumKey, canonical)
}

func SignWebhook(checksumKey string, payload WebhookPayload) string {
	canonical := fmt.Sprintf(
		"amount=%d&code=%s&orderCode=%d",
		payload.Amount, payload.Code, payload.OrderCode,
	)

	return sign(checksumKey, canonical)
}

// SignatureEqual compares signatures in constant time.
func SignatureEqual(expected, actual string) bool {
	return hmac.Equal([]byte(expected), []byte(actual))
}
