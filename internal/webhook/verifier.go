// Package webhook authenticates inbound callbacks from the external
// extraction worker. Verification runs strictly before any lookup or update:
// a request that fails here never reaches business logic.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

// Header names carried by every worker callback.
const (
	SignatureHeader = "X-Webhook-Signature"
	TimestampHeader = "X-Webhook-Timestamp"
)

// Verification failures. Each maps to a distinct error code at the transport
// boundary.
var (
	ErrMissingSignature = errors.New("missing webhook signature header")
	ErrMissingTimestamp = errors.New("missing webhook timestamp header")
	ErrInvalidTimestamp = errors.New("webhook timestamp invalid or outside replay window")
	ErrInvalidSignature = errors.New("webhook signature mismatch")
)

// ErrorCode returns the machine-readable code for a verification error.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingSignature):
		return "MISSING_SIGNATURE"
	case errors.Is(err, ErrMissingTimestamp):
		return "MISSING_TIMESTAMP"
	case errors.Is(err, ErrInvalidTimestamp):
		return "INVALID_TIMESTAMP"
	case errors.Is(err, ErrInvalidSignature):
		return "INVALID_SIGNATURE"
	default:
		return "WEBHOOK_ERROR"
	}
}

// Verifier checks the authenticity and freshness of a webhook delivery.
type Verifier struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

// NewVerifier creates a Verifier for the given shared secret and replay
// window. now is injectable for tests; nil means time.Now.
func NewVerifier(secret string, window time.Duration, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{secret: []byte(secret), window: window, now: now}
}

// Verify validates the signature and timestamp headers against the raw
// request body, exactly as transmitted. It performs no state mutation.
func (v *Verifier) Verify(body []byte, signature, timestamp string) error {
	if signature == "" {
		return ErrMissingSignature
	}
	if timestamp == "" {
		return ErrMissingTimestamp
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	sent := time.UnixMilli(ts)
	diff := v.now().Sub(sent)
	if diff < 0 {
		diff = -diff
	}
	if diff > v.window {
		return ErrInvalidTimestamp
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), provided) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the hex-encoded HMAC-SHA256 of body under the shared secret.
// Used by tests and by any outbound acknowledgement that needs signing.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
