package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureVerifier authenticates gateway callbacks. The gateway signs
// "<intentID>|<paymentID>" with HMAC-SHA256 over a shared secret and sends
// the hex-encoded digest alongside the callback.
//
// Verify is pure and stateless; it is safe to call concurrently.
type SignatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(secret []byte) *SignatureVerifier {
	return &SignatureVerifier{secret: secret}
}

// Verify recomputes the HMAC and compares it against the supplied signature
// in constant time. Malformed input fails verification; it never errors.
func (v *SignatureVerifier) Verify(intentID, paymentID, signature string) bool {
	if intentID == "" || paymentID == "" || signature == "" {
		return false
	}

	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(intentID))
	mac.Write([]byte("|"))
	mac.Write([]byte(paymentID))

	return hmac.Equal(mac.Sum(nil), supplied)
}

// Sign computes the signature the gateway would send for the given pair.
// Exposed for tests and local tooling.
func (v *SignatureVerifier) Sign(intentID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(intentID))
	mac.Write([]byte("|"))
	mac.Write([]byte(paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
