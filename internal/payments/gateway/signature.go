package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	apperrors "github.com/allisson/grants/internal/errors"
	paymentsDomain "github.com/allisson/grants/internal/payments/domain"
)

// SignatureVerifier checks gateway webhook signatures. The gateway signs the
// manifest "id:<data.id>;request-id:<request-id>;ts:<ts>;" with HMAC-SHA256
// and sends the result in the x-signature header as "ts=<ts>,v1=<hex>".
type SignatureVerifier interface {
	// Verify validates the signature header for the given request id and
	// notification data id. An empty secret disables verification.
	Verify(header, requestID, dataID string) error
	// Enabled reports whether a secret is configured.
	Enabled() bool
}

// hmacVerifier implements SignatureVerifier using a shared secret.
type hmacVerifier struct {
	secret string
}

// NewSignatureVerifier creates a verifier for the given shared secret.
func NewSignatureVerifier(secret string) SignatureVerifier {
	return &hmacVerifier{secret: secret}
}

func (v *hmacVerifier) Enabled() bool {
	return v.secret != ""
}

func (v *hmacVerifier) Verify(header, requestID, dataID string) error {
	if !v.Enabled() {
		return nil
	}
	if header == "" {
		return apperrors.Wrap(paymentsDomain.ErrInvalidSignature, "missing signature header")
	}

	ts, signature, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataID), requestID, ts)

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperrors.Wrap(paymentsDomain.ErrInvalidSignature, "signature mismatch")
	}

	return nil
}

// parseSignatureHeader extracts the ts and v1 parts from a
// "ts=<ts>,v1=<hex>" header value.
func parseSignatureHeader(header string) (ts, signature string, err error) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "ts":
			ts = strings.TrimSpace(value)
		case "v1":
			signature = strings.TrimSpace(value)
		}
	}

	if ts == "" || signature == "" {
		return "", "", apperrors.Wrap(paymentsDomain.ErrInvalidSignature, "malformed signature header")
	}

	return ts, signature, nil
}
