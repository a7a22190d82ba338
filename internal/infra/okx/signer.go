package okx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

// timestampLayout is the ISO-8601 millisecond format OKX requires in the
// OK-ACCESS-TIMESTAMP header and the signature prehash.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Signer produces OKX v5 authentication headers.
type Signer struct {
	apiKey     string
	secretKey  string
	passphrase string
	simulated  bool // demo trading flag, adds x-simulated-trading: 1
}

// NewSigner creates a Signer. simulated selects the demo trading environment.
func NewSigner(apiKey, secretKey, passphrase string, simulated bool) *Signer {
	return &Signer{
		apiKey:     apiKey,
		secretKey:  secretKey,
		passphrase: passphrase,
		simulated:  simulated,
	}
}

// SignedHeaders builds the headers for an authenticated request.
// method: GET, POST. path: request path without host. query: raw query string
// without "?" (empty if none). body: JSON string (empty if none).
func (s *Signer) SignedHeaders(method, path, query, body string) map[string]string {
	timestamp := time.Now().UTC().Format(timestampLayout)
	return s.signedHeadersAt(timestamp, method, path, query, body)
}

func (s *Signer) signedHeadersAt(timestamp, method, path, query, body string) map[string]string {
	headers := map[string]string{
		"OK-ACCESS-KEY":        s.apiKey,
		"OK-ACCESS-SIGN":       computeHmacSha256(prehash(timestamp, method, path, query, body), s.secretKey),
		"OK-ACCESS-TIMESTAMP":  timestamp,
		"OK-ACCESS-PASSPHRASE": s.passphrase,
		"Content-Type":         "application/json",
	}
	if s.simulated {
		headers["x-simulated-trading"] = "1"
	}
	return headers
}

// prehash builds the string to sign: timestamp + method + requestPath(+?query) + body.
func prehash(timestamp, method, path, query, body string) string {
	fullPath := path
	if query != "" {
		fullPath = path + "?" + query
	}
	return timestamp + method + fullPath + body
}

func computeHmacSha256(message, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
