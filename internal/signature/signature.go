// Package signature implements the keyed-hash schemes used to authenticate
// inbound requests: the analyzer service-to-service scheme and the LINE
// webhook scheme.
package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Generate computes the analyzer request signature: an HMAC-SHA1 hex digest
// over timestamp followed by token.
func Generate(apiKey, token, timestamp string) string {
	mac := hmac.New(sha1.New, []byte(apiKey))
	mac.Write([]byte(timestamp + token))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks an analyzer request signature in constant time.
// An empty signature never verifies.
func Verify(apiKey, token, timestamp, signature string) bool {
	if signature == "" {
		return false
	}
	expected := Generate(apiKey, token, timestamp)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// VerifyWebhook checks a LINE webhook signature: an HMAC-SHA256 digest over
// the raw request body, base64-encoded, keyed with the channel secret.
func VerifyWebhook(channelSecret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
