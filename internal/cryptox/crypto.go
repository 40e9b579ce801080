// Package cryptox holds small keyed-hash helpers.
package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SecretHash computes the SECRET_HASH Cognito expects from app clients that
// carry a secret: base64(HMAC-SHA256(key=clientSecret, msg=username+clientID)).
func SecretHash(clientSecret, username, clientID string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
