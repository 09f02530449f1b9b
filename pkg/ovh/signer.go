package ovh

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
)

// Request headers attached to every authenticated call.
const (
	HeaderApplication = "X-Ovh-Application"
	HeaderConsumer    = "X-Ovh-Consumer"
	HeaderTimestamp   = "X-Ovh-Timestamp"
	HeaderSignature   = "Ovh-Signature"
)

// Sign computes the OVHcloud request signature for the Ovh-Signature header.
//
// The signature is the SHA-1 digest, hex encoded and prefixed with "$1$", of
// the '+'-joined concatenation of the application secret, the consumer key,
// the HTTP method, the full request URL (including query string), the exact
// request body and the Unix timestamp. The result must match byte for byte
// what the remote API computes on its side, otherwise the call is rejected.
//
// Sign is a pure function: same inputs, same output.
func Sign(applicationSecret, consumerKey, method, fullURL, body string, timestamp int64) string {
	h := sha1.New()
	io.WriteString(h, applicationSecret)
	io.WriteString(h, "+")
	io.WriteString(h, consumerKey)
	io.WriteString(h, "+")
	io.WriteString(h, method)
	io.WriteString(h, "+")
	io.WriteString(h, fullURL)
	io.WriteString(h, "+")
	io.WriteString(h, body)
	io.WriteString(h, "+")
	fmt.Fprintf(h, "%d", timestamp)

	return "$1$" + hex.EncodeToString(h.Sum(nil))
}
