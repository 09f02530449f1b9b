// Package ovh implements a signed HTTP client for the OVHcloud REST API.
//
// Every authenticated request carries four headers: X-Ovh-Application (the
// application key), X-Ovh-Consumer (the consumer key), X-Ovh-Timestamp (Unix
// time, adjusted by the remote clock delta) and Ovh-Signature (see Sign).
//
// The consumer key is obtained through a delegated-authorization handshake
// (RequestConsumerKey): the application posts its desired access rules, the
// API answers with a pending key and a validation URL, and the user confirms
// the grant in the browser. Only then does the key become valid.
//
// Resource-specific calls live in the cloud, dedicated and domain
// sub-packages; they depend on the Caller interface rather than on the
// concrete Client.
package ovh
