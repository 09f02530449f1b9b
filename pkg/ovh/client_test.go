package ovh

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctlerrors "github.com/ovhtools/ovhctl/pkg/errors"
)

const (
	testApplicationKey    = "app-key"
	testApplicationSecret = "app-secret"
	testConsumerKey       = "consumer-key"
)

// newTestServer returns an API double that answers /auth/time and delegates
// everything else to handle.
func newTestServer(t *testing.T, handle http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/time", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%d", time.Now().Unix())
	})
	mux.HandleFunc("/", handle)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()

	client, err := NewClient(Options{
		Endpoint:          endpoint,
		ApplicationKey:    testApplicationKey,
		ApplicationSecret: testApplicationSecret,
		ConsumerKey:       testConsumerKey,
		RateLimit:         1000,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresApplicationKey(t *testing.T) {
	_, err := NewClient(Options{})
	require.Error(t, err)

	var ctlErr *ctlerrors.Error
	require.True(t, errors.As(err, &ctlErr))
	assert.Equal(t, ctlerrors.CodeConfiguration, ctlErr.Code)
}

func TestNewClientRejectsUnknownEndpoint(t *testing.T) {
	_, err := NewClient(Options{ApplicationKey: "k", Endpoint: "ovh-antarctica"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ovh-antarctica")
}

func TestClientSignsRequests(t *testing.T) {
	var seen *http.Request
	var seenBody string

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seen, seenBody = r, string(raw)
		fmt.Fprint(w, `{"ok":true}`)
	})
	client := newTestClient(t, server.URL)

	var out map[string]bool
	require.NoError(t, client.Post(t.Context(), "/domain/zone/example.com/record", map[string]string{"target": "203.0.113.7"}, &out))
	require.NotNil(t, seen)

	assert.Equal(t, testApplicationKey, seen.Header.Get(HeaderApplication))
	assert.Equal(t, testConsumerKey, seen.Header.Get(HeaderConsumer))
	assert.Equal(t, "application/json", seen.Header.Get("Content-Type"))
	assert.Equal(t, `{"target":"203.0.113.7"}`, seenBody)
	assert.True(t, out["ok"])

	// The signature must be reproducible from the request the server saw.
	timestamp := seen.Header.Get(HeaderTimestamp)
	require.NotEmpty(t, timestamp)
	var ts int64
	_, err := fmt.Sscanf(timestamp, "%d", &ts)
	require.NoError(t, err)

	url := server.URL + "/domain/zone/example.com/record"
	expected := Sign(testApplicationSecret, testConsumerKey, http.MethodPost, url, seenBody, ts)
	assert.Equal(t, expected, seen.Header.Get(HeaderSignature))
}

func TestClientUnsignedRequestsCarryNoCredentials(t *testing.T) {
	var seen *http.Request

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r
		fmt.Fprint(w, `{}`)
	})
	client := newTestClient(t, server.URL)

	var out map[string]any
	require.NoError(t, client.PostUnauth(t.Context(), "auth/credential", map[string]string{}, &out))
	require.NotNil(t, seen)

	assert.Equal(t, testApplicationKey, seen.Header.Get(HeaderApplication))
	assert.Empty(t, seen.Header.Get(HeaderConsumer))
	assert.Empty(t, seen.Header.Get(HeaderTimestamp))
	assert.Empty(t, seen.Header.Get(HeaderSignature))
}

func TestClientNilBodySendsEmptyPayload(t *testing.T) {
	var seenBody string
	var seenContentType string

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seenBody, seenContentType = string(raw), r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, server.URL)

	require.NoError(t, client.Post(t.Context(), "domain/zone/example.com/refresh", nil, nil))
	assert.Empty(t, seenBody)
	assert.Empty(t, seenContentType)
}

func TestClientDeleteToleratesNotFound(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"record does not exist"}`, http.StatusNotFound)
	})
	client := newTestClient(t, server.URL)

	assert.NoError(t, client.Delete(t.Context(), "domain/zone/example.com/record/42"))
}

func TestClientSurfacesRemoteErrors(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"This credential is not valid"}`, http.StatusForbidden)
	})
	client := newTestClient(t, server.URL)

	err := client.Get(t.Context(), "me", nil)
	require.Error(t, err)

	var ctlErr *ctlerrors.Error
	require.True(t, errors.As(err, &ctlErr))
	assert.Equal(t, ctlerrors.CodeAPI, ctlErr.Code)
	assert.Equal(t, http.StatusForbidden, ctlErr.Status)
	assert.Contains(t, ctlErr.Body, "This credential is not valid")
}

func TestClientSignedCallsRequireConsumerKey(t *testing.T) {
	client, err := NewClient(Options{
		// Unresolvable host so a network attempt would fail loudly.
		Endpoint:       "https://ovhctl.invalid",
		ApplicationKey: testApplicationKey,
	})
	require.NoError(t, err)

	err = client.Get(t.Context(), "me", nil)
	require.Error(t, err)

	var ctlErr *ctlerrors.Error
	require.True(t, errors.As(err, &ctlErr))
	assert.Equal(t, ctlerrors.CodeConfiguration, ctlErr.Code)
	assert.Contains(t, err.Error(), "ovhctl connect")
}

func TestClientAdjustsForClockDrift(t *testing.T) {
	const drift = 1800 // seconds the fake server runs ahead of us

	var seenTimestamp string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/time", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%d", time.Now().Unix()+drift)
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		seenTimestamp = r.Header.Get(HeaderTimestamp)
		fmt.Fprint(w, `{}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL)
	var out map[string]any
	require.NoError(t, client.Get(t.Context(), "me", &out))

	var ts int64
	_, err := fmt.Sscanf(seenTimestamp, "%d", &ts)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix()+drift, ts, 5)
}

func TestClientStringHidesSecrets(t *testing.T) {
	client := newTestClient(t, "https://eu.api.ovh.com/1.0")

	repr := client.String()
	assert.NotContains(t, repr, testApplicationSecret)
	assert.NotContains(t, repr, testConsumerKey)
}

func TestRequestConsumerKey(t *testing.T) {
	var seen CredentialRequest

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/credential", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		fmt.Fprint(w, `{"consumerKey":"ck-new","validationUrl":"https://eu.api.ovh.com/auth/?credentialToken=tok","state":"pendingValidation"}`)
	})
	client := newTestClient(t, server.URL)

	validation, err := client.RequestConsumerKey(t.Context(), CredentialRequest{
		AccessRules: DefaultAccessRules(),
	})
	require.NoError(t, err)

	assert.Equal(t, "ck-new", validation.ConsumerKey)
	assert.Equal(t, "https://eu.api.ovh.com/auth/?credentialToken=tok", validation.ValidationURL)
	assert.Equal(t, "pendingValidation", validation.State)
	assert.Len(t, seen.AccessRules, 4)
	assert.Equal(t, AccessRule{Method: "GET", Path: "/*"}, seen.AccessRules[0])
}
