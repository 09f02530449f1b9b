package ovh

import (
	"context"

	ctlerrors "github.com/ovhtools/ovhctl/pkg/errors"
)

// AccessRule scopes a consumer key to one HTTP method on one path pattern.
type AccessRule struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// CredentialRequest is the payload of the consumer-key handshake.
type CredentialRequest struct {
	AccessRules []AccessRule `json:"accessRules"`
	Redirection string       `json:"redirection,omitempty"`
}

// CredentialValidation is the remote answer to a CredentialRequest. The
// consumer key is not usable until the user visits ValidationURL and confirms
// the grant in the browser.
type CredentialValidation struct {
	ConsumerKey   string `json:"consumerKey"`
	ValidationURL string `json:"validationUrl"`
	State         string `json:"state"`
}

// DefaultAccessRules grants the consumer key every method on every path.
func DefaultAccessRules() []AccessRule {
	return []AccessRule{
		{Method: "GET", Path: "/*"},
		{Method: "POST", Path: "/*"},
		{Method: "PUT", Path: "/*"},
		{Method: "DELETE", Path: "/*"},
	}
}

// RequestConsumerKey starts the delegated-authorization handshake: it posts
// the access rules with the application key only and returns the pending
// consumer key together with the validation URL the user must visit. Nothing
// is persisted locally; persisting the key after the out-of-band validation
// is a separate operation.
func (c *Client) RequestConsumerKey(ctx context.Context, req CredentialRequest) (*CredentialValidation, error) {
	if len(req.AccessRules) == 0 {
		req.AccessRules = DefaultAccessRules()
	}

	var validation CredentialValidation
	if err := c.PostUnauth(ctx, "auth/credential", &req, &validation); err != nil {
		return nil, ctlerrors.Wrap(ctlerrors.CodeAuthHandshake, err, "could not request a consumer key")
	}
	return &validation, nil
}
