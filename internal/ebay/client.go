// Package ebay provides the eBay OAuth token provider and the Browse API
// active-listings client, abstracted behind interfaces for testability.
package ebay

import (
	"context"
	"errors"
)

// ErrMissingCredentials is returned when the app id or cert id is not
// configured.
var ErrMissingCredentials = errors.New("eBay app id and cert id are required")

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	// HasCredentials reports whether Token can be attempted at all.
	HasCredentials() bool
}

// tokenInvalidator is implemented by providers that can drop a token the
// API has rejected.
type tokenInvalidator interface {
	Invalidate()
}
