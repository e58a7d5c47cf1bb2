package webhookingest

import "errors"

var (
	// ErrInvalidSignature means the HMAC over the raw body did not match the
	// signature header.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMalformedPayload covers unparseable JSON and missing required
	// fields other than the event id.
	ErrMalformedPayload = errors.New("malformed webhook payload")
	// ErrMissingEventID means no provider-assigned event id was present.
	ErrMissingEventID = errors.New("missing event id")
)
