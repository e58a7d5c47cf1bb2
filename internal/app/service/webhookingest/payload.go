package webhookingest

import (
	"encoding/json"
	"fmt"
	"math"
)

// EventPayload is the provider notification body. Providers disagree on the
// event-id field name, so all three observed spellings are accepted.
type EventPayload struct {
	TransactionID string  `json:"transactionId"`
	ID            string  `json:"id"`
	RawEventID    string  `json:"event_id"`
	UserID        string  `json:"userId"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	Credits       int64   `json:"credits"`
}

// EventID returns the provider-assigned event identifier, preferring
// transactionId over id over event_id.
func (p *EventPayload) EventID() string {
	switch {
	case p.TransactionID != "":
		return p.TransactionID
	case p.ID != "":
		return p.ID
	default:
		return p.RawEventID
	}
}

// AmountCents converts the provider's decimal amount to integer cents.
func (p *EventPayload) AmountCents() int64 {
	return int64(math.Round(p.Amount * 100))
}

// ParsePayload decodes and validates a webhook body.
func ParsePayload(body []byte) (*EventPayload, error) {
	var p EventPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.EventID() == "" {
		return nil, ErrMissingEventID
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrMalformedPayload)
	}
	if p.Credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", ErrMalformedPayload)
	}
	return &p, nil
}
