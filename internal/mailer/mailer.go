// Package mailer relays enquiry notifications to a transactional email
// provider. Delivery is best-effort: the enquiry row is already durable by
// the time a send is attempted, so callers log failures and move on.
package mailer

import (
	"context"
	"encoding/json"
)

// EnquiryEmail is the notification payload. Field names match the JSON body
// accepted by the dispatch endpoint.
type EnquiryEmail struct {
	UserName    string `json:"userName" validate:"required,max=100"`
	UserEmail   string `json:"userEmail" validate:"required,email,max=255"`
	ProductName string `json:"productName" validate:"required"`
	Message     string `json:"message" validate:"required,max=1000"`
}

// Mailer sends an enquiry notification and returns the provider's raw
// JSON response body.
type Mailer interface {
	SendEnquiry(ctx context.Context, email EnquiryEmail) (json.RawMessage, error)
}
