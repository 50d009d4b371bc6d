package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/guonaihong/gout"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/config"
)

// ErrMissingAPIKey is returned when no provider API key is configured.
var ErrMissingAPIKey = errors.New("mail provider API key is not configured")

const sendTimeout = 10 * time.Second

// resendClient talks to a Resend-compatible transactional email API
type resendClient struct {
	cfg config.MailConfig
}

// NewResendClient creates a Mailer backed by the configured provider
func NewResendClient(cfg config.MailConfig) Mailer {
	return &resendClient{cfg: cfg}
}

// sendRequest is the provider-side payload
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendEnquiry posts the enquiry email to the provider and returns its JSON
// response. Any non-200 provider status is an error; there is no retry.
func (c *resendClient) SendEnquiry(ctx context.Context, email EnquiryEmail) (json.RawMessage, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload := sendRequest{
		From:    c.cfg.From,
		To:      []string{c.cfg.To},
		Subject: fmt.Sprintf("New Enquiry: %s", email.ProductName),
		HTML:    buildEnquiryHTML(email),
	}

	var (
		body []byte
		code int
	)
	err := gout.POST(c.cfg.APIURL).
		WithContext(ctx).
		SetTimeout(sendTimeout).
		SetHeader(gout.H{"Authorization": "Bearer " + c.cfg.APIKey}).
		SetJSON(payload).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to call mail provider: %w", err)
	}

	if code != http.StatusOK {
		return nil, fmt.Errorf("mail provider returned status %d: %s", code, string(body))
	}

	return json.RawMessage(body), nil
}

// buildEnquiryHTML embeds the four enquiry fields verbatim; any escaping is
// left to the mail provider.
func buildEnquiryHTML(email EnquiryEmail) string {
	return fmt.Sprintf(`
          <h1>New Product Enquiry</h1>
          <div style="margin: 20px 0; padding: 20px; background: #f5f5f5; border-radius: 8px;">
            <p><strong>Product:</strong> %s</p>
            <p><strong>Customer Name:</strong> %s</p>
            <p><strong>Customer Email:</strong> %s</p>
            <p><strong>Message:</strong></p>
            <p style="white-space: pre-wrap;">%s</p>
          </div>
          <p style="color: #666; font-size: 12px;">This is an automated message from ROAR Exim enquiry system.</p>
        `, email.ProductName, email.UserName, email.UserEmail, email.Message)
}
