package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/config"
)

func testEmail() EnquiryEmail {
	return EnquiryEmail{
		UserName:    "Asha Patel",
		UserEmail:   "asha@example.com",
		ProductName: "Basmati Rice",
		Message:     "Bulk pricing for 10 tonnes?",
	}
}

func TestSendEnquiry_PostsProviderPayload(t *testing.T) {
	var (
		gotAuth string
		gotBody map[string]interface{}
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer server.Close()

	client := NewResendClient(config.MailConfig{
		APIURL: server.URL,
		APIKey: "re_test_key",
		From:   "ROAR Exim <onboarding@resend.dev>",
		To:     "admin@roarexim.com",
	})

	result, err := client.SendEnquiry(context.Background(), testEmail())
	if err != nil {
		t.Fatalf("SendEnquiry returned error: %v", err)
	}

	if string(result) != `{"id":"email-123"}` {
		t.Errorf("result = %s, want the provider body", result)
	}

	if gotAuth != "Bearer re_test_key" {
		t.Errorf("Authorization = %q, want Bearer re_test_key", gotAuth)
	}

	if gotBody["from"] != "ROAR Exim <onboarding@resend.dev>" {
		t.Errorf("from = %v", gotBody["from"])
	}
	if gotBody["subject"] != "New Enquiry: Basmati Rice" {
		t.Errorf("subject = %v, want New Enquiry: Basmati Rice", gotBody["subject"])
	}

	to, ok := gotBody["to"].([]interface{})
	if !ok || len(to) != 1 || to[0] != "admin@roarexim.com" {
		t.Errorf("to = %v, want [admin@roarexim.com]", gotBody["to"])
	}

	html, _ := gotBody["html"].(string)
	for _, fragment := range []string{"Asha Patel", "asha@example.com", "Basmati Rice", "Bulk pricing for 10 tonnes?"} {
		if !strings.Contains(html, fragment) {
			t.Errorf("html body is missing %q", fragment)
		}
	}
}

func TestSendEnquiry_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	client := NewResendClient(config.MailConfig{
		APIURL: server.URL,
		APIKey: "re_test_key",
		From:   "bad",
		To:     "admin@roarexim.com",
	})

	_, err := client.SendEnquiry(context.Background(), testEmail())
	if err == nil {
		t.Fatal("expected an error for a non-200 provider status")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error = %v, want the provider status in the message", err)
	}
}

func TestSendEnquiry_MissingAPIKey(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewResendClient(config.MailConfig{
		APIURL: server.URL,
		To:     "admin@roarexim.com",
	})

	_, err := client.SendEnquiry(context.Background(), testEmail())
	if err != ErrMissingAPIKey {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if requests != 0 {
		t.Error("provider was called without an API key")
	}
}
