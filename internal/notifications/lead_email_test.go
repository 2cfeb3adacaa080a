package notifications

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payana-backend/internal/leads"
)

func TestNewBrevoClientRequiresConfig(t *testing.T) {
	if c := NewBrevoClient("", "sender@x.com", "Payana", []string{"a@x.com"}, false); c != nil {
		t.Fatalf("expected nil client without api key")
	}
	if c := NewBrevoClient("key", "", "Payana", []string{"a@x.com"}, false); c != nil {
		t.Fatalf("expected nil client without sender")
	}
	if c := NewBrevoClient("key", "sender@x.com", "Payana", nil, false); c != nil {
		t.Fatalf("expected nil client without recipients")
	}
	if c := NewBrevoClient("key", "sender@x.com", "Payana", []string{"a@x.com"}, false); c == nil {
		t.Fatalf("expected configured client")
	}
}

func TestNewLeadMailerNilClient(t *testing.T) {
	if m := NewLeadMailer(nil, time.UTC); m != nil {
		t.Fatalf("expected nil mailer without client")
	}
}

func TestSendStudyLeadNotification(t *testing.T) {
	var captured brevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messageId":"<msg-123>"}`))
	}))
	defer srv.Close()

	client := NewBrevoClient("test-key", "noreply@payana.com", "Payana Overseas",
		[]string{"sales@payana.com", "ops@payana.com"}, false)
	client.endpoint = srv.URL
	mailer := NewLeadMailer(client, time.UTC)

	id, err := mailer.SendStudyLeadNotification(context.Background(), leads.StudyLead{
		Country:   "Canada",
		Name:      "Priya",
		NeedsLoan: true,
	})
	if err != nil {
		t.Fatalf("SendStudyLeadNotification error: %v", err)
	}
	if id != "<msg-123>" {
		t.Fatalf("unexpected message id: %q", id)
	}
	if apiKey != "test-key" {
		t.Fatalf("api key header not sent")
	}
	if captured.Subject != "New Study Abroad Inquiry - Payana Overseas" {
		t.Fatalf("unexpected subject: %q", captured.Subject)
	}
	if len(captured.To) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(captured.To))
	}
	if !strings.Contains(captured.HtmlContent, "Canada") || !strings.Contains(captured.HtmlContent, "Priya") {
		t.Fatalf("lead fields missing from body")
	}
	if !strings.Contains(captured.HtmlContent, "Not provided") {
		t.Fatalf("empty fields should render the placeholder")
	}
	if !strings.Contains(captured.HtmlContent, "Yes") {
		t.Fatalf("loan flag should render Yes")
	}
}

func TestSendHTMLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Key not found"}`))
	}))
	defer srv.Close()

	client := NewBrevoClient("bad-key", "noreply@payana.com", "Payana", []string{"a@x.com"}, false)
	client.endpoint = srv.URL

	_, err := client.SendHTML(context.Background(), "subject", "<p>body</p>")
	if err == nil {
		t.Fatalf("expected error on 401")
	}
	if !strings.Contains(err.Error(), "status=401") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendHTMLSandboxHeader(t *testing.T) {
	var payload brevoSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		_, _ = w.Write([]byte(`{"messageId":"<m>"}`))
	}))
	defer srv.Close()

	client := NewBrevoClient("key", "noreply@payana.com", "Payana", []string{"a@x.com"}, true)
	client.endpoint = srv.URL

	if _, err := client.SendHTML(context.Background(), "s", "<p>b</p>"); err != nil {
		t.Fatalf("SendHTML error: %v", err)
	}
	if payload.Headers["X-Sib-Sandbox"] != "drop" {
		t.Fatalf("sandbox header missing: %v", payload.Headers)
	}
}

func TestOrPlaceholder(t *testing.T) {
	if got := orPlaceholder("", "Not specified"); got != "Not specified" {
		t.Fatalf("unexpected value: %q", got)
	}
	if got := orPlaceholder("Canada", "Not specified"); got != "Canada" {
		t.Fatalf("unexpected value: %q", got)
	}
}
