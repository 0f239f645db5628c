package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gbur-rwanda/gbur-backend/config"
	"github.com/gbur-rwanda/gbur-backend/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// Notifier tells the ministry team about a new contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, msg models.ContactMessage) error
}

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendNotifier e-mails contact messages through the Resend API.
type ResendNotifier struct {
	APIKey     string
	From       string
	Recipients []string
	Endpoint   string
	Client     *http.Client
	logger     zerolog.Logger
}

// NewResendNotifier reads RESEND_API_KEY, RESEND_FROM_EMAIL and
// CONTACT_NOTIFY_EMAILS. It returns nil when any of them is missing, which
// turns notification off.
func NewResendNotifier(cfg map[string]string) *ResendNotifier {
	n := &ResendNotifier{
		APIKey:     config.GetString(cfg, "RESEND_API_KEY", ""),
		From:       config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
		Recipients: config.GetList(cfg, "CONTACT_NOTIFY_EMAILS"),
		Endpoint:   resendEndpoint,
		Client:     &http.Client{Timeout: 10 * time.Second},
		logger:     serviceLogger("notify"),
	}
	if n.APIKey == "" || n.From == "" || len(n.Recipients) == 0 {
		return nil
	}
	return n
}

func (n *ResendNotifier) NotifyContact(ctx context.Context, msg models.ContactMessage) error {
	return n.SendEmail(ctx, ResendEmailRequest{
		From:    n.From,
		To:      n.Recipients,
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("[GBUR contact] %s from %s", msg.Subject, msg.FullName),
		Html:    contactHTML(msg),
	})
}

func contactHTML(msg models.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s &lt;%s&gt;</p>", html.EscapeString(msg.FullName), html.EscapeString(msg.Email))
	if msg.PhoneNumber != nil {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(*msg.PhoneNumber))
	}
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(msg.Subject))
	for _, line := range strings.Split(msg.Message, "\n") {
		if strings.TrimSpace(line) != "" {
			fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(line))
		}
	}
	return b.String()
}

// SendEmail posts payload to the Resend API.
func (n *ResendNotifier) SendEmail(ctx context.Context, payload ResendEmailRequest) error {
	if len(payload.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		n.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		n.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}
