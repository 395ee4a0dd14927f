package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RelayProvider posts messages to the mail-relay server, which owns SMTP
// credentials and delivery policy.
type RelayProvider struct {
	baseURL string
	client  *http.Client
}

func NewRelay(baseURL string) *RelayProvider {
	return &RelayProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type relayAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type relayRequest struct {
	From         string            `json:"from"`
	To           string            `json:"to"`
	CC           string            `json:"cc,omitempty"`
	BCC          string            `json:"bcc,omitempty"`
	Subject      string            `json:"subject"`
	Text         string            `json:"text"`
	Attachments  []relayAttachment `json:"attachments"`
	BusinessName string            `json:"businessName,omitempty"`
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (p *RelayProvider) Send(ctx context.Context, msg Message) error {
	attachments := make([]relayAttachment, 0, len(msg.Attachments))
	for _, att := range msg.Attachments {
		attachments = append(attachments, relayAttachment{
			Filename: att.Filename,
			Content:  base64.StdEncoding.EncodeToString(att.Content),
			Encoding: "base64",
		})
	}

	payload, err := json.Marshal(relayRequest{
		From:         msg.From,
		To:           msg.To,
		CC:           msg.CC,
		BCC:          msg.BCC,
		Subject:      msg.Subject,
		Text:         msg.Text,
		Attachments:  attachments,
		BusinessName: msg.BusinessName,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/send-email", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail relay unreachable: %w", err)
	}
	defer resp.Body.Close()

	var body relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && resp.StatusCode == http.StatusOK {
		return fmt.Errorf("mail relay returned malformed response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !body.Success {
		message := strings.TrimSpace(body.Message)
		if message == "" {
			message = resp.Status
		}
		return fmt.Errorf("mail relay rejected message: %s", message)
	}

	return nil
}
