// Package messaging delivers outbound messages through the WhatsApp
// Cloud API.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marsa/pkg/config"
	"marsa/pkg/errors"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

const graphBaseURL = "https://graph.facebook.com/v17.0"

type WhatsAppSender struct {
	httpClient *http.Client
	endpoint   string
	token      string
	log        *logger.Logger
}

func NewWhatsAppSender(cfg *config.Config) *WhatsAppSender {
	return &WhatsAppSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   fmt.Sprintf("%s/%s/messages", graphBaseURL, cfg.WhatsAppPhoneID),
		token:      cfg.WhatsAppToken,
		log:        cfg.Log,
	}
}

type textPayload struct {
	Body string `json:"body"`
}

type outbound struct {
	MessagingProduct string                 `json:"messaging_product"`
	To               string                 `json:"to"`
	Type             string                 `json:"type"`
	Text             *textPayload           `json:"text,omitempty"`
	Interactive      *model.InteractiveSpec `json:"interactive,omitempty"`
}

// Send posts one message to the Graph API. Interactive specs take
// precedence over the plain body when both are set.
func (s *WhatsAppSender) Send(ctx context.Context, msg model.SendMessage) error {
	payload := outbound{
		MessagingProduct: "whatsapp",
		To:               msg.To,
	}
	if msg.Interactive != nil {
		payload.Type = "interactive"
		payload.Interactive = msg.Interactive
	} else {
		payload.Type = "text"
		payload.Text = &textPayload{Body: msg.Body}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal("marshal outbound message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Internal("build graph request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Internal("graph request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		s.log.Error("Graph API rejected message",
			"to", msg.To, "status", resp.StatusCode, "response", string(detail))
		return errors.Internal(fmt.Sprintf("graph api status %d", resp.StatusCode), nil)
	}
	return nil
}
