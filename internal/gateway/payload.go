package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"marsa/pkg/model"
	"marsa/pkg/sanitizer"
)

// webhookPayload is the subset of Meta's webhook envelope the bot needs.
type webhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive *struct {
		Type        string         `json:"type"`
		ListReply   *selectionItem `json:"list_reply"`
		ButtonReply *selectionItem `json:"button_reply"`
	} `json:"interactive"`
}

type selectionItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// events flattens the envelope into normalized inbound events. Senders
// are canonicalized to E.164 once here; unsupported message types
// (media, reactions) are skipped.
func (p *webhookPayload) events() []model.InboundEvent {
	var out []model.InboundEvent
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if ev, ok := msg.normalize(); ok {
					out = append(out, ev)
				}
			}
		}
	}
	return out
}

func (m *inboundMessage) normalize() (model.InboundEvent, bool) {
	sender := sanitizer.NormalizePhone(m.From)
	if sender == "" {
		return model.InboundEvent{}, false
	}
	ev := model.InboundEvent{SenderID: sender, MessageID: m.ID}

	switch m.Type {
	case "text":
		if m.Text == nil {
			return model.InboundEvent{}, false
		}
		ev.Kind = model.EventText
		ev.Text = m.Text.Body
	case "interactive":
		if m.Interactive == nil {
			return model.InboundEvent{}, false
		}
		switch {
		case m.Interactive.ListReply != nil:
			ev.Kind = model.EventListSelection
			ev.SelectionID = m.Interactive.ListReply.ID
			ev.SelectionTitle = m.Interactive.ListReply.Title
		case m.Interactive.ButtonReply != nil:
			ev.Kind = model.EventButtonSelection
			ev.SelectionID = m.Interactive.ButtonReply.ID
			ev.SelectionTitle = m.Interactive.ButtonReply.Title
		default:
			return model.InboundEvent{}, false
		}
	default:
		return model.InboundEvent{}, false
	}
	return ev, true
}

// SenderFromRequest peeks at the webhook body and returns the first
// message's canonical sender, for per-sender rate limiting. The body is
// restored for downstream handlers.
func SenderFromRequest(r *http.Request) string {
	if r.Method != http.MethodPost {
		return ""
	}
	body, err := peekBody(r)
	if err != nil {
		return ""
	}
	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return ""
	}
	for _, ev := range p.events() {
		return ev.SenderID
	}
	return ""
}

func peekBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
