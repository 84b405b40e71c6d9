package integration

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brightforge/agency-backend/internal/config"
)

// webhookPayload is the body posted to automation webhooks.
func webhookPayload(ev Event) (map[string]any, error) {
	body := map[string]any{
		"type":      string(ev.Kind),
		"timestamp": ev.At.UTC().Format(time.RFC3339),
	}
	switch {
	case ev.Contact != nil:
		body["contact"] = ev.Contact
	case ev.Client != nil:
		body["client"] = ev.Client
	case ev.Project != nil:
		body["project"] = ev.Project
	default:
		return nil, errors.New("event has no subject")
	}
	return body, nil
}

// ─── Zapier ─────────────────────────────────────────────────────────

type zapier struct {
	caller
	hookURL string
}

func newZapier(cfg config.IntegrationsConfig, client *http.Client) *zapier {
	return &zapier{caller: caller{provider: "zapier", client: client}, hookURL: cfg.ZapierWebhookURL}
}

func (p *zapier) Name() string                 { return "zapier" }
func (p *zapier) Enabled() bool                { return p.hookURL != "" }
func (p *zapier) Services() []string           { return []string{"Workflow Automation"} }
func (p *zapier) Supports(kind EventKind) bool { return kind != EventNewClient }

// Notify triggers the catch hook with the event payload.
func (p *zapier) Notify(ctx context.Context, ev Event) (any, error) {
	body, err := webhookPayload(ev)
	if err != nil {
		return nil, err
	}
	return p.postJSON(ctx, p.hookURL, body)
}

// ─── n8n ────────────────────────────────────────────────────────────

// n8nWorkflows maps events to the webhook path of the workflow handling them.
// New clients only reach the SMS and CRM providers.
var n8nWorkflows = map[EventKind]string{
	EventNewContact:     "new-contact",
	EventNewProject:     "new-project",
	EventProjectUpdated: "project-updated",
}

type n8n struct {
	caller
	baseURL string
}

func newN8N(cfg config.IntegrationsConfig, client *http.Client) *n8n {
	return &n8n{caller: caller{provider: "n8n", client: client}, baseURL: cfg.N8NBaseURL}
}

func (p *n8n) Name() string       { return "n8n" }
func (p *n8n) Enabled() bool      { return p.baseURL != "" }
func (p *n8n) Services() []string { return []string{"Workflow Automation"} }

func (p *n8n) Supports(kind EventKind) bool {
	_, ok := n8nWorkflows[kind]
	return ok
}

// Notify triggers the workflow bound to the event kind.
func (p *n8n) Notify(ctx context.Context, ev Event) (any, error) {
	body, err := webhookPayload(ev)
	if err != nil {
		return nil, err
	}
	return p.postJSON(ctx, p.baseURL+"/webhook/"+n8nWorkflows[ev.Kind], body)
}
